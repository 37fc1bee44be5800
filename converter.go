package htmlprint

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Converter renders HTML to PDF with headless Chrome. It is the
// [PDFWriter] behind the package-level print functions.
//
// A Converter keeps one browser process and opens a tab per conversion.
// It is safe for concurrent use. Call [Converter.Close] to release the
// browser.
type Converter struct {
	cfg           converterConfig
	log           *zap.Logger
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

// NewConverter starts a browser with the given options.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if cfg.remoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.remoteURL)
	} else {
		if cfg.chromePath == "" && cfg.autoDownload {
			path, err := resolveBrowser(cfg.logger)
			if err != nil {
				return nil, err
			}
			cfg.chromePath = path
		}

		allocOpts := append(
			chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-extensions", true),
			chromedp.Flag("disable-background-networking", true),
			chromedp.Flag("disable-sync", true),
			chromedp.Flag("disable-translate", true),
			chromedp.Flag("no-first-run", true),
			chromedp.Flag("font-render-hinting", "none"),
			chromedp.Flag("headless", cfg.headless),
		)
		if cfg.chromePath != "" {
			allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
		}
		if cfg.noSandbox {
			allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
		}
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.Background(), allocOpts...)
	}

	logger := cfg.logger
	browserCtx, browserCancel := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(format string, args ...any) {
			logger.Debug(fmt.Sprintf(format, args...))
		}),
	)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("htmlprint: starting browser: %w", err)
	}
	logger.Debug("browser started",
		zap.String("chrome", cfg.chromePath),
		zap.String("remote", cfg.remoteURL))

	return &Converter{
		cfg:           cfg,
		log:           logger,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases the browser. Close is idempotent.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// WritePDF implements [PDFWriter]. It renders req.HTML and writes the
// PDF to req.Path, replacing any existing file.
func (c *Converter) WritePDF(ctx context.Context, req *WriteRequest) error {
	if req == nil {
		return fmt.Errorf("htmlprint: nil write request")
	}
	if err := c.checkClosed(); err != nil {
		return err
	}
	path, err := resolveDestination(req.Path)
	if err != nil {
		return err
	}
	if err := req.Page.Validate(); err != nil {
		return err
	}

	markup := req.HTML
	if req.Titled {
		if markup, err = applyTitle(markup, req.Title); err != nil {
			return err
		}
	}

	start := time.Now()
	var size int
	err = storeRendered(path, req.CreateDirectories, c.cfg.fileMode, func() ([]byte, error) {
		res, err := c.ConvertHTML(ctx, markup, req.Page)
		if err != nil {
			return nil, err
		}
		size = res.Len()
		return res.Bytes(), nil
	})
	if err != nil {
		return err
	}

	c.log.Info("pdf written",
		zap.String("path", path),
		zap.Int("bytes", size),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// ConvertHTML converts an HTML string to a PDF document.
// If pg is nil, [DefaultPageConfig] values are used.
func (c *Converter) ConvertHTML(ctx context.Context, html string, pg *PageConfig) (*Result, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	load := chromedp.Tasks{
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
	}
	return c.convert(ctx, load, pg)
}

// ConvertURL converts the web page at rawURL to a PDF document.
// If pg is nil, [DefaultPageConfig] values are used.
func (c *Converter) ConvertURL(ctx context.Context, rawURL string, pg *PageConfig) (*Result, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("htmlprint: invalid URL %q: %w", rawURL, err)
	}
	return c.convert(ctx, chromedp.Navigate(rawURL), pg)
}

// ConvertFile converts a local HTML file to a PDF document.
// If pg is nil, [DefaultPageConfig] values are used.
func (c *Converter) ConvertFile(ctx context.Context, path string, pg *PageConfig) (*Result, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("htmlprint: resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("htmlprint: %w", err)
	}
	return c.convert(ctx, chromedp.Navigate("file://"+filepath.ToSlash(abs)), pg)
}

// convert runs load in a fresh tab and prints the result.
func (c *Converter) convert(ctx context.Context, load chromedp.Action, pg *PageConfig) (*Result, error) {
	if err := pg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("htmlprint: conversion aborted: %w", err)
	}
	resolved := pg.resolved()

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()

	// Tie the tab to the caller's context so cancellation reaches Chrome.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	width, height := resolved.paperDimensions()
	marginTop, marginRight, marginBottom, marginLeft := resolved.marginInches()

	var buf []byte
	if err := chromedp.Run(tabCtx,
		load,
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			params := page.PrintToPDF().
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(marginTop).
				WithMarginRight(marginRight).
				WithMarginBottom(marginBottom).
				WithMarginLeft(marginLeft).
				WithScale(resolved.Scale).
				WithPrintBackground(resolved.PrintBackground).
				WithPreferCSSPageSize(resolved.PreferCSSPageSize).
				WithDisplayHeaderFooter(resolved.DisplayHeaderFooter).
				WithGenerateDocumentOutline(resolved.Outline)

			if resolved.HeaderTemplate != "" {
				params = params.WithHeaderTemplate(resolved.HeaderTemplate)
			}
			if resolved.FooterTemplate != "" {
				params = params.WithFooterTemplate(resolved.FooterTemplate)
			}

			var err error
			buf, _, err = params.Do(ctx)
			return err
		}),
	); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("htmlprint: conversion aborted: %w", ctxErr)
		}
		c.log.Error("conversion failed", zap.Error(err))
		return nil, fmt.Errorf("htmlprint: conversion failed: %w", err)
	}

	c.log.Debug("converted",
		zap.Int("bytes", len(buf)),
		zap.Stringer("orientation", resolved.Orientation))
	return &Result{data: buf}, nil
}

func (c *Converter) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}
