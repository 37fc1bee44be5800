package htmlprint

import "context"

// printConfig holds the per-call settings of a print operation.
type printConfig struct {
	encoding          Encoding
	page              *PageConfig
	createDirectories bool
	converterOpts     []Option
}

func defaultPrintConfig() printConfig {
	a4 := DefaultPageConfig()
	return printConfig{
		encoding:          UTF8,
		page:              &a4,
		createDirectories: true,
	}
}

// PrintOption configures a single print operation.
type PrintOption func(*printConfig)

// WithEncoding sets the encoding content is serialized under.
// Defaults to [UTF8].
func WithEncoding(enc Encoding) PrintOption {
	return func(c *printConfig) {
		c.encoding = enc
	}
}

// WithPage sets the page configuration. Defaults to [DefaultPageConfig],
// which is A4 portrait. A nil page keeps the default.
func WithPage(pg *PageConfig) PrintOption {
	return func(c *printConfig) {
		if pg != nil {
			c.page = pg
		}
	}
}

// WithCreateDirectories controls whether missing parent directories of
// the destination are created. Defaults to true.
func WithCreateDirectories(create bool) PrintOption {
	return func(c *printConfig) {
		c.createDirectories = create
	}
}

// WithConverterOptions passes options to the temporary [Converter] used by
// the package-level print functions. [Printer] methods ignore it.
func WithConverterOptions(opts ...Option) PrintOption {
	return func(c *printConfig) {
		c.converterOpts = append(c.converterOpts, opts...)
	}
}

// Printer prints content and documents to PDF files through a [PDFWriter].
//
// A Printer holds no state besides its writer; it is safe for concurrent
// use whenever the writer is.
type Printer struct {
	w PDFWriter
}

// NewPrinter returns a Printer that delegates to w.
func NewPrinter(w PDFWriter) *Printer {
	return &Printer{w: w}
}

// Print serializes content and writes it as a PDF to dst.
func (p *Printer) Print(ctx context.Context, content HTML, dst string, opts ...PrintOption) error {
	return p.print(ctx, func(enc Encoding) (string, error) {
		return Serialize(content, enc)
	}, nil, dst, opts)
}

// PrintTitled is [Printer.Print] with a document title. The title replaces
// any title in the content; an empty one is forwarded as is.
func (p *Printer) PrintTitled(ctx context.Context, content HTML, title, dst string, opts ...PrintOption) error {
	return p.print(ctx, func(enc Encoding) (string, error) {
		return Serialize(content, enc)
	}, &title, dst, opts)
}

// PrintDocument serializes a full document and writes it as a PDF to dst.
func (p *Printer) PrintDocument(ctx context.Context, doc Document, dst string, opts ...PrintOption) error {
	return p.print(ctx, func(enc Encoding) (string, error) {
		return SerializeDocument(doc, enc)
	}, nil, dst, opts)
}

// PrintDocumentTitled is [Printer.PrintDocument] with a document title.
// The title replaces the document's own; an empty one is forwarded as is.
func (p *Printer) PrintDocumentTitled(ctx context.Context, doc Document, title, dst string, opts ...PrintOption) error {
	return p.print(ctx, func(enc Encoding) (string, error) {
		return SerializeDocument(doc, enc)
	}, &title, dst, opts)
}

// print serializes under the configured encoding and hands the markup to
// the writer. A nil title leaves the markup's own title in place.
func (p *Printer) print(ctx context.Context, serialize func(Encoding) (string, error), title *string, dst string, opts []PrintOption) error {
	cfg := defaultPrintConfig()
	for _, o := range opts {
		o(&cfg)
	}

	text, err := serialize(cfg.encoding)
	if err != nil {
		return &SerializeError{Encoding: cfg.encoding, Err: err}
	}

	req := &WriteRequest{
		HTML:              text,
		Path:              dst,
		Page:              cfg.page,
		CreateDirectories: cfg.createDirectories,
	}
	if title != nil {
		req.Title, req.Titled = *title, true
	}
	if err := p.w.WritePDF(ctx, req); err != nil {
		return &WriteError{Path: dst, Err: err}
	}
	return nil
}

// --- Package-level convenience functions ---

// Print writes content to dst using a temporary [Converter].
// For repeated use, create a [Converter] and wrap it with [NewPrinter].
func Print(ctx context.Context, content HTML, dst string, opts ...PrintOption) error {
	return withTemporaryPrinter(opts, func(p *Printer) error {
		return p.Print(ctx, content, dst, opts...)
	})
}

// PrintTitled writes titled content to dst using a temporary [Converter].
func PrintTitled(ctx context.Context, content HTML, title, dst string, opts ...PrintOption) error {
	return withTemporaryPrinter(opts, func(p *Printer) error {
		return p.PrintTitled(ctx, content, title, dst, opts...)
	})
}

// PrintDocument writes doc to dst using a temporary [Converter].
func PrintDocument(ctx context.Context, doc Document, dst string, opts ...PrintOption) error {
	return withTemporaryPrinter(opts, func(p *Printer) error {
		return p.PrintDocument(ctx, doc, dst, opts...)
	})
}

// PrintDocumentTitled writes a titled doc to dst using a temporary [Converter].
func PrintDocumentTitled(ctx context.Context, doc Document, title, dst string, opts ...PrintOption) error {
	return withTemporaryPrinter(opts, func(p *Printer) error {
		return p.PrintDocumentTitled(ctx, doc, title, dst, opts...)
	})
}

func withTemporaryPrinter(opts []PrintOption, fn func(*Printer) error) error {
	cfg := defaultPrintConfig()
	for _, o := range opts {
		o(&cfg)
	}
	conv, err := NewConverter(cfg.converterOpts...)
	if err != nil {
		return err
	}
	defer conv.Close()
	return fn(NewPrinter(conv))
}
