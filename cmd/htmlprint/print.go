package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	htmlprint "github.com/porticus-lab/go-html-print"
)

func newPrintCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print [flags] <input.html|-> <output.pdf>",
		Short: "Print an HTML file to PDF",
		Long: `Print an HTML file to PDF.

The input is read as a full document unless --fragment is given, in which
case it is printed as a content fragment. Use - to read from stdin.

Settings can also come from ./htmlprint.toml or HTMLPRINT_* environment
variables, e.g. HTMLPRINT_NO_SANDBOX=true.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrint(cmd.Context(), readConfig(v), args[0], args[1])
		},
	}

	f := cmd.Flags()
	f.String("title", "", "document title written to the PDF metadata")
	f.String("encoding", "utf-8", "character encoding the HTML is serialized under")
	f.String("size", "A4", "paper size: A3, A4, A5, Letter, Legal, Tabloid")
	f.Bool("landscape", false, "landscape orientation")
	f.Float64("margin", 1.0, "margin on every side, in centimeters")
	f.Float64("scale", 1.0, "rendering scale, between 0.1 and 2")
	f.Bool("outline", false, "embed a document outline built from headings")
	f.Bool("no-mkdir", false, "fail instead of creating missing output directories")
	f.Bool("fragment", false, "treat the input as a fragment instead of a document")

	f.String("chrome", "", "path to the Chrome or Chromium executable")
	f.String("remote", "", "DevTools websocket URL of a running Chrome")
	f.Bool("no-sandbox", false, "disable the Chrome sandbox (needed as root)")
	f.Bool("download", false, "download Chromium if none is installed")
	f.Duration("timeout", 30*time.Second, "per-conversion timeout, 0 disables it")
	return cmd
}

func runPrint(ctx context.Context, cfg config, input, output string) error {
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	opts, err := cfg.printOptions()
	if err != nil {
		return err
	}

	src, err := openInput(input)
	if err != nil {
		return err
	}
	defer src.Close()

	conv, err := htmlprint.NewConverter(cfg.converterOptions(logger)...)
	if err != nil {
		return err
	}
	defer conv.Close()
	p := htmlprint.NewPrinter(conv)

	if cfg.Fragment {
		data, err := io.ReadAll(src)
		if err != nil {
			return fmt.Errorf("reading %s: %w", input, err)
		}
		content := htmlprint.Raw(data)
		if cfg.Title != "" {
			err = p.PrintTitled(ctx, content, cfg.Title, output, opts...)
		} else {
			err = p.Print(ctx, content, output, opts...)
		}
		if err != nil {
			return err
		}
	} else {
		doc, err := htmlprint.ParseDocument(src)
		if err != nil {
			return err
		}
		if cfg.Title != "" {
			err = p.PrintDocumentTitled(ctx, doc, cfg.Title, output, opts...)
		} else {
			err = p.PrintDocument(ctx, doc, output, opts...)
		}
		if err != nil {
			return err
		}
	}

	logger.Debug("done", zap.String("output", output))
	return nil
}

func openInput(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	return f, nil
}
