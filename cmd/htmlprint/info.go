package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/porticus-lab/go-html-print/internal/pdfmeta"
)

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file.pdf>",
		Short: "Show version, page count and metadata of a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.OutOrStdout(), args[0])
		},
	}
}

func runInfo(w io.Writer, inputFile string) error {
	doc, err := pdfmeta.Open(inputFile)
	if err != nil {
		return fmt.Errorf("opening %s: %w", inputFile, err)
	}

	pages, err := doc.PageCount()
	if err != nil {
		return fmt.Errorf("reading pages: %w", err)
	}
	info, err := doc.Info()
	if err != nil {
		return fmt.Errorf("reading metadata: %w", err)
	}

	fmt.Fprintf(w, "File:     %s\n", inputFile)
	fmt.Fprintf(w, "Version:  PDF-%s\n", doc.Version())
	fmt.Fprintf(w, "Pages:    %d\n", pages)

	for _, f := range []struct{ label, value string }{
		{"Title", info.Title},
		{"Author", info.Author},
		{"Subject", info.Subject},
		{"Keywords", info.Keywords},
		{"Creator", info.Creator},
		{"Producer", info.Producer},
	} {
		if f.value != "" {
			fmt.Fprintf(w, "%-9s %s\n", f.label+":", f.value)
		}
	}
	return nil
}
