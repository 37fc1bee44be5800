// Package pdfmeta reads document-level metadata from PDF files: the
// header version, the page count and the /Info dictionary.
package pdfmeta

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	// ErrNotPDF is returned for data without a %PDF- header.
	ErrNotPDF = errors.New("pdfmeta: not a PDF file")
	// ErrMalformed is returned when the file structure cannot be read.
	ErrMalformed = errors.New("pdfmeta: malformed PDF")
)

// maxTreeDepth bounds the page tree walk, which may contain cycles.
const maxTreeDepth = 32

// Document is a parsed PDF.
type Document struct {
	data []byte
	r    *pdf.Reader
}

// Open reads and parses the PDF at path.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdfmeta: %w", err)
	}
	return Load(data)
}

// Load parses a PDF held in memory.
func Load(data []byte) (doc *Document, err error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, ErrNotPDF
	}
	defer recoverMalformed(&err)

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &Document{data: data, r: r}, nil
}

// recoverMalformed turns a panic raised while walking the file into
// ErrMalformed.
func recoverMalformed(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrMalformed, r)
	}
}

// Version returns the header version, e.g. "1.4".
func (doc *Document) Version() string {
	end := len(doc.data)
	if end > 16 {
		end = 16
	}
	v := string(doc.data[5:end])
	if i := strings.IndexAny(v, "\r\n% "); i >= 0 {
		v = v[:i]
	}
	return v
}

// PageCount returns the number of pages. It trusts /Count on the page
// tree root and walks the tree when /Count is missing.
func (doc *Document) PageCount() (n int, err error) {
	defer recoverMalformed(&err)

	if n := doc.r.NumPage(); n > 0 {
		return n, nil
	}
	root := doc.r.Trailer().Key("Root").Key("Pages")
	if root.Kind() != pdf.Dict {
		return 0, fmt.Errorf("%w: no page tree", ErrMalformed)
	}
	return countLeaves(root, 0)
}

func countLeaves(node pdf.Value, depth int) (int, error) {
	if depth > maxTreeDepth {
		return 0, fmt.Errorf("%w: page tree deeper than %d", ErrMalformed, maxTreeDepth)
	}
	if node.Key("Type").Name() == "Page" {
		return 1, nil
	}
	kids := node.Key("Kids")
	total := 0
	for i := 0; i < kids.Len(); i++ {
		n, err := countLeaves(kids.Index(i), depth+1)
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}
