package htmlprint

import "context"

// WriteRequest carries everything a [PDFWriter] needs to produce one file.
type WriteRequest struct {
	// HTML is the serialized markup to render.
	HTML string

	// Title labels the produced document when Titled is set, replacing
	// the markup's own title. An empty Title then yields an untitled PDF.
	Title string

	// Titled reports whether the request came from a titled print. When
	// unset the markup's own title, if any, is kept.
	Titled bool

	// Path is the destination file. A file:// URL is also accepted.
	Path string

	// Page controls paper size and margins. Nil means [DefaultPageConfig].
	Page *PageConfig

	// CreateDirectories allows missing parent directories of Path to be
	// created before writing.
	CreateDirectories bool
}

// PDFWriter renders markup to a PDF file.
//
// [Converter] is the implementation backed by headless Chrome.
type PDFWriter interface {
	WritePDF(ctx context.Context, req *WriteRequest) error
}

// WriterFunc adapts a function to a [PDFWriter].
type WriterFunc func(ctx context.Context, req *WriteRequest) error

// WritePDF calls f(ctx, req).
func (f WriterFunc) WritePDF(ctx context.Context, req *WriteRequest) error {
	return f(ctx, req)
}
