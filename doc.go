// Package htmlprint prints HTML values to PDF files.
//
// Content is anything implementing [HTML]; a full page implements
// [Document]. Both are serialized under a chosen [Encoding] and handed to
// a [PDFWriter] together with the destination, an optional title, a
// [PageConfig] and a directory-creation flag.
//
// # Printing
//
// For one-off prints use the package-level functions, which start a
// temporary headless browser:
//
//	doc := &htmlprint.Page{
//	    Content: htmlprint.Group{
//	        htmlprint.Element("h1", nil, htmlprint.Text("Hello, World!")),
//	        htmlprint.Element("p", nil, htmlprint.Text("This is a PDF generated from HTML.")),
//	    },
//	}
//	err := htmlprint.PrintDocument(ctx, doc, "/path/to/document.pdf")
//
// For repeated prints create a [Converter], which reuses the browser
// process, and wrap it in a [Printer]:
//
//	c, err := htmlprint.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	p := htmlprint.NewPrinter(c)
//	err = p.Print(ctx, fragment, "out/fragment.pdf")
//	err = p.PrintTitled(ctx, fragment, "Invoice", "out/invoice.pdf")
//	err = p.PrintDocument(ctx, doc, "out/document.pdf")
//	err = p.PrintDocumentTitled(ctx, doc, "Monthly Report", "out/report.pdf")
//
// Every print defaults to UTF-8, A4 and creating missing directories:
//
//	err = p.Print(ctx, fragment, "out.pdf",
//	    htmlprint.WithEncoding(htmlprint.ISOLatin1),
//	    htmlprint.WithPage(&htmlprint.PageConfig{Size: htmlprint.Letter, Orientation: htmlprint.Landscape}),
//	    htmlprint.WithCreateDirectories(false),
//	)
//
// # Errors
//
// A failure to serialize is reported as a [*SerializeError]; a failure of
// the writer as a [*WriteError]. Both unwrap to the underlying error.
// Nothing is retried.
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload]:
//
//	c, err := htmlprint.NewConverter(htmlprint.WithAutoDownload())
package htmlprint
