package htmlprint_test

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	htmlprint "github.com/porticus-lab/go-html-print"
)

func Example() {
	c, err := htmlprint.NewConverter(htmlprint.WithNoSandbox())
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	doc := &htmlprint.Page{
		Content: htmlprint.Group{
			htmlprint.Element("h1", nil, htmlprint.Text("Hello, World!")),
			htmlprint.Element("p", nil, htmlprint.Text("This is a PDF generated from HTML.")),
		},
	}

	p := htmlprint.NewPrinter(c)
	if err := p.PrintDocument(context.Background(), doc, "/tmp/out.pdf"); err != nil {
		log.Fatal(err)
	}
	fmt.Println("PDF saved to /tmp/out.pdf")
}

func Example_titled() {
	invoice := htmlprint.Element("table", nil,
		htmlprint.Element("tr", nil,
			htmlprint.Element("td", nil, htmlprint.Text("Consulting")),
			htmlprint.Element("td", nil, htmlprint.Text("€1,200")),
		),
	)

	err := htmlprint.PrintTitled(context.Background(), invoice, "Invoice", "/tmp/invoices/2024/07.pdf",
		htmlprint.WithConverterOptions(htmlprint.WithNoSandbox(), htmlprint.WithTimeout(time.Minute)),
	)
	if err != nil {
		log.Fatal(err)
	}
}

func Example_withPageConfig() {
	c, err := htmlprint.NewConverter(htmlprint.WithNoSandbox())
	if err != nil {
		log.Fatal(err)
	}
	defer c.Close()

	doc, err := htmlprint.ParseDocument(strings.NewReader(`<!DOCTYPE html>
<html><body>
  <h1 style="color: navy;">Landscape Report</h1>
  <p>This PDF uses Letter size in landscape orientation.</p>
</body></html>`))
	if err != nil {
		log.Fatal(err)
	}

	page := &htmlprint.PageConfig{
		Size:            htmlprint.Letter,
		Orientation:     htmlprint.Landscape,
		Margin:          htmlprint.Margin{Top: 2, Right: 2.5, Bottom: 2, Left: 2.5},
		PrintBackground: true,
	}

	err = htmlprint.NewPrinter(c).PrintDocumentTitled(context.Background(), doc, "Monthly Report", "/tmp/report.pdf",
		htmlprint.WithPage(page),
		htmlprint.WithEncoding(htmlprint.ISOLatin1),
		htmlprint.WithCreateDirectories(false),
	)
	if err != nil {
		log.Fatal(err)
	}
}
