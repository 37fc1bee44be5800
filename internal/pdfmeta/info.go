package pdfmeta

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// Info is the document information dictionary.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
}

// Info returns the entries of the trailer's /Info dictionary. A document
// without one yields a zero Info. Text strings are decoded from
// PDFDocEncoding or UTF-16BE.
func (doc *Document) Info() (info Info, err error) {
	defer recoverMalformed(&err)

	v := doc.r.Trailer().Key("Info")
	switch v.Kind() {
	case pdf.Null:
		return Info{}, nil
	case pdf.Dict:
	default:
		return Info{}, fmt.Errorf("%w: /Info is not a dictionary", ErrMalformed)
	}

	for key, dst := range map[string]*string{
		"Title":    &info.Title,
		"Author":   &info.Author,
		"Subject":  &info.Subject,
		"Keywords": &info.Keywords,
		"Creator":  &info.Creator,
		"Producer": &info.Producer,
	} {
		if s := v.Key(key); s.Kind() == pdf.String {
			*dst = s.Text()
		}
	}
	return info, nil
}
