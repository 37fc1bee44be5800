package htmlprint

import (
	"fmt"
	"math"
	"strings"
)

// PageSize is a paper size in centimeters.
type PageSize struct {
	Width  float64
	Height float64
}

// Standard paper sizes.
var (
	A3      = PageSize{Width: 29.7, Height: 42.0}
	A4      = PageSize{Width: 21.0, Height: 29.7}
	A5      = PageSize{Width: 14.8, Height: 21.0}
	Letter  = PageSize{Width: 21.59, Height: 27.94}
	Legal   = PageSize{Width: 21.59, Height: 35.56}
	Tabloid = PageSize{Width: 27.94, Height: 43.18}
)

var pageSizes = map[string]PageSize{
	"a3":      A3,
	"a4":      A4,
	"a5":      A5,
	"letter":  Letter,
	"legal":   Legal,
	"tabloid": Tabloid,
}

// PageSizeByName returns one of the standard sizes, e.g. "A4" or "letter".
func PageSizeByName(name string) (PageSize, bool) {
	s, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Orientation is the page orientation.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	switch o {
	case Portrait:
		return "portrait"
	case Landscape:
		return "landscape"
	}
	return fmt.Sprintf("Orientation(%d)", int(o))
}

// Margin holds page margins in centimeters.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(cm float64) Margin {
	return Margin{Top: cm, Right: cm, Bottom: cm, Left: cm}
}

// PageConfig describes the paper a document is printed on.
//
// Zero-value fields fall back to the defaults of [DefaultPageConfig],
// except PrintBackground which is taken as given.
type PageConfig struct {
	Size        PageSize
	Orientation Orientation
	Margin      Margin

	// Scale of the rendering, between 0.1 and 2.0.
	Scale float64

	PrintBackground bool

	// DisplayHeaderFooter enables HeaderTemplate and FooterTemplate. The
	// templates use Chrome's print template classes: date, title, url,
	// pageNumber, totalPages.
	DisplayHeaderFooter bool
	HeaderTemplate      string
	FooterTemplate      string

	// PreferCSSPageSize lets a CSS @page size override Size.
	PreferCSSPageSize bool

	// Outline embeds a document outline built from the heading elements.
	Outline bool
}

// DefaultPageConfig returns the A4 configuration: portrait, 1 cm margins,
// scale 1 and background graphics on.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Size:            A4,
		Orientation:     Portrait,
		Margin:          UniformMargin(1.0),
		Scale:           1.0,
		PrintBackground: true,
	}
}

// resolved returns a PageConfig with all zero values replaced by defaults.
func (p *PageConfig) resolved() PageConfig {
	d := DefaultPageConfig()
	if p == nil {
		return d
	}
	r := *p
	if r.Size == (PageSize{}) {
		r.Size = d.Size
	}
	if r.Scale == 0 {
		r.Scale = d.Scale
	}
	if r.Margin == (Margin{}) {
		r.Margin = d.Margin
	}
	return r
}

// Validate reports whether the configuration, after defaults are applied,
// describes a printable page. The error wraps [ErrInvalidPage].
func (p *PageConfig) Validate() error {
	r := p.resolved()
	for _, v := range []float64{
		r.Size.Width, r.Size.Height, r.Scale,
		r.Margin.Top, r.Margin.Right, r.Margin.Bottom, r.Margin.Left,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value %g", ErrInvalidPage, v)
		}
	}
	switch {
	case r.Size.Width <= 0 || r.Size.Height <= 0:
		return fmt.Errorf("%w: paper size %gx%g cm", ErrInvalidPage, r.Size.Width, r.Size.Height)
	case r.Scale < 0.1 || r.Scale > 2:
		return fmt.Errorf("%w: scale %g outside [0.1, 2]", ErrInvalidPage, r.Scale)
	case r.Orientation != Portrait && r.Orientation != Landscape:
		return fmt.Errorf("%w: %v", ErrInvalidPage, r.Orientation)
	case r.Margin.Top < 0 || r.Margin.Right < 0 || r.Margin.Bottom < 0 || r.Margin.Left < 0:
		return fmt.Errorf("%w: negative margin", ErrInvalidPage)
	}
	w, h := r.Size.Width, r.Size.Height
	if r.Orientation == Landscape {
		w, h = h, w
	}
	if r.Margin.Left+r.Margin.Right >= w || r.Margin.Top+r.Margin.Bottom >= h {
		return fmt.Errorf("%w: margins leave no printable area", ErrInvalidPage)
	}
	return nil
}

func cmToInches(cm float64) float64 {
	return cm / 2.54
}

// paperDimensions returns the paper width and height in inches,
// accounting for orientation.
func (p *PageConfig) paperDimensions() (width, height float64) {
	r := p.resolved()
	w := cmToInches(r.Size.Width)
	h := cmToInches(r.Size.Height)
	if r.Orientation == Landscape {
		return h, w
	}
	return w, h
}

// marginInches returns margins converted to inches.
func (p *PageConfig) marginInches() (top, right, bottom, left float64) {
	r := p.resolved()
	return cmToInches(r.Margin.Top),
		cmToInches(r.Margin.Right),
		cmToInches(r.Margin.Bottom),
		cmToInches(r.Margin.Left)
}
