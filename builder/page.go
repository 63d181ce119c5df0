package builder

import (
	"fmt"
	"strings"

	"github.com/docforge/mdpdf/fonts"
	"github.com/docforge/mdpdf/jpeg"
	"github.com/docforge/mdpdf/raw"
)

// fontResourceName is the resource slot under which the shared font is
// registered on every page.
const fontResourceName = "F1"

// Align controls horizontal placement of a text run inside a box.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// TextOptions configures DrawText.
type TextOptions struct {
	// Align positions the run inside a box of Width units starting at x.
	// It only takes effect when Width is set; without a box width the run
	// stays left-aligned.
	Align Align
	Width float64
	// Color is a hex color token. Empty or unparseable tokens fall back
	// to opaque black.
	Color string
}

// LineOptions configures DrawLine.
type LineOptions struct {
	// Stroke is a hex color token. No parseable color, no line.
	Stroke    string
	LineWidth float64
}

// LinkOptions configures AddLink.
type LinkOptions struct {
	// Underline is a hex color token; when it parses, a line is stroked
	// 2 units below the link rectangle.
	Underline string
}

type pageImage struct {
	name string
	ref  raw.RefObj
}

type link struct {
	url        string
	x, y, w, h float64
}

func (l link) dict() *raw.DictObj {
	action := raw.Dict()
	action.Set("S", raw.NameLiteral("URI"))
	action.Set("URI", raw.Str([]byte(l.url)))

	d := raw.Dict()
	d.Set("Type", raw.NameLiteral("Annot"))
	d.Set("Subtype", raw.NameLiteral("Link"))
	d.Set("Rect", raw.NewArray(
		raw.NumberFloat(l.x), raw.NumberFloat(l.y),
		raw.NumberFloat(l.x+l.w), raw.NumberFloat(l.y+l.h)))
	d.Set("Border", raw.NewArray(raw.NumberInt(0), raw.NumberInt(0), raw.NumberInt(0)))
	d.Set("A", action)
	return d
}

// Page is the drawing context handed to an AddPage callback. All drawing
// happens in PDF user space with the origin at the lower-left corner.
type Page struct {
	doc           *Document
	width, height float64
	ops           []string
	images        []pageImage
	links         []link
}

// Width returns the page width in points.
func (p *Page) Width() float64 { return p.width }

// Height returns the page height in points.
func (p *Page) Height() float64 { return p.height }

func (p *Page) content() []byte {
	return []byte(strings.Join(p.ops, "\n"))
}

// DrawText shows a text run at the given baseline position. With a box
// width and a non-left alignment the x origin is recomputed from the
// measured run width.
func (p *Page) DrawText(text string, x, y, size float64, opts TextOptions) {
	if opts.Width > 0 {
		switch opts.Align {
		case AlignCenter:
			x += (opts.Width - fonts.Measure(text, size)) / 2
		case AlignRight:
			x += opts.Width - fonts.Measure(text, size)
		}
	}
	c, ok := ParseHex(opts.Color)
	if !ok {
		c = Color{} // text always paints; default is black
	}
	p.ops = append(p.ops,
		fillColor(c),
		"BT",
		"/"+fontResourceName+" "+num(size)+" Tf",
		num(x)+" "+num(y)+" Td",
		"("+raw.EscapeString([]byte(text))+") Tj",
		"ET",
	)
}

// DrawRect fills a rectangle. An unparseable fill suppresses the whole
// operation rather than painting black.
func (p *Page) DrawRect(x, y, w, h float64, fill string) {
	c, ok := ParseHex(fill)
	if !ok {
		return
	}
	p.ops = append(p.ops,
		fillColor(c),
		num(x)+" "+num(y)+" "+num(w)+" "+num(h)+" re",
		"f",
	)
}

// DrawLine strokes a straight line. An unparseable stroke suppresses the
// operation. A zero LineWidth defaults to 1.
func (p *Page) DrawLine(x1, y1, x2, y2 float64, opts LineOptions) {
	c, ok := ParseHex(opts.Stroke)
	if !ok {
		return
	}
	lw := opts.LineWidth
	if lw == 0 {
		lw = 1
	}
	p.ops = append(p.ops,
		num(lw)+" w",
		strokeColor(c),
		num(x1)+" "+num(y1)+" m",
		num(x2)+" "+num(y2)+" l",
		"S",
	)
}

// DrawImage embeds JPEG data as an image object and paints it into the
// given rectangle. The bytes pass through unmodified under a DCTDecode
// filter; only the frame header is inspected. A header that cannot be
// located fails the call with jpeg.ErrMalformed.
func (p *Page) DrawImage(data []byte, x, y, w, h float64) error {
	info, err := jpeg.DecodeInfo(data)
	if err != nil {
		return err
	}
	dict := raw.Dict()
	dict.Set("Type", raw.NameLiteral("XObject"))
	dict.Set("Subtype", raw.NameLiteral("Image"))
	dict.Set("Width", raw.NumberInt(int64(info.Width)))
	dict.Set("Height", raw.NumberInt(int64(info.Height)))
	dict.Set("ColorSpace", raw.NameLiteral(string(info.ColorSpace)))
	dict.Set("BitsPerComponent", raw.NumberInt(8))
	dict.Set("Filter", raw.NameLiteral("DCTDecode"))
	ref := p.doc.AddObject(raw.NewStream(dict, data))

	name := fmt.Sprintf("Im%d", len(p.images)+1)
	p.images = append(p.images, pageImage{name: name, ref: ref})

	p.ops = append(p.ops,
		"q",
		num(w)+" 0 0 "+num(h)+" "+num(x)+" "+num(y)+" cm",
		"/"+name+" Do",
		"Q",
	)
	return nil
}

// AddLink records a rectangular hyperlink annotation over the given area.
// The annotation itself emits no content-stream operators; an underline
// color, when it parses, additionally strokes a line 2 units below the
// rectangle's bottom edge.
func (p *Page) AddLink(url string, x, y, w, h float64, opts LinkOptions) {
	p.links = append(p.links, link{url: url, x: x, y: y, w: w, h: h})
	if opts.Underline != "" {
		p.DrawLine(x, y-2, x+w, y-2, LineOptions{Stroke: opts.Underline})
	}
}

func num(f float64) string { return raw.FormatNumber(f) }

func fillColor(c Color) string {
	return num(c.R) + " " + num(c.G) + " " + num(c.B) + " rg"
}

func strokeColor(c Color) string {
	return num(c.R) + " " + num(c.G) + " " + num(c.B) + " RG"
}
