// Package layout turns block-structured text into positioned page items
// and drives the builder's page API. It owns no part of the object graph;
// everything it draws goes through builder.Page.
package layout

import (
	"strings"

	"github.com/docforge/mdpdf/builder"
	"github.com/docforge/mdpdf/fonts"
)

// Margins defines page margins in points.
type Margins struct {
	Top, Bottom, Left, Right float64
}

// Engine paginates classified blocks against a page size and margins.
type Engine struct {
	doc *builder.Document

	pageWidth  float64
	pageHeight float64
	margins    Margins
	fontSize   float64
	lineHeight float64
	ruleColor  string
}

// Option configures an Engine.
type Option func(*Engine)

// WithPageSize sets the page dimensions in points.
func WithPageSize(width, height float64) Option {
	return func(e *Engine) {
		e.pageWidth = width
		e.pageHeight = height
	}
}

// WithPaperSize sets the page dimensions from a standard paper size.
func WithPaperSize(size builder.PaperSize) Option {
	return func(e *Engine) {
		e.pageWidth = size.Width
		e.pageHeight = size.Height
	}
}

// WithMargins sets the page margins.
func WithMargins(m Margins) Option {
	return func(e *Engine) { e.margins = m }
}

// WithFontSize sets the body text size; heading sizes scale from it.
func WithFontSize(size float64) Option {
	return func(e *Engine) { e.fontSize = size }
}

// WithLineHeight sets the line height multiplier.
func WithLineHeight(h float64) Option {
	return func(e *Engine) { e.lineHeight = h }
}

// NewEngine creates a layout engine rendering into doc.
func NewEngine(doc *builder.Document, opts ...Option) *Engine {
	e := &Engine{
		doc:        doc,
		pageWidth:  builder.A4.Width,
		pageHeight: builder.A4.Height,
		margins:    Margins{Top: 72, Bottom: 72, Left: 72, Right: 72},
		fontSize:   12,
		lineHeight: 1.2,
		ruleColor:  "#000",
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render classifies source line by line, paginates the result and appends
// the pages to the document.
func (e *Engine) Render(source string) error {
	return e.renderBlocks(e.classify(source))
}

func (e *Engine) renderBlocks(blocks []block) error {
	for _, pg := range e.paginate(e.flatten(blocks)) {
		items := pg
		err := e.doc.AddPage(e.pageWidth, e.pageHeight, func(p *builder.Page) error {
			for _, it := range items {
				switch it.kind {
				case itemRule:
					p.DrawLine(e.margins.Left, it.y, e.pageWidth-e.margins.Right, it.y,
						builder.LineOptions{Stroke: e.ruleColor})
				case itemText:
					p.DrawText(it.text, e.margins.Left+it.indent, it.y, it.size, builder.TextOptions{})
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// maxTextWidth is the horizontal budget for wrapped text at the given
// indent.
func (e *Engine) maxTextWidth(indent float64) float64 {
	return e.pageWidth - e.margins.Left - e.margins.Right - indent
}

// entry is a wrapped, height-annotated unit ready for pagination.
type entry struct {
	kind   itemKind
	text   string
	size   float64
	before float64
	after  float64
	indent float64
}

type itemKind int

const (
	itemText itemKind = iota
	itemRule
	itemBlank
)

// item is an entry with its final baseline position on a page.
type item struct {
	kind   itemKind
	text   string
	size   float64
	indent float64
	y      float64
}

// flatten wraps every text block into lines. A block's leading space goes
// to its first line, its trailing space to its last; interior lines only
// carry the line-height surplus.
func (e *Engine) flatten(blocks []block) []entry {
	var entries []entry
	for _, b := range blocks {
		switch b.kind {
		case blockRule:
			entries = append(entries, entry{
				kind:   itemRule,
				size:   b.size,
				before: b.before,
				after:  b.after,
			})
		case blockBlank:
			entries = append(entries, entry{kind: itemBlank, size: b.size})
		case blockText:
			lines := Wrap(b.text, b.size, e.maxTextWidth(b.indent))
			surplus := b.size * (e.lineHeight - 1)
			for i, line := range lines {
				en := entry{
					kind:   itemText,
					text:   line,
					size:   b.size,
					after:  surplus,
					indent: b.indent,
				}
				if i == 0 {
					en.before = b.before
				}
				if i == len(lines)-1 {
					en.after += b.after
				}
				entries = append(entries, en)
			}
		}
	}
	return entries
}

// paginate assigns baselines top-down. An entry that would push the cursor
// past the bottom margin closes the current page and opens the next one as
// its first item. An empty entry list still produces one empty page.
func (e *Engine) paginate(entries []entry) [][]item {
	pages := [][]item{nil}
	top := e.pageHeight - e.margins.Top
	cursor := top
	for _, en := range entries {
		h := en.before + en.size + en.after
		if cursor-h < e.margins.Bottom && len(pages[len(pages)-1]) > 0 {
			pages = append(pages, nil)
			cursor = top
		}
		baseline := cursor - en.before - en.size
		cursor -= h
		if en.kind == itemBlank {
			continue
		}
		it := item{
			kind:   en.kind,
			text:   en.text,
			size:   en.size,
			indent: en.indent,
			y:      baseline,
		}
		if en.kind == itemRule {
			it.y = baseline + en.size/2
		}
		pages[len(pages)-1] = append(pages[len(pages)-1], it)
	}
	return pages
}

// Wrap breaks text into greedily filled lines whose measured width stays
// within maxWidth. A single word wider than the budget is force-split into
// character chunks, so no line exceeds the budget except a lone character
// that does so on its own. Non-empty input always yields at least one line.
func Wrap(text string, size, maxWidth float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := ""
	place := func(word string) {
		if fonts.Measure(word, size) <= maxWidth {
			cur = word
			return
		}
		chunks := splitWord(word, size, maxWidth)
		lines = append(lines, chunks[:len(chunks)-1]...)
		cur = chunks[len(chunks)-1]
	}
	place(words[0])
	for _, word := range words[1:] {
		cand := cur + " " + word
		if fonts.Measure(cand, size) <= maxWidth {
			cur = cand
			continue
		}
		lines = append(lines, cur)
		place(word)
	}
	return append(lines, cur)
}

// splitWord cuts an oversized word into width-bounded chunks. A chunk is
// never empty: a character that alone exceeds the budget still forms its
// own chunk.
func splitWord(word string, size, maxWidth float64) []string {
	var chunks []string
	var b strings.Builder
	for _, r := range word {
		if b.Len() > 0 && fonts.Measure(b.String()+string(r), size) > maxWidth {
			chunks = append(chunks, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	return append(chunks, b.String())
}
