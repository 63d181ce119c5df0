// Package builder accumulates a PDF object graph from page-drawing calls
// and finalizes it into a serialized file. A Document owns its object list
// exclusively; object numbers are assigned at allocation time, counting up
// from 1, and are never reused.
package builder

import (
	"errors"

	"github.com/docforge/mdpdf/raw"
	"github.com/docforge/mdpdf/writer"
)

var (
	// ErrAlreadyBuilt reports a page append or a second Build on a
	// finalized document.
	ErrAlreadyBuilt = errors.New("builder: document already built")
	// ErrNoPages reports a Build on a document with no pages.
	ErrNoPages = errors.New("builder: document has no pages")
)

// PaperSize is a page size in PDF points.
type PaperSize struct {
	Width, Height float64
}

var (
	A4     = PaperSize{Width: 595.28, Height: 841.89}
	Letter = PaperSize{Width: 612, Height: 792}
)

// pageSlot keeps the dictionaries whose entries are reserved at page time
// and backfilled at build time: the page's Parent and its font resource.
type pageSlot struct {
	dict    *raw.DictObj
	fontRes *raw.DictObj
}

// Document is the builder state: an append-only object list where index
// order is id order, the page reference list in page order, and a one-shot
// built flag. A Document is not safe for concurrent use.
type Document struct {
	objects []raw.Object
	pages   []raw.RefObj
	slots   []pageSlot
	built   bool
}

// New returns an empty document.
func New() *Document { return &Document{} }

// AddObject appends obj to the document body and returns a reference to it.
func (d *Document) AddObject(obj raw.Object) raw.RefObj {
	d.objects = append(d.objects, obj)
	return raw.Ref(len(d.objects))
}

// AddPage appends a page of the given size. The draw callback runs
// synchronously against the new page; when it returns, the accumulated
// operators become the page's content stream and the page object is
// allocated. An error from the callback aborts the page.
func (d *Document) AddPage(width, height float64, draw func(*Page) error) error {
	if d.built {
		return ErrAlreadyBuilt
	}
	p := &Page{doc: d, width: width, height: height}
	if draw != nil {
		if err := draw(p); err != nil {
			return err
		}
	}
	contentRef := d.AddObject(raw.NewStream(raw.Dict(), p.content()))

	var annots *raw.ArrayObj
	for _, ln := range p.links {
		if annots == nil {
			annots = raw.NewArray()
		}
		annots.Append(d.AddObject(ln.dict()))
	}

	fontRes := raw.Dict()
	fontRes.Set(fontResourceName, nil) // backfilled by Build

	res := raw.Dict()
	res.Set("Font", fontRes)
	if len(p.images) > 0 {
		xobjects := raw.Dict()
		for _, img := range p.images {
			xobjects.Set(img.name, img.ref)
		}
		res.Set("XObject", xobjects)
	}

	pageDict := raw.Dict()
	pageDict.Set("Type", raw.NameLiteral("Page"))
	pageDict.Set("Parent", nil) // backfilled by Build
	pageDict.Set("MediaBox", raw.NewArray(
		raw.NumberInt(0), raw.NumberInt(0),
		raw.NumberFloat(width), raw.NumberFloat(height)))
	pageDict.Set("Contents", contentRef)
	pageDict.Set("Resources", res)
	if annots != nil {
		pageDict.Set("Annots", annots)
	}

	d.pages = append(d.pages, d.AddObject(pageDict))
	d.slots = append(d.slots, pageSlot{dict: pageDict, fontRes: fontRes})
	return nil
}

// PageCount returns the number of pages appended so far.
func (d *Document) PageCount() int { return len(d.pages) }

// Build finalizes the document and serializes it. It allocates the shared
// font object, the pages tree and the catalog, backfills every page's
// parent and font slots, and hands the now-immutable object list to the
// writer. Build fires exactly once; the document rejects any further use.
func (d *Document) Build() ([]byte, error) {
	if d.built {
		return nil, ErrAlreadyBuilt
	}
	if len(d.pages) == 0 {
		return nil, ErrNoPages
	}
	d.built = true

	font := raw.Dict()
	font.Set("Type", raw.NameLiteral("Font"))
	font.Set("Subtype", raw.NameLiteral("Type1"))
	font.Set("BaseFont", raw.NameLiteral("Helvetica"))
	fontRef := d.AddObject(font)

	kids := raw.NewArray()
	for _, p := range d.pages {
		kids.Append(p)
	}
	pagesDict := raw.Dict()
	pagesDict.Set("Type", raw.NameLiteral("Pages"))
	pagesDict.Set("Kids", kids)
	pagesDict.Set("Count", raw.NumberInt(int64(len(d.pages))))
	pagesRef := d.AddObject(pagesDict)

	for _, slot := range d.slots {
		slot.dict.Set("Parent", pagesRef)
		slot.fontRes.Set(fontResourceName, fontRef)
	}

	catalog := raw.Dict()
	catalog.Set("Type", raw.NameLiteral("Catalog"))
	catalog.Set("Pages", pagesRef)
	rootRef := d.AddObject(catalog)

	return writer.Serialize(d.objects, rootRef), nil
}
