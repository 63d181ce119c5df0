package layout

import (
	"strings"
	"testing"

	"github.com/docforge/mdpdf/builder"
)

func TestRenderHTML(t *testing.T) {
	doc := builder.New()
	e := NewEngine(doc, WithFontSize(12))
	src := `<html><body>
		<h1>Title</h1>
		<p>A paragraph with <b>inline</b> markup.</p>
		<hr/>
		<ul><li>alpha</li><li>beta</li></ul>
		<ol><li>one</li><li>two</li></ol>
	</body></html>`

	if err := e.RenderHTML(src); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	out, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"(Title) Tj",
		"/F1 24 Tf",
		"(A paragraph with inline markup.) Tj",
		"(• alpha) Tj",
		"(• beta) Tj",
		"(1. one) Tj",
		"(2. two) Tj",
		" l\nS",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderHTMLHeadingLevels(t *testing.T) {
	doc := builder.New()
	e := NewEngine(doc, WithFontSize(12))
	if err := e.RenderHTML("<h2>Second</h2><h6>Sixth</h6>"); err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	out, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "/F1 18 Tf") {
		t.Error("h2 should render at 1.5x body size")
	}
	if !strings.Contains(s, "/F1 15 Tf") {
		t.Error("h6 should clamp to the smallest heading size")
	}
}
