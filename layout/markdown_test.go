package layout

import (
	"strings"
	"testing"

	"github.com/docforge/mdpdf/builder"
)

func TestRenderMarkdown(t *testing.T) {
	doc := builder.New()
	e := NewEngine(doc, WithFontSize(12))
	src := strings.Join([]string{
		"# Heading",
		"",
		"A paragraph with",
		"a soft line break.",
		"",
		"- bullet one",
		"- bullet two",
		"",
		"1. first",
		"2. second",
		"",
		"---",
	}, "\n")

	if err := e.RenderMarkdown(src); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	out, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"(Heading) Tj",
		"/F1 24 Tf",
		"(A paragraph with a soft line break.) Tj",
		"(• bullet one) Tj",
		"(• bullet two) Tj",
		"(1. first) Tj",
		"(2. second) Tj",
		" l\nS",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderMarkdownOrderedStart(t *testing.T) {
	doc := builder.New()
	e := NewEngine(doc)
	if err := e.RenderMarkdown("5. five\n6. six"); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	out, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)
	for _, want := range []string{"(5. five) Tj", "(6. six) Tj"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderMarkdownHeadingClamp(t *testing.T) {
	doc := builder.New()
	e := NewEngine(doc, WithFontSize(12))
	if err := e.RenderMarkdown("##### Deep"); err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	out, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(string(out), "/F1 15 Tf") {
		t.Error("deep heading should clamp to the smallest heading size")
	}
}
