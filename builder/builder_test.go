package builder

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/docforge/mdpdf/jpeg"
)

func singleTextDoc(t *testing.T) *Document {
	t.Helper()
	doc := New()
	err := doc.AddPage(612, 792, func(p *Page) error {
		p.DrawText("A", 0, 0, 1000, TextOptions{})
		return nil
	})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	return doc
}

func TestBuildSingleTextPage(t *testing.T) {
	out, err := singleTextDoc(t).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)

	if got := strings.Count(s, " 0 obj"); got != 5 {
		t.Errorf("object count = %d, want 5 (content, page, font, pages, catalog)", got)
	}
	counts := map[string]int{
		"/Type /Font\n":    1,
		"/Type /Pages\n":   1,
		"/Type /Catalog\n": 1,
		"/Type /Page\n":    1,
	}
	for marker, want := range counts {
		if got := strings.Count(s, marker); got != want {
			t.Errorf("count of %q = %d, want %d", marker, got, want)
		}
	}
	if !strings.Contains(s, "(A) Tj") {
		t.Error("content stream missing show-text operator for (A)")
	}
	if !strings.Contains(s, "/BaseFont /Helvetica") {
		t.Error("font object missing BaseFont")
	}
	if !strings.HasPrefix(s, "%PDF-1.7\n") {
		t.Errorf("missing header, got %q", s[:16])
	}
	if !strings.HasSuffix(s, "%%EOF\n") {
		t.Error("missing end-of-file marker")
	}
}

func TestBuildTwiceFails(t *testing.T) {
	doc := singleTextDoc(t)
	if _, err := doc.Build(); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if _, err := doc.Build(); !errors.Is(err, ErrAlreadyBuilt) {
		t.Fatalf("second Build error = %v, want ErrAlreadyBuilt", err)
	}
}

func TestAddPageAfterBuildFails(t *testing.T) {
	doc := singleTextDoc(t)
	if _, err := doc.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	err := doc.AddPage(612, 792, nil)
	if !errors.Is(err, ErrAlreadyBuilt) {
		t.Fatalf("AddPage error = %v, want ErrAlreadyBuilt", err)
	}
}

func TestBuildNoPages(t *testing.T) {
	out, err := New().Build()
	if !errors.Is(err, ErrNoPages) {
		t.Fatalf("Build error = %v, want ErrNoPages", err)
	}
	if out != nil {
		t.Fatalf("Build produced %d bytes of partial output", len(out))
	}
}

// TestXrefOffsets parses the emitted cross-reference table and checks that
// every in-use entry points at the start of its object.
func TestXrefOffsets(t *testing.T) {
	doc := New()
	err := doc.AddPage(595, 842, func(p *Page) error {
		p.DrawText("first page", 72, 700, 12, TextOptions{})
		p.DrawRect(72, 100, 100, 50, "#ff0000")
		return nil
	})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	err = doc.AddPage(595, 842, func(p *Page) error {
		p.DrawText("second page", 72, 700, 12, TextOptions{})
		return nil
	})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	out, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	idx := bytes.Index(out, []byte("\nxref\n"))
	if idx < 0 {
		t.Fatal("no xref section")
	}
	xrefOffset := idx + 1

	var declared int
	if _, err := fmt.Sscanf(string(out[bytes.LastIndex(out, []byte("startxref")):]), "startxref\n%d", &declared); err != nil {
		t.Fatalf("parse startxref: %v", err)
	}
	if declared != xrefOffset {
		t.Fatalf("startxref = %d, want %d", declared, xrefOffset)
	}

	lines := strings.Split(string(out[xrefOffset:]), "\n")
	// lines[0] = "xref", lines[1] = "0 N", lines[2] = free entry.
	var size int
	if _, err := fmt.Sscanf(lines[1], "0 %d", &size); err != nil {
		t.Fatalf("parse subsection header %q: %v", lines[1], err)
	}
	if lines[2] != "0000000000 65535 f " {
		t.Fatalf("free entry = %q", lines[2])
	}
	for num := 1; num < size; num++ {
		entry := lines[2+num]
		if len(entry) != 19 || !strings.HasSuffix(entry, " 00000 n ") {
			t.Fatalf("entry %d malformed: %q", num, entry)
		}
		off, err := strconv.Atoi(entry[:10])
		if err != nil {
			t.Fatalf("entry %d offset: %v", num, err)
		}
		wantPrefix := fmt.Sprintf("%d 0 obj\n", num)
		if !bytes.HasPrefix(out[off:], []byte(wantPrefix)) {
			t.Errorf("entry %d points at %q, want %q", num, out[off:off+12], wantPrefix)
		}
	}
}

func TestContentStreamLength(t *testing.T) {
	doc := New()
	err := doc.AddPage(612, 792, func(p *Page) error {
		p.DrawText("exact", 10, 10, 14, TextOptions{})
		return nil
	})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	out, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)

	start := strings.Index(s, "stream\n")
	end := strings.Index(s, "\nendstream")
	if start < 0 || end < 0 {
		t.Fatal("no stream markers")
	}
	streamLen := end - (start + len("stream\n"))

	var declared int
	lengthIdx := strings.Index(s, "/Length ")
	if lengthIdx < 0 {
		t.Fatal("no Length entry")
	}
	if _, err := fmt.Sscanf(s[lengthIdx:], "/Length %d", &declared); err != nil {
		t.Fatalf("parse Length: %v", err)
	}
	if declared != streamLen {
		t.Fatalf("Length = %d, stream holds %d bytes", declared, streamLen)
	}
}

func TestDrawTextAlignment(t *testing.T) {
	// "A" at size 1000 measures 667 wide; inside a 1000-wide box the
	// centered origin is 166.5 and the right-aligned origin 333.
	cases := []struct {
		opts TextOptions
		want string
	}{
		{TextOptions{}, "0 0 Td"},
		{TextOptions{Align: AlignCenter, Width: 1000}, "166.5 0 Td"},
		{TextOptions{Align: AlignRight, Width: 1000}, "333 0 Td"},
		// Alignment without a box width keeps the left origin.
		{TextOptions{Align: AlignCenter}, "0 0 Td"},
		{TextOptions{Align: AlignRight}, "0 0 Td"},
	}
	for _, tc := range cases {
		doc := New()
		var content string
		err := doc.AddPage(2000, 2000, func(p *Page) error {
			p.DrawText("A", 0, 0, 1000, tc.opts)
			content = string(p.content())
			return nil
		})
		if err != nil {
			t.Fatalf("AddPage: %v", err)
		}
		if !strings.Contains(content, tc.want) {
			t.Errorf("opts %+v: content %q missing %q", tc.opts, content, tc.want)
		}
	}
}

func TestDrawTextDefaultsToBlack(t *testing.T) {
	doc := New()
	err := doc.AddPage(612, 792, func(p *Page) error {
		p.DrawText("x", 0, 0, 12, TextOptions{Color: "not-a-color"})
		if got := string(p.content()); !strings.HasPrefix(got, "0 0 0 rg\n") {
			t.Errorf("content = %q, want black fill prefix", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
}

func TestUnpaintableColorSuppressesOps(t *testing.T) {
	doc := New()
	err := doc.AddPage(612, 792, func(p *Page) error {
		p.DrawRect(0, 0, 10, 10, "")
		p.DrawRect(0, 0, 10, 10, "#zzz")
		p.DrawLine(0, 0, 10, 10, LineOptions{})
		p.DrawLine(0, 0, 10, 10, LineOptions{Stroke: "#12345"})
		if got := string(p.content()); got != "" {
			t.Errorf("content = %q, want no operators", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
}

func TestDrawLineDefaults(t *testing.T) {
	doc := New()
	err := doc.AddPage(612, 792, func(p *Page) error {
		p.DrawLine(1, 2, 3, 4, LineOptions{Stroke: "#000"})
		want := "1 w\n0 0 0 RG\n1 2 m\n3 4 l\nS"
		if got := string(p.content()); got != want {
			t.Errorf("content = %q, want %q", got, want)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
}

func TestDrawImageColorSpaces(t *testing.T) {
	cases := []struct {
		components byte
		want       string
	}{
		{1, "/ColorSpace /DeviceGray"},
		{3, "/ColorSpace /DeviceRGB"},
		{4, "/ColorSpace /DeviceCMYK"},
		{5, "/ColorSpace /DeviceRGB"},
	}
	for _, tc := range cases {
		doc := New()
		data := jpegFixture(40, 30, tc.components)
		err := doc.AddPage(612, 792, func(p *Page) error {
			return p.DrawImage(data, 10, 10, 100, 75)
		})
		if err != nil {
			t.Fatalf("components=%d AddPage: %v", tc.components, err)
		}
		out, err := doc.Build()
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		s := string(out)
		if !strings.Contains(s, tc.want) {
			t.Errorf("components=%d: output missing %q", tc.components, tc.want)
		}
		if !strings.Contains(s, "/Filter /DCTDecode") {
			t.Errorf("components=%d: output missing DCTDecode filter", tc.components)
		}
		if !bytes.Contains(out, data) {
			t.Errorf("components=%d: image bytes not passed through unmodified", tc.components)
		}
		if !strings.Contains(s, "/Im1 Do") {
			t.Errorf("components=%d: content missing paint operator", tc.components)
		}
	}
}

func TestDrawImageMalformed(t *testing.T) {
	doc := New()
	err := doc.AddPage(612, 792, func(p *Page) error {
		return p.DrawImage([]byte("\x89PNG\r\n\x1a\n"), 0, 0, 10, 10)
	})
	if !errors.Is(err, jpeg.ErrMalformed) {
		t.Fatalf("AddPage error = %v, want jpeg.ErrMalformed", err)
	}
	if doc.PageCount() != 0 {
		t.Fatalf("failed page was appended anyway")
	}
}

func TestAddLink(t *testing.T) {
	doc := New()
	err := doc.AddPage(612, 792, func(p *Page) error {
		p.AddLink("https://example.com/a(b)", 72, 700, 120, 14, LinkOptions{})
		return nil
	})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
	out, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	s := string(out)
	for _, want := range []string{
		"/Subtype /Link",
		"/Rect [72 700 192 714]",
		"/Border [0 0 0]",
		"/S /URI",
		`/URI (https://example.com/a\(b\))`,
		"/Annots [",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestAddLinkUnderline(t *testing.T) {
	doc := New()
	err := doc.AddPage(612, 792, func(p *Page) error {
		p.AddLink("https://example.com", 72, 700, 120, 14, LinkOptions{Underline: "#00f"})
		want := "1 w\n0 0 1 RG\n72 698 m\n192 698 l\nS"
		if got := string(p.content()); got != want {
			t.Errorf("content = %q, want %q", got, want)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
}

func TestAddLinkUnderlineUnparseable(t *testing.T) {
	doc := New()
	err := doc.AddPage(612, 792, func(p *Page) error {
		p.AddLink("https://example.com", 72, 700, 120, 14, LinkOptions{Underline: "blue"})
		if got := string(p.content()); got != "" {
			t.Errorf("content = %q, want no operators", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("AddPage: %v", err)
	}
}

// jpegFixture builds a minimal JPEG stream with a baseline frame header.
func jpegFixture(width, height int, components byte) []byte {
	data := []byte{0xFF, 0xD8}
	payload := []byte{8, byte(height >> 8), byte(height), byte(width >> 8), byte(width), components}
	for i := byte(0); i < components; i++ {
		payload = append(payload, i+1, 0x11, 0)
	}
	length := len(payload) + 2
	data = append(data, 0xFF, 0xC0, byte(length>>8), byte(length))
	data = append(data, payload...)
	data = append(data, 0xFF, 0xDA, 0x00, 0x02, 0xAB, 0xCD)
	return data
}
