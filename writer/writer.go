// Package writer emits a finished object list as a classic PDF file: a
// header, every object in id order, a flat cross-reference table, a
// trailer and the startxref pointer. The pass is single-pass and
// append-only, so each object's byte offset is recorded as it is written
// rather than computed afterwards.
package writer

import (
	"bytes"
	"fmt"

	"github.com/docforge/mdpdf/raw"
)

// header identifies the format version; the second line is a binary
// marker comment so transfer tools treat the file as binary.
const header = "%PDF-1.7\n%\xE2\xE3\xCF\xD3\n"

// Serialize renders objects (index i holds object number i+1) into a
// complete file with root as the catalog reference.
func Serialize(objects []raw.Object, root raw.RefObj) []byte {
	var buf bytes.Buffer
	buf.WriteString(header)

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n", i+1)
		if stream, ok := obj.(*raw.StreamObj); ok {
			buf.WriteString(raw.Encode(stream.Dict))
			buf.WriteString("\nstream\n")
			buf.Write(stream.Data)
			buf.WriteString("\nendstream\nendobj\n")
		} else {
			buf.WriteString(raw.Encode(obj))
			buf.WriteString("\nendobj\n")
		}
	}

	xrefOffset := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}

	trailer := raw.Dict()
	trailer.Set("Size", raw.NumberInt(int64(len(objects)+1)))
	trailer.Set("Root", root)
	buf.WriteString("trailer\n")
	buf.WriteString(raw.Encode(trailer))
	fmt.Fprintf(&buf, "\nstartxref\n%d\n%%%%EOF\n", xrefOffset)

	return buf.Bytes()
}
