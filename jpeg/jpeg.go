// Package jpeg inspects JPEG byte streams without decoding them. The
// builder embeds JPEG data as-is under a DCTDecode filter, so all it needs
// from the stream are the pixel dimensions and the color space declared by
// the frame header.
package jpeg

import (
	"encoding/binary"
	"errors"
)

// ErrMalformed reports a stream that is not a JPEG, is truncated, or
// reaches its scan data before declaring a frame header.
var ErrMalformed = errors.New("jpeg: malformed image data")

// ColorSpace is the PDF color space name matching a frame header's
// component count.
type ColorSpace string

const (
	DeviceGray ColorSpace = "DeviceGray"
	DeviceRGB  ColorSpace = "DeviceRGB"
	DeviceCMYK ColorSpace = "DeviceCMYK"
)

// Info holds the properties read from a frame header.
type Info struct {
	Width      int
	Height     int
	ColorSpace ColorSpace
}

const (
	markerPrefix = 0xFF
	markerSOI    = 0xD8 // start of image
	markerEOI    = 0xD9 // end of image
	markerSOF0   = 0xC0 // baseline frame header
	markerSOF2   = 0xC2 // progressive frame header
	markerSOS    = 0xDA // start of scan
	markerTEM    = 0x01
	markerRST0   = 0xD0
	markerRST7   = 0xD7
)

// DecodeInfo scans data for a frame header and returns its dimensions and
// color space. Marker segments are skipped generically via their 16-bit
// length field; segment sizes vary and are never assumed. The scan fails
// with ErrMalformed if the stream does not open with SOI, if start-of-scan
// arrives before a frame header, or if the data is truncated.
func DecodeInfo(data []byte) (Info, error) {
	if len(data) < 2 || data[0] != markerPrefix || data[1] != markerSOI {
		return Info{}, ErrMalformed
	}
	i := 2
	for i+1 < len(data) {
		if data[i] != markerPrefix {
			i++
			continue
		}
		marker := data[i+1]
		if marker == markerPrefix {
			// Fill byte before the real marker code.
			i++
			continue
		}
		i += 2
		if marker == markerTEM || marker == markerSOI || marker == markerEOI ||
			(marker >= markerRST0 && marker <= markerRST7) {
			// Standalone markers carry no length field.
			continue
		}
		if marker == markerSOS {
			return Info{}, ErrMalformed
		}
		if i+2 > len(data) {
			return Info{}, ErrMalformed
		}
		length := int(binary.BigEndian.Uint16(data[i:]))
		if marker == markerSOF0 || marker == markerSOF2 {
			// Payload layout after the length field: precision (1 byte),
			// height (2), width (2), component count (1).
			if length < 9 || i+8 > len(data) {
				return Info{}, ErrMalformed
			}
			height := int(binary.BigEndian.Uint16(data[i+3:]))
			width := int(binary.BigEndian.Uint16(data[i+5:]))
			components := int(data[i+7])
			return Info{Width: width, Height: height, ColorSpace: colorSpaceFor(components)}, nil
		}
		if length < 2 {
			return Info{}, ErrMalformed
		}
		i += length
	}
	return Info{}, ErrMalformed
}

func colorSpaceFor(components int) ColorSpace {
	switch components {
	case 1:
		return DeviceGray
	case 4:
		return DeviceCMYK
	default:
		return DeviceRGB
	}
}
