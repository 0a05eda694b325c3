// Package hexdump renders byte ranges as offset / hex / ASCII lines.
//
// Every line covers 16 bytes:
//
//	[0000]   30 31 32 33 34 35 36 37  38 39 3A 3B 3C 3D 3E 3F    01234567 89......
//
// The offset is four lowercase hex digits and wraps past 0xffff, so every
// line keeps the same width. The hex column uses uppercase
// digits with one extra space after the eighth byte and is padded to a fixed
// width so that the ASCII column of a short final line lines up with the lines
// above it. Bytes that are not ASCII letters or digits print as '.'.
//
// The layout is consumed by existing log-scraping tools and must not change.
package hexdump

import (
	"fmt"
	"io"
	"strings"
)

const (
	// BytesPerLine is the number of input bytes rendered on one line.
	BytesPerLine = 16

	groupSize      = 8
	hexColumnWidth = 50

	// "[oooo]   " + hex column + "  " + ASCII column with group space + "\n"
	lineCap = 9 + hexColumnWidth + 2 + BytesPerLine + 1 + 1
)

const hexDigits = "0123456789ABCDEF"

// Dump writes the hex dump of data to w, one Write call per line.
// Nothing is written for empty input.
func Dump(w io.Writer, data []byte) error {
	line := make([]byte, 0, lineCap)
	for off := 0; off < len(data); off += BytesPerLine {
		end := min(off+BytesPerLine, len(data))
		line = AppendLine(line[:0], off, data[off:end])
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

// Sprint returns the hex dump of data as a string.
func Sprint(data []byte) string {
	var b strings.Builder
	b.Grow((len(data)/BytesPerLine + 1) * lineCap)
	_ = Dump(&b, data)
	return b.String()
}

// AppendLine appends a single dump line for chunk, which starts at offset in
// the original buffer, and returns the extended slice. chunk must not be
// longer than BytesPerLine; extra bytes are ignored. Only the low 16 bits of
// offset are printed.
func AppendLine(dst []byte, offset int, chunk []byte) []byte {
	if len(chunk) > BytesPerLine {
		chunk = chunk[:BytesPerLine]
	}

	dst = fmt.Appendf(dst, "[%04x]   ", offset&0xffff)

	start := len(dst)
	for i, c := range chunk {
		dst = append(dst, hexDigits[c>>4], hexDigits[c&0x0f], ' ')
		if i == groupSize-1 {
			dst = append(dst, ' ')
		}
	}
	for len(dst)-start < hexColumnWidth {
		dst = append(dst, ' ')
	}

	dst = append(dst, ' ', ' ')
	for i, c := range chunk {
		dst = append(dst, printable(c))
		if i == groupSize-1 {
			dst = append(dst, ' ')
		}
	}
	return append(dst, '\n')
}

// printable returns c when it is an ASCII letter or digit and '.' otherwise.
func printable(c byte) byte {
	switch {
	case c >= '0' && c <= '9', c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		return c
	default:
		return '.'
	}
}
