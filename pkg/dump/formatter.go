package dump

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mcbin/mcdiag/pkg/hexdump"
	"github.com/mcbin/mcdiag/pkg/protocol"
)

// ShortPayloadMessage is written instead of the segments when the payload is
// shorter than the lengths declared in the header.
const ShortPayloadMessage = "Requested to dump complete packet, but payload is smaller than expected"

// Section labels preceding each segment dump.
const (
	labelExtras = "\tExtras:\n"
	labelKey    = "\tKey:\n"
	labelBody   = "\tBody:\n"
)

// FormatHeader renders the header at the start of frame into dst and returns
// the length of the complete rendering. When the rendering does not fit, dst
// receives a truncated prefix and the return value exceeds len(dst), so a
// caller can retry with a larger buffer. FormatHeader returns 0 and leaves dst
// untouched when frame is shorter than protocol.HeaderSize.
func FormatHeader(dst []byte, frame []byte) int {
	line, ok := AppendHeader(nil, frame)
	if !ok {
		return 0
	}
	copy(dst, line)
	return len(line)
}

// AppendHeader appends the header rendering of frame to dst. ok is false and
// dst is returned unchanged when frame is too short to hold a header.
func AppendHeader(dst []byte, frame []byte) (out []byte, ok bool) {
	h, err := protocol.ParseHeader(frame)
	if err != nil {
		return dst, false
	}
	return appendHeader(dst, h), true
}

// HeaderString returns the header rendering of frame.
func HeaderString(frame []byte) (string, bool) {
	line, ok := AppendHeader(nil, frame)
	return string(line), ok
}

func appendHeader(dst []byte, h protocol.Header) []byte {
	dst = append(dst, "MAGIC="...)
	dst = append(dst, h.Magic.String()...)
	dst = append(dst, " OP="...)
	dst = append(dst, h.Opcode.String()...)

	if h.IsRequest() {
		dst = fmt.Appendf(dst, " VBID=%04x", h.VBucket)
	} else {
		dst = append(dst, " STATUS="...)
		dst = append(dst, h.Status.String()...)
	}

	dst = append(dst, " KLEN="...)
	dst = strconv.AppendUint(dst, uint64(h.KeyLen), 10)
	dst = append(dst, " EXTLEN="...)
	dst = strconv.AppendUint(dst, uint64(h.ExtLen), 16)
	dst = append(dst, " NBODY="...)
	dst = strconv.AppendUint(dst, uint64(h.BodyLen), 10)
	dst = append(dst, " OPAQUE="...)
	dst = strconv.AppendUint(dst, uint64(h.Opaque), 16)
	dst = append(dst, " CAS="...)
	dst = strconv.AppendUint(dst, h.CAS, 16)
	return dst
}

// FormatSegments writes the extras, key and body of a frame as labelled hex
// dumps, skipping empty segments.
//
// When payload is nil and header is longer than a frame header, the bytes
// after the header are used as payload. A header that is too short produces no
// output. A payload shorter than the header declares produces the single line
// ShortPayloadMessage. In both cases the underlying protocol error is returned.
func FormatSegments(w io.Writer, header, payload []byte) error {
	h, err := protocol.ParseHeader(header)
	if err != nil {
		return err
	}
	if payload == nil && len(header) > protocol.HeaderSize {
		payload = header[protocol.HeaderSize:]
	}

	f, err := protocol.SplitFrame(h, payload)
	if err != nil {
		if _, werr := io.WriteString(w, ShortPayloadMessage+"\n"); werr != nil {
			return werr
		}
		return err
	}

	for _, seg := range []struct {
		label string
		data  []byte
	}{
		{labelExtras, f.Extras},
		{labelKey, f.Key},
		{labelBody, f.Body},
	} {
		if len(seg.data) == 0 {
			continue
		}
		if _, err := io.WriteString(w, seg.label); err != nil {
			return err
		}
		if err := hexdump.Dump(w, seg.data); err != nil {
			return err
		}
	}
	return nil
}
