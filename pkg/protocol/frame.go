package protocol

import "fmt"

// Frame is a header together with its payload segments. The segments alias
// the buffer they were split from.
type Frame struct {
	Header Header
	Extras []byte
	Key    []byte
	Body   []byte
}

// SplitFrame cuts payload into the extras, key and body segments declared by h.
//
// BodyLen counts the extras and the key, so the body segment is
// BodyLen-ExtLen-KeyLen bytes long. SplitFrame returns ErrShortPayload when the
// declared lengths exceed the available payload: either the payload holds fewer
// than BodyLen bytes, or ExtLen+KeyLen alone is larger than BodyLen.
func SplitFrame(h Header, payload []byte) (Frame, error) {
	ext := uint64(h.ExtLen)
	key := uint64(h.KeyLen)
	body := uint64(h.BodyLen)

	if ext+key > body || uint64(len(payload)) < body {
		return Frame{}, fmt.Errorf("%w: have %d bytes, header declares extras=%d key=%d body=%d",
			ErrShortPayload, len(payload), ext, key, body)
	}
	value := body - ext - key

	return Frame{
		Header: h,
		Extras: payload[:ext:ext],
		Key:    payload[ext : ext+key : ext+key],
		Body:   payload[ext+key : ext+key+value : ext+key+value],
	}, nil
}

// ParseFrame decodes a header from b and splits the bytes that follow it.
func ParseFrame(b []byte) (Frame, error) {
	h, err := ParseHeader(b)
	if err != nil {
		return Frame{}, err
	}
	return SplitFrame(h, b[HeaderSize:])
}

// EncodeFrame builds a complete frame from h and the given segments. The
// length fields of h are overwritten to match the segments.
func EncodeFrame(h Header, extras, key, body []byte) []byte {
	h.ExtLen = uint8(len(extras))
	h.KeyLen = uint16(len(key))
	h.BodyLen = uint32(len(extras) + len(key) + len(body))

	b := make([]byte, 0, HeaderSize+int(h.BodyLen))
	b, _ = h.AppendBinary(b)
	b = append(b, extras...)
	b = append(b, key...)
	b = append(b, body...)
	return b
}
