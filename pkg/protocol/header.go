package protocol

import (
	"encoding/binary"
	"errors"
)

// HeaderSize is the size of the fixed frame header in bytes.
const HeaderSize = 24

// Header field offsets.
const (
	offMagic    = 0
	offOpcode   = 1
	offKeyLen   = 2
	offExtLen   = 4
	offDataType = 5
	offVBucket  = 6 // status in responses
	offBodyLen  = 8
	offOpaque   = 12
	offCAS      = 16
)

var (
	// ErrShortHeader is returned when fewer than HeaderSize bytes are available.
	ErrShortHeader = errors.New("protocol: buffer shorter than frame header")

	// ErrShortPayload is returned when the payload is shorter than the
	// segment lengths declared by the header.
	ErrShortPayload = errors.New("protocol: payload shorter than declared")
)

// Kind is the frame direction derived from the magic byte.
type Kind uint8

const (
	// KindUnknown is a header whose magic is neither request nor response.
	KindUnknown Kind = iota
	// KindRequest is a client-to-server frame.
	KindRequest
	// KindResponse is a server-to-client frame.
	KindResponse
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRequest:
		return "REQUEST"
	case KindResponse:
		return "RESPONSE"
	default:
		return "UNKNOWN"
	}
}

// KindOf returns the frame kind for a magic byte.
func KindOf(m Magic) Kind {
	switch m {
	case MagicRequest:
		return KindRequest
	case MagicResponse:
		return KindResponse
	default:
		return KindUnknown
	}
}

// Header is a decoded frame header.
//
// VBucket is only meaningful for requests and Status only for responses. A
// header with an unknown magic is decoded like a response so the raw 16-bit
// field is still available for display.
type Header struct {
	Kind     Kind
	Magic    Magic
	Opcode   Opcode
	KeyLen   uint16
	ExtLen   uint8
	DataType uint8
	VBucket  uint16
	Status   Status
	BodyLen  uint32
	Opaque   uint32
	CAS      uint64
}

// ParseHeader decodes the first HeaderSize bytes of b. Bytes past the header
// are ignored. It returns ErrShortHeader when b is too short and never panics.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrShortHeader
	}

	h := Header{
		Magic:    Magic(b[offMagic]),
		Opcode:   Opcode(b[offOpcode]),
		KeyLen:   binary.BigEndian.Uint16(b[offKeyLen:]),
		ExtLen:   b[offExtLen],
		DataType: b[offDataType],
		BodyLen:  binary.BigEndian.Uint32(b[offBodyLen:]),
		Opaque:   binary.BigEndian.Uint32(b[offOpaque:]),
		CAS:      binary.BigEndian.Uint64(b[offCAS:]),
	}
	h.Kind = KindOf(h.Magic)

	field := binary.BigEndian.Uint16(b[offVBucket:])
	if h.Kind == KindRequest {
		h.VBucket = field
	} else {
		h.Status = Status(field)
	}
	return h, nil
}

// IsRequest reports whether the header belongs to a request frame.
func (h Header) IsRequest() bool {
	return h.Kind == KindRequest
}

// IsResponse reports whether the header belongs to a response frame.
func (h Header) IsResponse() bool {
	return h.Kind == KindResponse
}

// FrameLen returns the total frame size announced by the header.
func (h Header) FrameLen() int {
	return HeaderSize + int(h.BodyLen)
}

// AppendBinary appends the wire encoding of h to b.
func (h Header) AppendBinary(b []byte) ([]byte, error) {
	field := uint16(h.Status)
	if h.Kind == KindRequest || (h.Kind == KindUnknown && h.Magic == MagicRequest) {
		field = h.VBucket
	}

	b = append(b, byte(h.Magic), byte(h.Opcode))
	b = binary.BigEndian.AppendUint16(b, h.KeyLen)
	b = append(b, h.ExtLen, h.DataType)
	b = binary.BigEndian.AppendUint16(b, field)
	b = binary.BigEndian.AppendUint32(b, h.BodyLen)
	b = binary.BigEndian.AppendUint32(b, h.Opaque)
	b = binary.BigEndian.AppendUint64(b, h.CAS)
	return b, nil
}
