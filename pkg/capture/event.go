package capture

import (
	"fmt"
	"strings"
	"time"

	"github.com/mcbin/mcdiag/pkg/protocol"
)

// Event is one frame crossing a connection.
type Event struct {
	// Timestamp when the frame was sent or received.
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction of the frame relative to the local endpoint.
	Direction Direction `cbor:"3,keyasint"`

	// Size is the length of the original frame in bytes.
	Size int `cbor:"4,keyasint"`

	// Data holds the frame bytes, possibly truncated.
	Data []byte `cbor:"5,keyasint,omitempty"`

	// Truncated is set when Data is shorter than Size.
	Truncated bool `cbor:"6,keyasint,omitempty"`
}

// Header decodes the frame header carried in Data.
func (e Event) Header() (protocol.Header, error) {
	return protocol.ParseHeader(e.Data)
}

// Direction indicates the direction of a frame.
type Direction uint8

const (
	// DirectionIn is a frame read from the peer.
	DirectionIn Direction = 0
	// DirectionOut is a frame written to the peer.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// ParseDirection parses "in" or "out", ignoring case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return DirectionIn, nil
	case "out":
		return DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (valid: in, out)", s)
	}
}
