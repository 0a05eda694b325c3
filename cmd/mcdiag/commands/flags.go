// Package commands implements the mcdiag CLI commands.
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mcbin/mcdiag/pkg/capture"
	"github.com/mcbin/mcdiag/pkg/protocol"
)

// ParseDirectionFlag parses a direction flag value (in, out).
func ParseDirectionFlag(s string) (capture.Direction, error) {
	return capture.ParseDirection(s)
}

// ParseOpcodeFlag parses an opcode given by name (GET, getq) or as a hex
// number (0x0c).
func ParseOpcodeFlag(s string) (protocol.Opcode, error) {
	if op, ok := protocol.ParseOpcode(strings.ToUpper(s)); ok {
		return op, nil
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		n, err := strconv.ParseUint(s[2:], 16, 8)
		if err == nil {
			return protocol.Opcode(n), nil
		}
	}
	return 0, fmt.Errorf("invalid opcode: %s (use a name such as GET or a hex value such as 0x0c)", s)
}

// FilterOptions are the textual filter flags shared by view and filter.
type FilterOptions struct {
	ConnID    string
	Direction string
	Opcode    string
	TimeStart string
	TimeEnd   string
}

// Build converts the options into a capture filter.
func (o FilterOptions) Build() (capture.Filter, error) {
	filter := capture.Filter{ConnectionID: o.ConnID}

	if o.Direction != "" {
		d, err := ParseDirectionFlag(o.Direction)
		if err != nil {
			return capture.Filter{}, err
		}
		filter.Direction = &d
	}

	if o.Opcode != "" {
		op, err := ParseOpcodeFlag(o.Opcode)
		if err != nil {
			return capture.Filter{}, err
		}
		filter.Opcode = &op
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return capture.Filter{}, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return capture.Filter{}, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatTimestamp renders a timestamp the way every command prints it.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000000Z")
}
