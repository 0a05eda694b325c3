package commands

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/mcbin/mcdiag/pkg/capture"
	"github.com/mcbin/mcdiag/pkg/config"
	"github.com/mcbin/mcdiag/pkg/debuglog"
	"github.com/mcbin/mcdiag/pkg/dump"
	"github.com/mcbin/mcdiag/pkg/protocol"
	"github.com/mcbin/mcdiag/pkg/transport"
)

// DecodeOptions controls the decode command.
type DecodeOptions struct {
	// Packets adds the segment hex dumps to each header line.
	Packets bool

	// Recorder, when set, receives every decoded frame. Requests are
	// recorded as outgoing and everything else as incoming.
	Recorder capture.Recorder

	// MaxFrame limits the bytes recorded per frame; 0 keeps the default.
	MaxFrame int
}

// ParseHexFrame decodes a frame typed or pasted as hex. Whitespace, colons
// and a leading 0x are ignored.
func ParseHexFrame(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', ':':
			return -1
		}
		return r
	}, s)

	frame, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex frame: %w", err)
	}
	return frame, nil
}

// frameDecoder prints decoded frames to one writer.
type frameDecoder struct {
	out     io.Writer
	dumper  *dump.Dumper
	session *capture.Session
}

func newFrameDecoder(w io.Writer, opts DecodeOptions) *frameDecoder {
	packets := ""
	if opts.Packets {
		packets = "1"
	}
	return &frameDecoder{
		out:     w,
		dumper:  dump.New(dump.WithOutput(w), dump.WithConfig(config.Dump{Headers: "1", Packets: packets})),
		session: capture.NewSession(opts.Recorder, capture.WithMaxFrame(opts.MaxFrame)),
	}
}

func (d *frameDecoder) decode(frame []byte) {
	if len(frame) < protocol.HeaderSize {
		fmt.Fprintf(d.out, "short frame: %d bytes, a header needs %d\n", len(frame), protocol.HeaderSize)
	} else {
		d.dumper.DumpFrame(frame)
	}

	if frame[0] == byte(protocol.MagicRequest) {
		d.session.Sent(frame)
	} else {
		d.session.Received(frame)
	}
}

// RunDecode reads hex-encoded frames from r, one per line, and writes their
// decoding to w. Blank lines and lines starting with # are skipped.
func RunDecode(r io.Reader, opts DecodeOptions, w io.Writer) error {
	dec := newFrameDecoder(w, opts)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo, frames := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		frame, err := ParseHexFrame(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if len(frame) == 0 {
			continue
		}
		dec.decode(frame)
		frames++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	debuglog.Debug("decoded %d frames from %d lines", frames, lineNo)
	return nil
}

// RunDecodeRaw reads back-to-back binary frames from r, as captured off the
// wire, and writes their decoding to w. A stream that ends inside a frame
// is reported as an error after the complete frames are printed.
func RunDecodeRaw(r io.Reader, opts DecodeOptions, w io.Writer) error {
	dec := newFrameDecoder(w, opts)
	reader := transport.NewFrameReader(r)

	frames := 0
	for {
		frame, err := reader.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("frame %d: %w", frames+1, err)
		}
		dec.decode(frame)
		frames++
	}

	debuglog.Debug("decoded %d raw frames", frames)
	return nil
}
