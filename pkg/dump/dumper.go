package dump

import (
	"io"
	"os"
	"sync"

	"github.com/mcbin/mcdiag/pkg/config"
)

// headerBufSize bounds a rendered header line.
const headerBufSize = 1024

// Dumper writes frame dumps to a sink when the corresponding gates are on.
type Dumper struct {
	out   io.Writer
	gates *Gates
	mu    sync.Mutex
}

// Option configures a Dumper.
type Option func(*Dumper)

// WithOutput sets the sink. The default is os.Stderr.
func WithOutput(w io.Writer) Option {
	return func(d *Dumper) {
		d.out = w
	}
}

// WithGates replaces the environment-backed gates.
func WithGates(g *Gates) Option {
	return func(d *Dumper) {
		d.gates = g
	}
}

// WithConfig resolves the gates from cfg instead of the environment.
func WithConfig(cfg config.Dump) Option {
	return WithGates(StaticGates(cfg))
}

// New returns a Dumper. Without options it writes to os.Stderr and reads its
// switches from the environment on first use.
func New(opts ...Option) *Dumper {
	d := &Dumper{}
	for _, opt := range opts {
		opt(d)
	}
	if d.out == nil {
		d.out = os.Stderr
	}
	if d.gates == nil {
		d.gates = EnvironmentGates()
	}
	return d
}

var defaultDumper = sync.OnceValue(func() *Dumper { return New() })

// Default returns the process-wide Dumper.
func Default() *Dumper {
	return defaultDumper()
}

// Gates returns the gates consulted by d.
func (d *Dumper) Gates() *Gates {
	return d.gates
}

// DumpHeader writes the header line of frame when header dumping is on.
// Frames shorter than a header produce no output.
func (d *Dumper) DumpHeader(frame []byte) {
	if !d.gates.IsEnabled(FeatureHeaders) {
		return
	}

	var buf [headerBufSize]byte
	line := headerLine(&buf, frame)
	if line == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	_, _ = d.out.Write(line)
}

// DumpPacket writes the header line, then the segments when packet dumping is
// on. A nil payload means the segments follow the header inside header.
// Both gates are resolved before anything is written, and the whole packet
// is written under one lock.
func (d *Dumper) DumpPacket(header, payload []byte) {
	headers := d.gates.IsEnabled(FeatureHeaders)
	packets := d.gates.IsEnabled(FeaturePackets)
	if !headers && !packets {
		return
	}

	var buf [headerBufSize]byte
	var line []byte
	if headers {
		line = headerLine(&buf, header)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if line != nil {
		_, _ = d.out.Write(line)
	}
	if packets {
		_ = FormatSegments(d.out, header, payload)
	}
}

// headerLine renders the header of frame plus a newline into buf. It
// returns nil for a frame shorter than a header.
func headerLine(buf *[headerBufSize]byte, frame []byte) []byte {
	n := FormatHeader(buf[:len(buf)-1], frame)
	if n == 0 {
		return nil
	}
	n = min(n, len(buf)-1)
	buf[n] = '\n'
	return buf[:n+1]
}

// DumpFrame dumps a complete frame held in one buffer.
func (d *Dumper) DumpFrame(frame []byte) {
	d.DumpPacket(frame, nil)
}

// DumpHeader dumps through the default Dumper.
func DumpHeader(frame []byte) {
	Default().DumpHeader(frame)
}

// DumpPacket dumps through the default Dumper.
func DumpPacket(header, payload []byte) {
	Default().DumpPacket(header, payload)
}
