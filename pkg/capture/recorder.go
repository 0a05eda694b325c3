package capture

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/mcbin/mcdiag/pkg/config"
)

// Recorder receives captured frames. Implementations must be safe for
// concurrent use and should return quickly.
type Recorder interface {
	Record(event Event)
}

// RecordCloser is a Recorder that holds resources.
type RecordCloser interface {
	Recorder
	io.Closer
}

// NoopRecorder discards all events. The zero value is ready to use.
type NoopRecorder struct{}

// Record discards the event.
func (NoopRecorder) Record(Event) {}

// Close does nothing.
func (NoopRecorder) Close() error { return nil }

// FileRecorder appends events to a file in CBOR format.
// It is safe for concurrent use from multiple goroutines.
type FileRecorder struct {
	file    *os.File
	encoder *cbor.Encoder
	mu      sync.Mutex
	closed  bool
}

// NewFileRecorder opens path for appending, creating it with permissions 0644
// when it does not exist.
func NewFileRecorder(path string) (*FileRecorder, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &FileRecorder{
		file:    f,
		encoder: NewEncoder(f),
	}, nil
}

// Record writes an event to the file. Encoding errors are dropped.
func (r *FileRecorder) Record(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	_ = r.encoder.Encode(event)
}

// Close closes the file. It is safe to call Close multiple times; events
// recorded afterwards are ignored.
func (r *FileRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	return r.file.Close()
}

// MultiRecorder fans events out to several recorders.
type MultiRecorder struct {
	recorders []Recorder
}

// NewMultiRecorder returns a MultiRecorder sending to all of recorders.
func NewMultiRecorder(recorders ...Recorder) *MultiRecorder {
	return &MultiRecorder{recorders: recorders}
}

// Record sends the event to every recorder in order.
func (m *MultiRecorder) Record(event Event) {
	for _, r := range m.recorders {
		r.Record(event)
	}
}

// Close closes every recorder that implements io.Closer.
func (m *MultiRecorder) Close() error {
	var errs []error
	for _, r := range m.recorders {
		if c, ok := r.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}

// FromConfig returns a FileRecorder for the configured capture file, or a
// NoopRecorder when capture is off.
func FromConfig(cfg config.Capture) (RecordCloser, error) {
	if cfg.File == "" {
		return NoopRecorder{}, nil
	}
	return NewFileRecorder(cfg.File)
}

// Compile-time interface satisfaction checks.
var (
	_ RecordCloser = NoopRecorder{}
	_ RecordCloser = (*FileRecorder)(nil)
	_ RecordCloser = (*MultiRecorder)(nil)
)
