package capture

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/mcbin/mcdiag/pkg/config"
	"github.com/mcbin/mcdiag/pkg/protocol"
)

func TestFileRecorderWritesCBOR(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mcap")
	rec, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("NewFileRecorder failed: %v", err)
	}

	data := frame(protocol.MagicRequest, protocol.OpGet, "k", "")
	event := Event{
		Timestamp:    time.Date(2026, 3, 4, 5, 6, 7, 890, time.UTC),
		ConnectionID: "conn-1",
		Direction:    DirectionOut,
		Size:         len(data),
		Data:         data,
	}
	rec.Record(event)
	rec.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read capture: %v", err)
	}
	decoded, err := DecodeEvent(raw)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !decoded.Timestamp.Equal(event.Timestamp) {
		t.Errorf("Timestamp: got %v, want %v", decoded.Timestamp, event.Timestamp)
	}
	if decoded.ConnectionID != "conn-1" {
		t.Errorf("ConnectionID: got %q, want %q", decoded.ConnectionID, "conn-1")
	}
	if decoded.Direction != DirectionOut {
		t.Errorf("Direction: got %v, want OUT", decoded.Direction)
	}
	if !bytes.Equal(decoded.Data, data) {
		t.Errorf("Data: got %x, want %x", decoded.Data, data)
	}
}

func TestFileRecorderAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mcap")

	for i := range 2 {
		rec, err := NewFileRecorder(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		rec.Record(Event{ConnectionID: "conn", Size: i})
		rec.Close()
	}

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	for want := range 2 {
		event, err := reader.Next()
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if event.Size != want {
			t.Errorf("Size: got %d, want %d", event.Size, want)
		}
	}
}

func TestFileRecorderCloseIdempotent(t *testing.T) {
	rec, err := NewFileRecorder(filepath.Join(t.TempDir(), "test.mcap"))
	if err != nil {
		t.Fatalf("NewFileRecorder failed: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Errorf("first Close: %v", err)
	}
	if err := rec.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	// Recording after Close is ignored.
	rec.Record(Event{ConnectionID: "late"})
}

func TestFileRecorderConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.mcap")
	rec, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("NewFileRecorder failed: %v", err)
	}

	const writers, perWriter = 8, 25
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perWriter {
				rec.Record(Event{ConnectionID: "conn", Data: []byte{1, 2, 3}})
			}
		}()
	}
	wg.Wait()
	rec.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	count := 0
	for {
		if _, err := reader.Next(); err != nil {
			break
		}
		count++
	}
	if count != writers*perWriter {
		t.Errorf("got %d events, want %d", count, writers*perWriter)
	}
}

func TestFileRecorderBadPath(t *testing.T) {
	_, err := NewFileRecorder(filepath.Join(t.TempDir(), "missing", "test.mcap"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestMultiRecorderCallsAll(t *testing.T) {
	a, b := &memRecorder{}, &memRecorder{}
	multi := NewMultiRecorder(a, b)

	multi.Record(Event{ConnectionID: "conn-1"})

	for i, m := range []*memRecorder{a, b} {
		if len(m.events) != 1 || m.events[0].ConnectionID != "conn-1" {
			t.Errorf("recorder %d: got %+v", i, m.events)
		}
	}
}

type closingRecorder struct {
	memRecorder
	err    error
	closed bool
}

func (c *closingRecorder) Close() error {
	c.closed = true
	return c.err
}

func TestMultiRecorderClose(t *testing.T) {
	boom := errors.New("boom")
	a := &closingRecorder{}
	b := &closingRecorder{err: boom}
	multi := NewMultiRecorder(a, &memRecorder{}, b)

	err := multi.Close()
	if !errors.Is(err, boom) {
		t.Errorf("Close: got %v, want %v", err, boom)
	}
	if !a.closed || !b.closed {
		t.Error("not every closer was closed")
	}
}

func TestFromConfig(t *testing.T) {
	rec, err := FromConfig(config.Capture{})
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	if _, ok := rec.(NoopRecorder); !ok {
		t.Errorf("got %T, want NoopRecorder", rec)
	}

	path := filepath.Join(t.TempDir(), "cfg.mcap")
	rec, err = FromConfig(config.Capture{File: path})
	if err != nil {
		t.Fatalf("FromConfig failed: %v", err)
	}
	defer rec.Close()
	if _, ok := rec.(*FileRecorder); !ok {
		t.Errorf("got %T, want *FileRecorder", rec)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("capture file not created: %v", err)
	}
}
