package capture

import (
	"path/filepath"
	"testing"

	"github.com/mcbin/mcdiag/pkg/protocol"
)

// memRecorder keeps events in memory.
type memRecorder struct {
	events []Event
}

func (m *memRecorder) Record(event Event) {
	m.events = append(m.events, event)
}

func frame(magic protocol.Magic, op protocol.Opcode, key, body string) []byte {
	h := protocol.Header{Magic: magic, Opcode: op, Opaque: 7}
	h.Kind = protocol.KindOf(magic)
	return protocol.EncodeFrame(h, nil, []byte(key), []byte(body))
}

func createTestCapture(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mcap")

	rec, err := NewFileRecorder(path)
	if err != nil {
		t.Fatalf("failed to create recorder: %v", err)
	}
	for _, e := range events {
		rec.Record(e)
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}
