package commands

import (
	"path/filepath"
	"testing"

	"github.com/mcbin/mcdiag/pkg/capture"
	"github.com/mcbin/mcdiag/pkg/protocol"
)

type memRecorder struct {
	events []capture.Event
}

func (m *memRecorder) Record(event capture.Event) {
	m.events = append(m.events, event)
}

func request(op protocol.Opcode, key, body string) []byte {
	return protocol.EncodeFrame(protocol.Header{
		Kind:   protocol.KindRequest,
		Magic:  protocol.MagicRequest,
		Opcode: op,
		Opaque: 7,
	}, nil, []byte(key), []byte(body))
}

func response(op protocol.Opcode, status protocol.Status, body string) []byte {
	return protocol.EncodeFrame(protocol.Header{
		Kind:   protocol.KindResponse,
		Magic:  protocol.MagicResponse,
		Opcode: op,
		Status: status,
		Opaque: 7,
	}, nil, nil, []byte(body))
}

func createTestCapture(t *testing.T, events []capture.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.mcap")

	rec, err := capture.NewFileRecorder(path)
	if err != nil {
		t.Fatalf("failed to create recorder: %v", err)
	}
	for _, e := range events {
		rec.Record(e)
	}
	rec.Close()
	return path
}
