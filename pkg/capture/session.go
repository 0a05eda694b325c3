package capture

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/mcbin/mcdiag/pkg/config"
	"github.com/mcbin/mcdiag/pkg/dump"
)

// Session reports the frames of one connection to a Recorder and,
// optionally, a Dumper.
type Session struct {
	id       string
	recorder Recorder
	dumper   *dump.Dumper
	maxFrame int
	now      func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDumper also passes every frame to d.
func WithDumper(d *dump.Dumper) SessionOption {
	return func(s *Session) {
		s.dumper = d
	}
}

// WithMaxFrame limits the number of bytes kept per frame. Values <= 0 keep
// the default.
func WithMaxFrame(n int) SessionOption {
	return func(s *Session) {
		if n > 0 {
			s.maxFrame = n
		}
	}
}

// WithConnectionID replaces the generated connection ID.
func WithConnectionID(id string) SessionOption {
	return func(s *Session) {
		s.id = id
	}
}

// WithClock replaces time.Now as the event timestamp source.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) {
		s.now = now
	}
}

// NewSession returns a Session with a fresh connection ID. A nil recorder
// discards events.
func NewSession(recorder Recorder, opts ...SessionOption) *Session {
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	s := &Session{
		id:       uuid.NewString(),
		recorder: recorder,
		maxFrame: config.DefaultMaxFrame,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the connection ID stamped on every event.
func (s *Session) ID() string {
	return s.id
}

// Sent reports a frame written to the peer.
func (s *Session) Sent(frame []byte) {
	s.record(DirectionOut, frame)
}

// Received reports a frame read from the peer.
func (s *Session) Received(frame []byte) {
	s.record(DirectionIn, frame)
}

func (s *Session) record(dir Direction, frame []byte) {
	if s.dumper != nil {
		s.dumper.DumpFrame(frame)
	}

	data := frame
	truncated := false
	if len(data) > s.maxFrame {
		data = data[:s.maxFrame]
		truncated = true
	}

	s.recorder.Record(Event{
		Timestamp:    s.now(),
		ConnectionID: s.id,
		Direction:    dir,
		Size:         len(frame),
		Data:         bytes.Clone(data),
		Truncated:    truncated,
	})
}
