package capture

import (
	"context"
	"log/slog"
)

// SlogRecorder writes a summary of each frame to an slog.Logger at Debug
// level.
type SlogRecorder struct {
	logger *slog.Logger
}

// NewSlogRecorder returns a SlogRecorder writing to logger.
func NewSlogRecorder(logger *slog.Logger) *SlogRecorder {
	return &SlogRecorder{logger: logger}
}

// Record logs the event.
func (r *SlogRecorder) Record(event Event) {
	attrs := []slog.Attr{
		slog.String("conn_id", event.ConnectionID),
		slog.String("direction", event.Direction.String()),
		slog.Int("frame_size", event.Size),
		slog.Bool("truncated", event.Truncated),
	}

	if h, err := event.Header(); err == nil {
		attrs = append(attrs,
			slog.String("magic", h.Magic.String()),
			slog.String("opcode", h.Opcode.String()),
			slog.Uint64("opaque", uint64(h.Opaque)),
		)
		if h.IsRequest() {
			attrs = append(attrs, slog.Uint64("vbucket", uint64(h.VBucket)))
		} else {
			attrs = append(attrs, slog.String("status", h.Status.String()))
		}
	}

	r.logger.LogAttrs(context.Background(), slog.LevelDebug, "frame", attrs...)
}

var _ Recorder = (*SlogRecorder)(nil)
