package transport

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mcbin/mcdiag/pkg/capture"
	"github.com/mcbin/mcdiag/pkg/protocol"
)

// DefaultMaxFrameSize is the default limit for a complete frame: a header plus
// a 1 MiB body.
const DefaultMaxFrameSize = protocol.HeaderSize + 1<<20

// Framing errors.
var (
	// ErrFrameTooLarge indicates the frame exceeds the maximum size.
	ErrFrameTooLarge = errors.New("frame too large")

	// ErrFrameTruncated indicates the stream ended inside a frame.
	ErrFrameTruncated = errors.New("frame truncated")

	// ErrMalformedFrame indicates a buffer whose length does not match its
	// header.
	ErrMalformedFrame = errors.New("malformed frame")
)

// FrameReader reads frames from an underlying reader.
type FrameReader struct {
	r            io.Reader
	maxFrameSize int
	header       [protocol.HeaderSize]byte

	session *capture.Session
}

// NewFrameReader creates a frame reader with the default size limit.
func NewFrameReader(r io.Reader) *FrameReader {
	return NewFrameReaderWithMaxSize(r, DefaultMaxFrameSize)
}

// NewFrameReaderWithMaxSize creates a frame reader with a custom size limit.
func NewFrameReaderWithMaxSize(r io.Reader, maxSize int) *FrameReader {
	return &FrameReader{
		r:            r,
		maxFrameSize: maxSize,
	}
}

// SetSession reports every frame read to s as received. Pass nil to stop.
func (fr *FrameReader) SetSession(s *capture.Session) {
	fr.session = s
}

// SetMaxFrameSize updates the maximum frame size.
func (fr *FrameReader) SetMaxFrameSize(size int) {
	fr.maxFrameSize = size
}

// ReadFrame reads one complete frame, header included. It returns io.EOF when
// the stream ends cleanly between frames.
func (fr *FrameReader) ReadFrame() ([]byte, error) {
	if _, err := io.ReadFull(fr.r, fr.header[:]); err != nil {
		if err == io.EOF {
			return nil, err
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrFrameTruncated
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	h, err := protocol.ParseHeader(fr.header[:])
	if err != nil {
		return nil, err
	}

	size := h.FrameLen()
	if size > fr.maxFrameSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, size, fr.maxFrameSize)
	}

	frame := make([]byte, size)
	copy(frame, fr.header[:])
	if _, err := io.ReadFull(fr.r, frame[protocol.HeaderSize:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || err == io.EOF {
			return nil, ErrFrameTruncated
		}
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	if fr.session != nil {
		fr.session.Received(frame)
	}
	return frame, nil
}

// FrameWriter writes frames to an underlying writer.
type FrameWriter struct {
	w            io.Writer
	maxFrameSize int
	mu           sync.Mutex

	session *capture.Session
}

// NewFrameWriter creates a frame writer with the default size limit.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return NewFrameWriterWithMaxSize(w, DefaultMaxFrameSize)
}

// NewFrameWriterWithMaxSize creates a frame writer with a custom size limit.
func NewFrameWriterWithMaxSize(w io.Writer, maxSize int) *FrameWriter {
	return &FrameWriter{
		w:            w,
		maxFrameSize: maxSize,
	}
}

// SetSession reports every frame written to s as sent. Pass nil to stop.
func (fw *FrameWriter) SetSession(s *capture.Session) {
	fw.session = s
}

// WriteFrame writes one complete frame. The frame must be exactly as long as
// its header announces. Safe for concurrent use.
func (fw *FrameWriter) WriteFrame(frame []byte) error {
	h, err := protocol.ParseHeader(frame)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedFrame, err)
	}
	if h.FrameLen() != len(frame) {
		return fmt.Errorf("%w: header announces %d bytes, have %d", ErrMalformedFrame, h.FrameLen(), len(frame))
	}
	if len(frame) > fw.maxFrameSize {
		return fmt.Errorf("%w: %d > %d", ErrFrameTooLarge, len(frame), fw.maxFrameSize)
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if _, err := fw.w.Write(frame); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	if fw.session != nil {
		fw.session.Sent(frame)
	}
	return nil
}

// Framer combines frame reading and writing on one connection.
type Framer struct {
	*FrameReader
	*FrameWriter
}

// NewFramer creates a framer for bidirectional communication.
func NewFramer(rw io.ReadWriter) *Framer {
	return &Framer{
		FrameReader: NewFrameReader(rw),
		FrameWriter: NewFrameWriter(rw),
	}
}

// SetSession configures capture for both directions.
func (f *Framer) SetSession(s *capture.Session) {
	f.FrameReader.SetSession(s)
	f.FrameWriter.SetSession(s)
}
