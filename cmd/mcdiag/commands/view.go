package commands

import (
	"fmt"
	"io"

	"github.com/mcbin/mcdiag/pkg/capture"
	"github.com/mcbin/mcdiag/pkg/dump"
	"github.com/mcbin/mcdiag/pkg/hexdump"
)

// ViewOptions controls the view command.
type ViewOptions struct {
	Filter FilterOptions

	// Packets adds segment hex dumps below each header line.
	Packets bool
}

// RunView prints the events of a capture file in human-readable form.
func RunView(path string, opts ViewOptions, w io.Writer) error {
	filter, err := opts.Filter.Build()
	if err != nil {
		return err
	}

	reader, err := capture.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(w, event, opts.Packets)
	}
}

// formatEvent writes one event followed by a blank line.
func formatEvent(w io.Writer, event capture.Event, packets bool) {
	ts := formatTimestamp(event.Timestamp)
	connID := shortenConnID(event.ConnectionID)
	dir := event.Direction.String()

	line, ok := dump.HeaderString(event.Data)
	if !ok {
		line = "short frame"
	}
	fmt.Fprintf(w, "%s [conn:%s] %-3s %s\n", ts, connID, dir, line)

	fmt.Fprintf(w, "  Size: %d bytes", event.Size)
	if event.Truncated {
		fmt.Fprintf(w, " (%d captured)", len(event.Data))
	}
	fmt.Fprintln(w)

	switch {
	case !ok:
		_ = hexdump.Dump(w, event.Data)
	case packets:
		_ = dump.FormatSegments(w, event.Data, nil)
	}

	fmt.Fprintln(w)
}
