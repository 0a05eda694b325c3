package commands

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"time"

	"github.com/mcbin/mcdiag/pkg/capture"
	"github.com/mcbin/mcdiag/pkg/protocol"
)

// Stats holds aggregate statistics about a capture file.
type Stats struct {
	TotalEvents       int
	TotalBytes        int
	EventsByDirection map[capture.Direction]int
	EventsByOpcode    map[protocol.Opcode]int
	EventsByStatus    map[protocol.Status]int
	Connections       map[string]*ConnectionStats
	ShortFrames       int
	Truncated         int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// ConnectionStats holds statistics for a single connection.
type ConnectionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Errors    int
}

// RunStats analyzes the capture file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := capture.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	stats, err := collectStats(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(reader *capture.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByDirection: make(map[capture.Direction]int),
		EventsByOpcode:    make(map[protocol.Opcode]int),
		EventsByStatus:    make(map[protocol.Status]int),
		Connections:       make(map[string]*ConnectionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return stats, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.TotalBytes += event.Size
		stats.EventsByDirection[event.Direction]++
		if event.Truncated {
			stats.Truncated++
		}

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		conn, ok := stats.Connections[event.ConnectionID]
		if !ok {
			conn = &ConnectionStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Connections[event.ConnectionID] = conn
		}
		conn.Events++
		if event.Timestamp.After(conn.LastSeen) {
			conn.LastSeen = event.Timestamp
		}

		h, err := event.Header()
		if err != nil {
			stats.ShortFrames++
			continue
		}
		stats.EventsByOpcode[h.Opcode]++
		if h.IsResponse() {
			stats.EventsByStatus[h.Status]++
			if !h.Status.IsSuccess() {
				conn.Errors++
			}
		}
	}
}

func sortedKeys[K ~uint8 | ~uint16](m map[K]int) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== mcdiag Capture Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Frames: %d (%d bytes)\n", stats.TotalEvents, stats.TotalBytes)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Frames by Direction:")
	for _, dir := range []capture.Direction{capture.DirectionIn, capture.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-16s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Frames by Opcode:")
	for _, op := range sortedKeys(stats.EventsByOpcode) {
		fmt.Fprintf(w, "  %-16s %d\n", op.String()+":", stats.EventsByOpcode[op])
	}
	fmt.Fprintln(w)

	if len(stats.EventsByStatus) > 0 {
		fmt.Fprintln(w, "Responses by Status:")
		for _, st := range sortedKeys(stats.EventsByStatus) {
			fmt.Fprintf(w, "  %-16s %d\n", st.String()+":", stats.EventsByStatus[st])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Connections: %d\n", len(stats.Connections))
	if len(stats.Connections) > 0 {
		type connInfo struct {
			id    string
			stats *ConnectionStats
		}
		conns := make([]connInfo, 0, len(stats.Connections))
		for id, cs := range stats.Connections {
			conns = append(conns, connInfo{id, cs})
		}
		sort.Slice(conns, func(i, j int) bool {
			return conns[i].stats.FirstSeen.Before(conns[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, c := range conns {
			duration := c.stats.LastSeen.Sub(c.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d frames, duration %s\n", shortenConnID(c.id), c.stats.Events, duration)
			if c.stats.Errors > 0 {
				fmt.Fprintf(w, "           Error responses: %d\n", c.stats.Errors)
			}
		}
	}

	if stats.ShortFrames > 0 || stats.Truncated > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Short frames: %d\n", stats.ShortFrames)
		fmt.Fprintf(w, "Truncated:    %d\n", stats.Truncated)
	}
}
