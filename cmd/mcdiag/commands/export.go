package commands

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mcbin/mcdiag/pkg/capture"
)

// exportRecord is the flattened form of an event written by export.
type exportRecord struct {
	Timestamp    string `json:"timestamp"`
	ConnectionID string `json:"connection_id"`
	Direction    string `json:"direction"`
	Size         int    `json:"size"`
	Truncated    bool   `json:"truncated,omitempty"`
	Magic        string `json:"magic,omitempty"`
	Opcode       string `json:"opcode,omitempty"`
	Status       string `json:"status,omitempty"`
	VBucket      *int   `json:"vbucket,omitempty"`
	KeyLen       int    `json:"key_len"`
	ExtLen       int    `json:"ext_len"`
	BodyLen      uint32 `json:"body_len"`
	Opaque       uint32 `json:"opaque"`
	CAS          uint64 `json:"cas"`
	Data         string `json:"data,omitempty"`
}

func newExportRecord(event capture.Event) exportRecord {
	rec := exportRecord{
		Timestamp:    formatTimestamp(event.Timestamp),
		ConnectionID: event.ConnectionID,
		Direction:    event.Direction.String(),
		Size:         event.Size,
		Truncated:    event.Truncated,
		Data:         hex.EncodeToString(event.Data),
	}

	h, err := event.Header()
	if err != nil {
		return rec
	}
	rec.Magic = h.Magic.String()
	rec.Opcode = h.Opcode.String()
	if h.IsRequest() {
		vb := int(h.VBucket)
		rec.VBucket = &vb
	} else {
		rec.Status = h.Status.String()
	}
	rec.KeyLen = int(h.KeyLen)
	rec.ExtLen = int(h.ExtLen)
	rec.BodyLen = h.BodyLen
	rec.Opaque = h.Opaque
	rec.CAS = h.CAS
	return rec
}

// RunExport exports the capture file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := capture.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *capture.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(newExportRecord(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
}

func exportCSV(reader *capture.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "connection_id", "direction", "size", "truncated",
		"magic", "opcode", "status", "vbucket", "key_len", "ext_len", "body_len", "opaque", "cas"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		rec := newExportRecord(event)
		vbucket := ""
		if rec.VBucket != nil {
			vbucket = strconv.Itoa(*rec.VBucket)
		}
		row := []string{
			rec.Timestamp,
			rec.ConnectionID,
			rec.Direction,
			strconv.Itoa(rec.Size),
			strconv.FormatBool(rec.Truncated),
			rec.Magic,
			rec.Opcode,
			rec.Status,
			vbucket,
			strconv.Itoa(rec.KeyLen),
			strconv.Itoa(rec.ExtLen),
			strconv.FormatUint(uint64(rec.BodyLen), 10),
			strconv.FormatUint(uint64(rec.Opaque), 16),
			strconv.FormatUint(rec.CAS, 16),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return cw.Error()
}
