// Package capture records raw protocol frames for later inspection.
//
// Capture is separate from the textual dumps of package dump: dumps are for a
// human watching stderr, a capture is a complete machine-readable trace that
// the mcdiag CLI can view, filter, summarize and export after the fact.
//
// # Basic Usage
//
// A connection wraps its recorder in a Session and reports every frame:
//
//	rec, err := capture.FromConfig(cfg.Capture)
//	if err != nil {
//	    return err
//	}
//	defer rec.Close()
//
//	sess := capture.NewSession(rec, capture.WithDumper(dump.Default()))
//	sess.Sent(request)
//	sess.Received(response)
//
// Several recorders can be combined:
//
//	rec := capture.NewMultiRecorder(
//	    capture.NewSlogRecorder(slog.Default()),
//	    fileRecorder,
//	)
//
// # File Format
//
// Capture files are a plain concatenation of CBOR-encoded Event values using
// integer map keys, conventionally with the .mcap extension.
package capture
