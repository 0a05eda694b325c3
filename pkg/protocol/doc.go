// Package protocol describes the fixed 24-byte header of the memcached binary
// protocol as seen by the diagnostic layer.
//
// # Symbol Tables
//
// Opcodes, response statuses and magic bytes map to the symbolic names used in
// diagnostic output. The tables live in names_gen.go, generated from
// protocol.yaml by mcdiag-gen. Lookups never fail: a code that is not in the
// table reports ok=false and callers render the raw value in hex instead.
//
// # Headers and Frames
//
// ParseHeader decodes a header into a Header whose Kind is derived from the
// magic byte. Requests carry a vbucket id where responses carry a status; both
// views share one byte layout and all multi-byte fields travel in network byte
// order. SplitFrame cuts the payload that follows a header into its extras, key
// and body segments.
package protocol

//go:generate go run ../../cmd/mcdiag-gen -spec protocol.yaml -output names_gen.go
