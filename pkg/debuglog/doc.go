// Package debuglog is the leveled diagnostic logger of the memcached client.
//
// A Logger reads its configuration lazily, on the first message, and keeps it
// for the rest of the process. The threshold comes from a verbosity count
// (MCDIAG_DEBUG): the count is subtracted from LevelMax, so larger counts mean
// more output, and any count of LevelMax or more enables everything. Without a
// count only warnings and worse are written.
//
// Every message becomes exactly one line:
//
//	[mcdiag] connect:118 connection refused, retrying
//
// Lines sharing a sink are written whole under a per-sink lock and flushed
// right away, so concurrent goroutines never interleave partial lines.
// Logging never fails the caller: write errors are dropped.
package debuglog
