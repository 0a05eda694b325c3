// Package dump turns raw frames into diagnostic text.
//
// The protocol layer hands every frame it sends or receives to DumpHeader or
// DumpPacket. Both are cheap no-ops unless switched on through the
// environment:
//
//	MCDIAG_DUMP_HEADERS=1   one summary line per frame
//	MCDIAG_DUMP_PACKETS=1   additionally the extras, key and body as hex dumps
//
// A header line looks like:
//
//	MAGIC=REQ OP=SET VBID=0003 KLEN=5 EXTLEN=8 NBODY=18 OPAQUE=beef CAS=0
//
// Codes without a symbolic name print as lowercase hex. Dumping never fails
// the caller: malformed frames produce no output, or a single line saying the
// payload is shorter than the header claims.
package dump
