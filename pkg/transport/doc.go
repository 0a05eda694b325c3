// Package transport reads and writes whole memcached binary protocol frames
// on a byte stream.
//
// A frame is the 24-byte header followed by the number of body bytes the
// header announces. FrameReader and FrameWriter never split or merge frames,
// so each call maps to exactly one request or response. Either side can be
// given a capture.Session to record and dump the frames it moves.
package transport
