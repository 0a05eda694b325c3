package protocol_test

import (
	"testing"

	"github.com/mcbin/mcdiag/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFrame(t *testing.T) {
	extras := []byte{0xde, 0xad, 0xbe, 0xef}
	key := []byte("hello")
	body := []byte("world!")

	raw := protocol.EncodeFrame(protocol.Header{Magic: protocol.MagicRequest, Opcode: protocol.OpSet}, extras, key, body)
	require.Len(t, raw, protocol.HeaderSize+15)

	f, err := protocol.ParseFrame(raw)
	require.NoError(t, err)

	assert.Equal(t, extras, f.Extras)
	assert.Equal(t, key, f.Key)
	assert.Equal(t, body, f.Body)
	assert.Equal(t, uint32(15), f.Header.BodyLen)
}

func TestSplitFrameTrailingBytesIgnored(t *testing.T) {
	raw := protocol.EncodeFrame(protocol.Header{Magic: protocol.MagicResponse}, nil, []byte("k"), []byte("v"))
	raw = append(raw, 0xff, 0xff)

	f, err := protocol.ParseFrame(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte("k"), f.Key)
	assert.Equal(t, []byte("v"), f.Body)
}

func TestSplitFrameShortPayload(t *testing.T) {
	h := protocol.Header{Magic: protocol.MagicRequest, ExtLen: 4, KeyLen: 3, BodyLen: 10}

	_, err := protocol.SplitFrame(h, make([]byte, 9))
	assert.ErrorIs(t, err, protocol.ErrShortPayload)

	_, err = protocol.SplitFrame(h, nil)
	assert.ErrorIs(t, err, protocol.ErrShortPayload)
}

func TestSplitFrameInconsistentLengths(t *testing.T) {
	// extras and key larger than the body length that should contain them
	h := protocol.Header{ExtLen: 8, KeyLen: 8, BodyLen: 4}

	_, err := protocol.SplitFrame(h, make([]byte, 64))
	assert.ErrorIs(t, err, protocol.ErrShortPayload)
}

func TestSplitFrameEmpty(t *testing.T) {
	f, err := protocol.SplitFrame(protocol.Header{}, nil)
	require.NoError(t, err)
	assert.Empty(t, f.Extras)
	assert.Empty(t, f.Key)
	assert.Empty(t, f.Body)
}

func TestParseFrameShortHeader(t *testing.T) {
	_, err := protocol.ParseFrame([]byte{0x80})
	assert.ErrorIs(t, err, protocol.ErrShortHeader)
}
