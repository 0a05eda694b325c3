package hexdump_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mcbin/mcdiag/pkg/hexdump"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(from, n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(from + i)
	}
	return b
}

func TestDumpFullLine(t *testing.T) {
	got := hexdump.Sprint(seq(0, 16))

	want := "[0000]   00 01 02 03 04 05 06 07  08 09 0A 0B 0C 0D 0E 0F    ........ ........\n"
	assert.Equal(t, want, got)
}

func TestDumpPartialLine(t *testing.T) {
	got := hexdump.Sprint(seq(0x30, 20))

	lines := strings.SplitAfter(got, "\n")
	require.Len(t, lines, 3) // trailing empty element after the last newline
	assert.Equal(t, "[0000]   30 31 32 33 34 35 36 37  38 39 3A 3B 3C 3D 3E 3F    01234567 89......\n", lines[0])
	assert.Equal(t, "[0010]   40 41 42 43                                         .ABC\n", lines[1])
	assert.Empty(t, lines[2])
}

func TestDumpColumnsAlign(t *testing.T) {
	got := hexdump.Sprint([]byte("Hello, memcached binary"))

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "[0000]   48 65 6C 6C 6F 2C 20 6D  65 6D 63 61 63 68 65 64    Hello..m emcached", lines[0])
	assert.Equal(t, "[0010]   20 62 69 6E 61 72 79                                .binary", lines[1])

	// ASCII column starts at the same position on both lines.
	assert.Equal(t, strings.Index(lines[0], "Hello"), strings.Index(lines[1], ".binary"))
}

func TestDumpGroupSpaceOnEightBytes(t *testing.T) {
	got := hexdump.Sprint([]byte("abcdefgh"))
	assert.Equal(t, "[0000]   61 62 63 64 65 66 67 68                             abcdefgh \n", got)
}

func TestDumpOffsets(t *testing.T) {
	got := hexdump.Sprint(make([]byte, 16*3+1))

	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 4)
	for i, prefix := range []string{"[0000]", "[0010]", "[0020]", "[0030]"} {
		assert.True(t, strings.HasPrefix(lines[i], prefix), "line %d: %q", i, lines[i])
	}
}

func TestDumpOffsetWrapsAtSixteenBits(t *testing.T) {
	line := string(hexdump.AppendLine(nil, 0x10010, []byte{0x41}))
	assert.True(t, strings.HasPrefix(line, "[0010]   41 "), line)

	got := hexdump.Sprint(make([]byte, 0x10000+4))
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	require.Len(t, lines, 0x1000+1)

	first, last := lines[0], lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "[0000]   00 00 00 00 "), last)
	// ASCII column starts at the same position as on the first line.
	assert.Equal(t, len(first)-len("........ ........"), len(last)-len("...."))
}

func TestDumpEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, hexdump.Dump(&buf, nil))
	assert.Zero(t, buf.Len())
}

func TestDumpNonASCII(t *testing.T) {
	got := hexdump.Sprint([]byte{0xc3, 0xa9, 'z', ' ', '\n'})
	assert.True(t, strings.HasSuffix(got, "  ..z..\n"), "%q", got)
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write(p []byte) (int, error) {
	f.calls++
	return 0, errors.New("closed")
}

func TestDumpStopsOnWriteError(t *testing.T) {
	w := &failingWriter{}
	err := hexdump.Dump(w, make([]byte, 64))
	assert.Error(t, err)
	assert.Equal(t, 1, w.calls)
}

func TestAppendLineTruncatesChunk(t *testing.T) {
	line := hexdump.AppendLine(nil, 0x20, seq(0x41, 20))
	assert.Equal(t, "[0020]   41 42 43 44 45 46 47 48  49 4A 4B 4C 4D 4E 4F 50    ABCDEFGH IJKLMNOP\n", string(line))
}
