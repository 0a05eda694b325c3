package dump_test

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/mcbin/mcdiag/pkg/config"
	"github.com/mcbin/mcdiag/pkg/dump"
	"github.com/mcbin/mcdiag/pkg/hexdump"
	"github.com/mcbin/mcdiag/pkg/protocol"
	"github.com/stretchr/testify/assert"
)

func newDumper(cfg config.Dump) (*dump.Dumper, *bytes.Buffer) {
	var buf bytes.Buffer
	return dump.New(dump.WithOutput(&buf), dump.WithConfig(cfg)), &buf
}

func TestDumpHeader(t *testing.T) {
	d, buf := newDumper(config.Dump{Headers: "1"})
	d.DumpHeader(setRequest())

	want, _ := dump.HeaderString(setRequest())
	assert.Equal(t, want+"\n", buf.String())
}

func TestDumpHeaderDisabled(t *testing.T) {
	d, buf := newDumper(config.Dump{Packets: "1"})
	d.DumpHeader(setRequest())
	assert.Empty(t, buf.String())
}

func TestDumpHeaderShortFrame(t *testing.T) {
	d, buf := newDumper(config.Dump{Headers: "1"})
	d.DumpHeader(make([]byte, 12))
	assert.Empty(t, buf.String())
}

func TestDumpPacket(t *testing.T) {
	header, _ := dump.HeaderString(setRequest())
	segments := "\tExtras:\n" + hexdump.Sprint(testExtras) +
		"\tKey:\n" + hexdump.Sprint(testKey) +
		"\tBody:\n" + hexdump.Sprint(testBody)

	tests := []struct {
		name string
		cfg  config.Dump
		want string
	}{
		{name: "off", cfg: config.Dump{}, want: ""},
		{name: "headers only", cfg: config.Dump{Headers: "1"}, want: header + "\n"},
		{name: "packets only", cfg: config.Dump{Packets: "yes"}, want: segments},
		{name: "both", cfg: config.Dump{Headers: "1", Packets: "1"}, want: header + "\n" + segments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, buf := newDumper(tt.cfg)
			d.DumpFrame(setRequest())
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestDumpPacketShortPayload(t *testing.T) {
	d, buf := newDumper(config.Dump{Packets: "1"})
	frame := setRequest()
	d.DumpPacket(frame[:protocol.HeaderSize], frame[protocol.HeaderSize:protocol.HeaderSize+3])

	assert.Equal(t, dump.ShortPayloadMessage+"\n", buf.String())
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestGatesResolveOnce(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv(config.EnvDumpHeaders, "1")
	t.Setenv(config.EnvDumpPackets, "")

	gates := dump.EnvironmentGates()
	assert.Equal(t, dump.GateUnresolved, gates.Gate(dump.FeatureHeaders).State())
	assert.True(t, gates.IsEnabled(dump.FeatureHeaders))
	assert.False(t, gates.IsEnabled(dump.FeaturePackets))

	t.Setenv(config.EnvDumpHeaders, "")
	t.Setenv(config.EnvDumpPackets, "1")

	assert.True(t, gates.IsEnabled(dump.FeatureHeaders))
	assert.False(t, gates.IsEnabled(dump.FeaturePackets))
	assert.Equal(t, dump.GateEnabled, gates.Gate(dump.FeatureHeaders).State())
	assert.Equal(t, dump.GateDisabled, gates.Gate(dump.FeaturePackets).State())
}

func TestGatesResolveIndependently(t *testing.T) {
	t.Setenv(config.EnvConfigFile, "")
	t.Setenv(config.EnvDumpHeaders, "")
	t.Setenv(config.EnvDumpPackets, "")

	gates := dump.EnvironmentGates()
	assert.False(t, gates.IsEnabled(dump.FeatureHeaders))

	// The packet gate has not been queried yet, so it sees the new value.
	t.Setenv(config.EnvDumpPackets, "1")
	assert.True(t, gates.IsEnabled(dump.FeaturePackets))
}

func TestGateConcurrentResolution(t *testing.T) {
	var calls atomic.Int32
	gate := dump.NewGate(func() bool {
		calls.Add(1)
		return true
	})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, gate.Enabled())
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), calls.Load())
}

func TestUnknownFeatureIsOff(t *testing.T) {
	gates := dump.StaticGates(config.Dump{Headers: "1", Packets: "1"})
	assert.False(t, gates.IsEnabled(dump.Feature(9)))
	assert.Nil(t, gates.Gate(dump.Feature(9)))
	assert.Equal(t, "unknown", dump.Feature(9).String())
}

func numberedRequest(n uint32) []byte {
	return protocol.EncodeFrame(protocol.Header{
		Kind:   protocol.KindRequest,
		Magic:  protocol.MagicRequest,
		Opcode: protocol.OpSet,
		Opaque: n,
	}, nil, []byte(fmt.Sprintf("key-%02d", n)), nil)
}

func TestDumperConcurrentPackets(t *testing.T) {
	d, buf := newDumper(config.Dump{Headers: "1", Packets: "1"})

	const workers = 8
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				d.DumpFrame(numberedRequest(uint32(i)))
			}
		}()
	}
	wg.Wait()

	out := buf.String()
	for i := range workers {
		single, want := newDumper(config.Dump{Headers: "1", Packets: "1"})
		single.DumpFrame(numberedRequest(uint32(i)))
		assert.Equal(t, 10, strings.Count(out, want.String()), "packet %d split", i)
	}
	assert.Equal(t, workers*10, strings.Count(out, "MAGIC=REQ"))
}

func TestDumpPacketNotSplitByReentrantDump(t *testing.T) {
	var d *dump.Dumper
	other := numberedRequest(0x99)

	var calls atomic.Int32
	gates := dump.NewGates(func() config.Dump {
		if calls.Add(1) == 2 {
			// Packet gate resolving: dump another frame from inside.
			d.DumpHeader(other)
		}
		return config.Dump{Headers: "1", Packets: "1"}
	})

	var buf bytes.Buffer
	d = dump.New(dump.WithOutput(&buf), dump.WithGates(gates))
	d.DumpFrame(setRequest())

	otherHeader, _ := dump.HeaderString(other)
	header, _ := dump.HeaderString(setRequest())
	var segments bytes.Buffer
	assert.NoError(t, dump.FormatSegments(&segments, setRequest(), nil))

	assert.Equal(t, otherHeader+"\n"+header+"\n"+segments.String(), buf.String())
}
