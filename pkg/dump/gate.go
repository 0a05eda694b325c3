package dump

import (
	"sync"
	"sync/atomic"

	"github.com/mcbin/mcdiag/pkg/config"
)

// Feature selects one of the dump switches.
type Feature uint8

const (
	// FeatureHeaders enables one summary line per frame.
	FeatureHeaders Feature = iota
	// FeaturePackets enables segment hex dumps.
	FeaturePackets
)

// String returns the feature name.
func (f Feature) String() string {
	switch f {
	case FeatureHeaders:
		return "headers"
	case FeaturePackets:
		return "packets"
	default:
		return "unknown"
	}
}

// GateState is the resolution state of a Gate.
type GateState uint32

const (
	// GateUnresolved means the gate has not been queried yet.
	GateUnresolved GateState = iota
	// GateEnabled means the feature resolved to on.
	GateEnabled
	// GateDisabled means the feature resolved to off.
	GateDisabled
)

// Gate is a feature switch resolved on first query. Later changes to the
// underlying configuration are not observed.
type Gate struct {
	once    sync.Once
	state   atomic.Uint32
	resolve func() bool
}

// NewGate returns a gate that calls resolve once, on the first Enabled call.
func NewGate(resolve func() bool) *Gate {
	return &Gate{resolve: resolve}
}

// Enabled reports whether the feature is on.
func (g *Gate) Enabled() bool {
	g.once.Do(func() {
		state := GateDisabled
		if g.resolve != nil && g.resolve() {
			state = GateEnabled
		}
		g.state.Store(uint32(state))
	})
	return GateState(g.state.Load()) == GateEnabled
}

// State returns the current resolution state without resolving the gate.
func (g *Gate) State() GateState {
	return GateState(g.state.Load())
}

// Gates holds one Gate per Feature.
type Gates struct {
	headers *Gate
	packets *Gate
}

// NewGates returns gates backed by source. Each gate calls source
// independently the first time it is queried.
func NewGates(source func() config.Dump) *Gates {
	return &Gates{
		headers: NewGate(func() bool { return source().HeadersEnabled() }),
		packets: NewGate(func() bool { return source().PacketsEnabled() }),
	}
}

// StaticGates returns gates resolved from a fixed configuration.
func StaticGates(cfg config.Dump) *Gates {
	return NewGates(func() config.Dump { return cfg })
}

// EnvironmentGates returns gates read from the process environment and the
// optional configuration file.
func EnvironmentGates() *Gates {
	return NewGates(processDump)
}

func processDump() config.Dump {
	cfg, _ := config.FromEnvironment()
	return cfg.Dump
}

// Gate returns the gate for f, or nil for an unknown feature.
func (g *Gates) Gate(f Feature) *Gate {
	switch f {
	case FeatureHeaders:
		return g.headers
	case FeaturePackets:
		return g.packets
	default:
		return nil
	}
}

// IsEnabled reports whether f is on. Unknown features are always off.
func (g *Gates) IsEnabled(f Feature) bool {
	gate := g.Gate(f)
	return gate != nil && gate.Enabled()
}
