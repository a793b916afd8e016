package sim

import (
	"hash/fnv"
	"math/rand/v2"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two runs with the same SimulationKey and identical inputs MUST produce
// bit-for-bit identical outcomes.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemParty is the stream used by a single batch run.
	// Uses the master seed directly so that --seed maps 1:1 onto the stream.
	SubsystemParty = "party"
)

// SubsystemLocation returns the subsystem name for one location of a sweep.
func SubsystemLocation(location string) string {
	return "location_" + location
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated streams per subsystem.
//
// Derivation formula:
//   - For SubsystemParty: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Derive all streams from one goroutine, then hand
// each Stream to exactly one consumer.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*Stream
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*Stream),
	}
}

// ForSubsystem returns a deterministically-seeded stream for the named subsystem.
// The same subsystem name always returns the same *Stream instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *Stream {
	if s, ok := p.subsystems[name]; ok {
		return s
	}

	var derivedSeed int64
	if name == SubsystemParty {
		derivedSeed = int64(p.key)
	} else {
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	s := NewStream(derivedSeed)
	p.subsystems[name] = s
	return s
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

// pcgIncrement is the fixed second PCG state word; only the seed varies.
const pcgIncrement uint64 = 0x9e3779b97f4a7c15

func newSource(seed int64) rand.Source {
	return rand.NewPCG(uint64(seed), pcgIncrement)
}
