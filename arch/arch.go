package arch

import "errors"

// ErrUnknownTag is returned by Lookup for a tag outside the supported set.
var ErrUnknownTag = errors.New("arch: unknown architecture tag")

// Tag identifies one accelerator generation. It is the architecture key a
// launch carries and the dispatcher resolves entry points by.
type Tag string

const (
	// Gen200 is the current wide generation.
	Gen200 Tag = "gen200"
	// Gen100 is the narrow legacy generation.
	Gen100 Tag = "gen100"
)

// Profile is an immutable description of one accelerator generation.
// All capacity fields are per execution unit unless noted.
type Profile struct {
	// Tag names the generation.
	Tag Tag
	// SubgroupWidth is the lockstep subgroup size; raking spine scans must
	// fit inside one subgroup.
	SubgroupWidth int
	// ThreadCapacity is the maximum resident threads per unit.
	ThreadCapacity int
	// MaxResidentBlocks caps concurrently resident blocks per unit.
	MaxResidentBlocks int
	// LocalMemBytes is the fast local memory budget per unit, shared by all
	// resident blocks.
	LocalMemBytes int
	// Units is the number of parallel execution units on the device.
	Units int
	// DefaultCoarseThreshold is the generation's default fan-out cutoff
	// between cooperative (coarse) and per-thread (fine) expansion.
	DefaultCoarseThreshold int
}

// Current returns the Gen200 profile.
// Budget rationale: 1536 threads and 48KB of local memory per unit, eight
// resident blocks — the wide generation this library is tuned for first.
func Current() Profile {
	return Profile{
		Tag:                    Gen200,
		SubgroupWidth:          32,
		ThreadCapacity:         1536,
		MaxResidentBlocks:      8,
		LocalMemBytes:          48 * 1024,
		Units:                  16,
		DefaultCoarseThreshold: 32,
	}
}

// Legacy returns the Gen100 profile: half the thread capacity, a third of
// the local memory, and the same subgroup width as Gen200.
func Legacy() Profile {
	return Profile{
		Tag:                    Gen100,
		SubgroupWidth:          32,
		ThreadCapacity:         768,
		MaxResidentBlocks:      8,
		LocalMemBytes:          16 * 1024,
		Units:                  30,
		DefaultCoarseThreshold: 32,
	}
}

// Lookup resolves a Tag to its Profile, or ErrUnknownTag.
func Lookup(t Tag) (Profile, error) {
	switch t {
	case Gen200:
		return Current(), nil
	case Gen100:
		return Legacy(), nil
	default:
		return Profile{}, ErrUnknownTag
	}
}
