package kernelcfg

import (
	"fmt"

	"github.com/flokey/back40computing/arch"
)

// New derives a full configuration record against one architecture profile.
// Geometry violations (tunables outside range, broken raking layout) are
// errors; a configuration whose footprint merely exceeds the profile's
// budget is returned without error with Occupancy == 0, so the caller can
// hold, inspect, and reject it (Valid reports false).
func New(p arch.Profile, c Config) (Derived, error) {
	if c.LogThreads > maxLogThreads || c.LogVectorWidth > maxLogVectorWidth ||
		c.LogLoadsPerTile > maxLogLoadsPerTile || c.LogRakingThreads > maxLogRakingThreads ||
		c.LogScheduleGranularity > maxLogGranularity {
		return Derived{}, fmt.Errorf("%w: threads=2^%d vec=2^%d loads=2^%d raking=2^%d grain=2^%d",
			ErrTileGeometry, c.LogThreads, c.LogVectorWidth, c.LogLoadsPerTile,
			c.LogRakingThreads, c.LogScheduleGranularity)
	}
	if c.CoarseThreshold < 0 {
		return Derived{}, ErrThreshold
	}

	d := Derived{Config: c, Profile: p}
	d.Threads = 1 << c.LogThreads
	d.VectorWidth = 1 << c.LogVectorWidth
	d.LoadsPerTile = 1 << c.LogLoadsPerTile
	d.TileSize = d.Threads * d.VectorWidth * d.LoadsPerTile
	d.RakingThreads = 1 << c.LogRakingThreads
	d.ScheduleGranularity = d.TileSize << c.LogScheduleGranularity

	// The spine is scanned by the raking threads without a block barrier, so
	// they must form at most one lockstep subgroup.
	if d.RakingThreads > d.Threads || d.RakingThreads > p.SubgroupWidth || d.Threads%d.RakingThreads != 0 {
		return Derived{}, fmt.Errorf("%w: %d raking of %d threads, subgroup %d",
			ErrRakingGeometry, d.RakingThreads, d.Threads, p.SubgroupWidth)
	}

	if d.Channels == 0 {
		d.Channels = 2
	}
	if d.Channels < 1 || d.Channels > maxChannels || d.Channels&(d.Channels-1) != 0 {
		return Derived{}, fmt.Errorf("%w: %d", ErrChannelCount, d.Channels)
	}
	if d.CoarseThreshold == 0 {
		d.CoarseThreshold = p.DefaultCoarseThreshold
	}
	if d.MaxOccupancy == 0 {
		d.MaxOccupancy = p.MaxResidentBlocks
	}

	d.HashSlots = d.TileSize
	d.ScratchWords = d.Channels + d.unionWords()
	d.ScratchBytes = d.ScratchWords * 4
	d.Occupancy = occupancy(p, d)

	return d, nil
}

// unionWords is the size of the phase-aliased pool: the maximum of the three
// mutually exclusive views. Only one view is ever live within a tile, so the
// maximum is exact, not conservative.
func (d Derived) unionWords() int {
	raking := d.RakingWords()
	gather := d.GatherWords()
	hash := d.HashWords()
	u := raking
	if gather > u {
		u = gather
	}
	if hash > u {
		u = hash
	}
	return u
}

// RakingWords is view A: per channel, one slot per thread plus one spine
// partial per raking thread, channel-major so no channel can touch another's
// partial sums.
func (d Derived) RakingWords() int { return d.Channels * (d.Threads + d.RakingThreads) }

// GatherWords is view B: four words per tile element (row offset, row
// length, source vertex, scanned rank) for cooperative expansion.
func (d Derived) GatherWords() int { return 4 * d.TileSize }

// HashWords is view C: the duplicate-suppression table.
func (d Derived) HashWords() int { return d.HashSlots }

// BroadcastSlot returns the scratch word index holding channel ch's reserved
// global base, outside the phase-aliased pool so every phase may read it.
func (d Derived) BroadcastSlot(ch int) int { return ch }

// UnionOffset returns the scratch word index where the phase-aliased pool
// begins.
func (d Derived) UnionOffset() int { return d.Channels }

// Valid reports whether this configuration may ever be launched on its
// profile. Invalid records are build-time defects, not run-time errors.
func (d Derived) Valid() bool { return d.Occupancy > 0 }

// occupancy is the resident-block count per unit:
// min(declared cap, profile block cap, thread capacity, local-memory share).
func occupancy(p arch.Profile, d Derived) int {
	occ := d.MaxOccupancy
	if p.MaxResidentBlocks < occ {
		occ = p.MaxResidentBlocks
	}
	if byThreads := p.ThreadCapacity / d.Threads; byThreads < occ {
		occ = byThreads
	}
	if byMem := p.LocalMemBytes / d.ScratchBytes; byMem < occ {
		occ = byMem
	}
	if occ < 0 {
		occ = 0
	}
	return occ
}
