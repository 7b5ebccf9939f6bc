package expand

import (
	"fmt"
	"sync/atomic"
)

// Output channels. Coarse and fine entries land in logically separate
// regions with independent cursors; the caller concatenates or compacts
// them after the pass.
const (
	channelCoarse = 0
	channelFine   = 1
	numChannels   = 2
)

// Frontier is the output surface of one expansion pass: two caller-sized
// regions advanced by independent atomic cursors, with optional parallel
// parent arrays. A Frontier is reused across levels via Reset — double
// buffering (this level's output is next level's input) is the caller's
// discipline.
type Frontier struct {
	regions [numChannels][]uint32
	parents [numChannels][]uint32
	cursors [numChannels]atomic.Uint64
	track   bool
}

// NewFrontier allocates output regions of the given capacities. When
// trackParents is set, parallel parent arrays are written during emission.
func NewFrontier(coarseCap, fineCap int, trackParents bool) *Frontier {
	f := &Frontier{track: trackParents}
	f.regions[channelCoarse] = make([]uint32, coarseCap)
	f.regions[channelFine] = make([]uint32, fineCap)
	if trackParents {
		f.parents[channelCoarse] = make([]uint32, coarseCap)
		f.parents[channelFine] = make([]uint32, fineCap)
	}
	return f
}

// reserve claims count slots of channel ch: one fetch-and-add per tile per
// channel. Reservations are pairwise disjoint by construction.
func (f *Frontier) reserve(ch int, count uint64) (uint64, error) {
	base := f.cursors[ch].Add(count) - count
	if base+count > uint64(len(f.regions[ch])) {
		return 0, fmt.Errorf("%w: channel %d needs %d past capacity %d",
			ErrFrontierOverflow, ch, base+count, len(f.regions[ch]))
	}
	return base, nil
}

// TracksParents reports whether parent arrays are written.
func (f *Frontier) TracksParents() bool { return f.track }

// CoarseCount returns the emitted entry count of the coarse region,
// including any InvalidVertex slots left by duplicate suppression.
func (f *Frontier) CoarseCount() int { return int(f.cursors[channelCoarse].Load()) }

// FineCount is CoarseCount's fine-channel counterpart.
func (f *Frontier) FineCount() int { return int(f.cursors[channelFine].Load()) }

// Coarse returns the emitted prefix of the coarse region.
func (f *Frontier) Coarse() []uint32 { return f.regions[channelCoarse][:f.CoarseCount()] }

// Fine returns the emitted prefix of the fine region.
func (f *Frontier) Fine() []uint32 { return f.regions[channelFine][:f.FineCount()] }

// CoarseParents returns parents parallel to Coarse, or nil when parent
// tracking is disabled.
func (f *Frontier) CoarseParents() []uint32 {
	if !f.track {
		return nil
	}
	return f.parents[channelCoarse][:f.CoarseCount()]
}

// FineParents returns parents parallel to Fine, or nil when parent tracking
// is disabled.
func (f *Frontier) FineParents() []uint32 {
	if !f.track {
		return nil
	}
	return f.parents[channelFine][:f.FineCount()]
}

// Reset rewinds both cursors so the regions can serve the next level.
func (f *Frontier) Reset() {
	f.cursors[channelCoarse].Store(0)
	f.cursors[channelFine].Store(0)
}

// Compact appends every valid emitted id — coarse then fine, skipping
// InvalidVertex sentinels — to dst and returns it: the next level's input.
func (f *Frontier) Compact(dst []uint32) []uint32 {
	for _, region := range [][]uint32{f.Coarse(), f.Fine()} {
		for _, id := range region {
			if id != InvalidVertex {
				dst = append(dst, id)
			}
		}
	}
	return dst
}
