package rakingscan

import (
	"errors"
	"fmt"
)

// ErrGeometry indicates a scan shape the raking layout cannot express.
var ErrGeometry = errors.New("rakingscan: invalid scan geometry")

// Scanner is an exclusive multi-channel prefix scan bound to one tile
// geometry. A Scanner is immutable and safe for concurrent use by blocks
// operating on their own scratch.
type Scanner struct {
	lanes         int
	channels      int
	rakingThreads int
	segLen        int // lanes raked serially by one raking thread
	stride        int // words per channel: lanes + rakingThreads partials
}

// New builds a Scanner. lanes, channels and rakingThreads must be positive
// powers of two, rakingThreads must divide lanes and fit within one
// lockstep subgroup so the spine can be scanned without a block barrier.
func New(lanes, channels, subgroupWidth, rakingThreads int) (*Scanner, error) {
	pow2 := func(v int) bool { return v > 0 && v&(v-1) == 0 }
	if !pow2(lanes) || !pow2(channels) || !pow2(rakingThreads) || !pow2(subgroupWidth) {
		return nil, fmt.Errorf("%w: lanes=%d channels=%d raking=%d subgroup=%d",
			ErrGeometry, lanes, channels, rakingThreads, subgroupWidth)
	}
	if rakingThreads > lanes || rakingThreads > subgroupWidth {
		return nil, fmt.Errorf("%w: %d raking threads over %d lanes, subgroup %d",
			ErrGeometry, rakingThreads, lanes, subgroupWidth)
	}
	return &Scanner{
		lanes:         lanes,
		channels:      channels,
		rakingThreads: rakingThreads,
		segLen:        lanes / rakingThreads,
		stride:        lanes + rakingThreads,
	}, nil
}

// Words returns the scratch words the scan requires.
func (s *Scanner) Words() int { return s.channels * s.stride }

// Lanes returns the lane count per channel.
func (s *Scanner) Lanes() int { return s.lanes }

// Channels returns the channel count.
func (s *Scanner) Channels() int { return s.channels }

// LaneSlot returns the scratch index of lane's value slot in channel ch.
func (s *Scanner) LaneSlot(ch, lane int) int { return ch*s.stride + lane }

// Clear zeroes every lane slot, leaving the scratch ready for a new tile.
func (s *Scanner) Clear(scratch []uint32) {
	for ch := 0; ch < s.channels; ch++ {
		base := ch * s.stride
		for i := base; i < base+s.lanes; i++ {
			scratch[i] = 0
		}
	}
}

// Exclusive scans every channel in place. On return each lane slot holds the
// lane's exclusive prefix within its channel and totals[ch] holds channel
// ch's inclusive total. scratch must hold at least Words() words and totals
// at least Channels() entries.
func (s *Scanner) Exclusive(scratch []uint32, totals []uint32) {
	for ch := 0; ch < s.channels; ch++ {
		base := ch * s.stride
		partials := scratch[base+s.lanes : base+s.stride]

		// Upsweep: each raking thread serially reduces its segment.
		for r := 0; r < s.rakingThreads; r++ {
			seg := scratch[base+r*s.segLen : base+(r+1)*s.segLen]
			var sum uint32
			for _, v := range seg {
				sum += v
			}
			partials[r] = sum
		}

		// Spine: exclusive scan of the partials by the raking subgroup.
		var running uint32
		for r := range partials {
			partials[r], running = running, running+partials[r]
		}
		totals[ch] = running

		// Downsweep: reseed each segment with its partial's prefix and
		// broadcast exclusive ranks back to every lane.
		for r := 0; r < s.rakingThreads; r++ {
			seg := scratch[base+r*s.segLen : base+(r+1)*s.segLen]
			acc := partials[r]
			for i := range seg {
				seg[i], acc = acc, acc+seg[i]
			}
		}
	}
}
