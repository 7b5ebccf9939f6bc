package scatter

import "github.com/flokey/back40computing/workdist"

// pass bundles the launch-wide inputs every block shares read-only.
type pass struct {
	d         *Downsweep
	keys      []uint32
	values    []uint32
	spine     []uint32
	outKeys   []uint32
	outValues []uint32
	gridSize  int
	shift     uint
	mask      uint32
}

// blockState is one block's private working set: the SharedScratch pool,
// the tile's decoded digits, and the running per-digit consumption that
// turns tile-relative ranks into global offsets. Allocated once per block.
type blockState struct {
	p     *pass
	block int

	// scratch is the block's SharedScratch pool: broadcast slots followed
	// by the phase-aliased union region. Only the raking view is live here.
	scratch  []uint32
	dig      []uint32 // per-element decoded digit, tile-sized
	totals   []uint32
	consumed []uint32
}

func newBlockState(p *pass, block int) *blockState {
	d := p.d
	return &blockState{
		p:        p,
		block:    block,
		scratch:  make([]uint32, d.cfg.ScratchWords),
		dig:      make([]uint32, d.cfg.TileSize),
		totals:   make([]uint32, d.digits),
		consumed: make([]uint32, d.digits),
	}
}

// runRange processes the block's statically planned range tile by tile. The
// guarded fields mark the only tiles that may be partially full.
func (bs *blockState) runRange(r workdist.WorkRange) {
	tile := uint64(bs.p.d.cfg.TileSize)
	for start := r.Offset; start < r.End(); start += tile {
		end := start + tile
		if end > r.End() {
			end = r.End()
		}
		bs.processTile(start, end)
	}
}

// processTile ranks one tile of keys and scatters it: Decode → ScanRank →
// Scatter. The digit windows of masked lanes past a guarded tile's end
// contribute nothing, so no sentinel is needed.
func (bs *blockState) processTile(start, end uint64) {
	p := bs.p
	d := p.d
	cfg := d.cfg
	count := int(end - start)

	// Decode, accumulating each lane's per-digit counts straight into the
	// raking view's channel slots.
	raking := bs.scratch[cfg.UnionOffset() : cfg.UnionOffset()+d.scan.Words()]
	d.scan.Clear(raking)
	for lane := 0; lane < cfg.Threads; lane++ {
		for k := 0; k < d.perLane; k++ {
			i := lane*d.perLane + k
			if i >= count {
				break
			}
			dig := (p.keys[start+uint64(i)] >> p.shift) & p.mask
			bs.dig[i] = dig
			raking[d.scan.LaneSlot(int(dig), lane)]++
		}
	}

	// ScanRank: one multi-channel raking scan over all digit channels.
	d.scan.Exclusive(raking, bs.totals)

	// Scatter. Each lane's channel slot holds its exclusive rank; bumping
	// the slot as elements are consumed makes it the lane's running cursor,
	// keeping input order within every (digit, block) segment.
	for lane := 0; lane < cfg.Threads; lane++ {
		for k := 0; k < d.perLane; k++ {
			i := lane*d.perLane + k
			if i >= count {
				break
			}
			dig := bs.dig[i]
			slot := d.scan.LaneSlot(int(dig), lane)
			rank := raking[slot]
			raking[slot] = rank + 1

			dst := p.spine[int(dig)*p.gridSize+bs.block] + bs.consumed[dig] + rank
			src := start + uint64(i)
			p.outKeys[dst] = p.keys[src]
			if p.values != nil {
				p.outValues[dst] = p.values[src]
			}
		}
	}

	for ch := 0; ch < d.digits; ch++ {
		bs.consumed[ch] += bs.totals[ch]
	}
}
