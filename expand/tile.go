package expand

import (
	"fmt"

	"github.com/flokey/back40computing/csr"
	"github.com/flokey/back40computing/workdist"
)

// blockState is one block's private working set for a pass: the scratch
// pool plus per-element registers. Allocated once per block, reused for
// every tile the block processes.
type blockState struct {
	e      *Engine
	g      *csr.Graph
	vcount uint32
	in     []uint32
	out    *Frontier

	// scratch is the block's SharedScratch pool: broadcast slots followed
	// by the phase-aliased union region.
	scratch []uint32

	// Per-element registers (tile-sized).
	ids    []uint32
	rowOff []uint32
	rowLen []uint32
	coarse []bool

	// Per-lane scanned ranks, read out of the raking view before the
	// scratch is retagged for emission.
	laneCoarse []uint32
	laneFine   []uint32
	totals     [numChannels]uint32

	stats Stats
}

func newBlockState(e *Engine, g *csr.Graph, in []uint32, out *Frontier) *blockState {
	cfg := e.cfg
	return &blockState{
		e:          e,
		g:          g,
		vcount:     uint32(g.VertexCount()),
		in:         in,
		out:        out,
		scratch:    make([]uint32, cfg.ScratchWords),
		ids:        make([]uint32, cfg.TileSize),
		rowOff:     make([]uint32, cfg.TileSize),
		rowLen:     make([]uint32, cfg.TileSize),
		coarse:     make([]bool, cfg.TileSize),
		laneCoarse: make([]uint32, cfg.Threads),
		laneFine:   make([]uint32, cfg.Threads),
	}
}

// runRange processes a statically planned range tile by tile. The guarded
// fields mark the only tiles that may be partially full.
func (bs *blockState) runRange(r workdist.WorkRange) error {
	tile := uint64(bs.e.cfg.TileSize)
	for start := r.Offset; start < r.End(); start += tile {
		end := start + tile
		if end > r.End() {
			end = r.End()
		}
		guarded := r.GuardedLength != 0 && end > r.GuardedOffset
		if err := bs.processTile(start, end, guarded); err != nil {
			return err
		}
	}
	return nil
}

// runGrain processes one scheduling grain, claimed statically or stolen.
func (bs *blockState) runGrain(idx, total, gran uint64, stolen bool) error {
	start := idx * gran
	end := start + gran
	guarded := false
	if end > total {
		end = total
		guarded = true
	}
	tile := uint64(bs.e.cfg.TileSize)
	for ts := start; ts < end; ts += tile {
		te := ts + tile
		if te > end {
			te = end
		}
		if err := bs.processTile(ts, te, guarded && te == end); err != nil {
			return err
		}
	}
	if stolen {
		bs.stats.StolenGrains++
	}
	return nil
}

// processTile runs the full pipeline for one tile:
// Load → Classify → ScanRank → Reserve → Emit → [Dedup].
func (bs *blockState) processTile(start, end uint64, guarded bool) error {
	e := bs.e
	cfg := e.cfg
	count := int(end - start)

	// Load. Guarded tiles mask the lanes past the input's end; full tiles
	// move at vector width.
	copy(bs.ids[:count], bs.in[start:end])
	if guarded {
		for i := count; i < cfg.TileSize; i++ {
			bs.ids[i] = InvalidVertex
		}
	}

	// Classify, accumulating each lane's two channel sums straight into the
	// raking view. Masked and sentinel lanes contribute zero to both.
	raking := bs.scratch[cfg.UnionOffset() : cfg.UnionOffset()+e.scan.Words()]
	threshold := uint32(cfg.CoarseThreshold)
	for lane := 0; lane < cfg.Threads; lane++ {
		var cSum, fSum uint32
		for k := 0; k < e.perLane; k++ {
			i := lane*e.perLane + k
			id := bs.ids[i]
			if id == InvalidVertex {
				bs.rowLen[i] = 0
				bs.coarse[i] = false
				continue
			}
			if id >= bs.vcount {
				return fmt.Errorf("expand: frontier entry %d: %w (V=%d)", id, csr.ErrVertexRange, bs.vcount)
			}
			off, length := bs.g.Row(id)
			bs.rowOff[i] = off
			bs.rowLen[i] = length
			if length >= threshold {
				bs.coarse[i] = true
				cSum += length
			} else {
				bs.coarse[i] = false
				fSum += length
			}
		}
		raking[e.scan.LaneSlot(channelCoarse, lane)] = cSum
		raking[e.scan.LaneSlot(channelFine, lane)] = fSum
	}

	// ScanRank: one two-channel raking scan, then every lane reads its
	// ranks back into registers so the scratch can be retagged.
	e.scan.Exclusive(raking, bs.totals[:])
	for lane := 0; lane < cfg.Threads; lane++ {
		bs.laneCoarse[lane] = raking[e.scan.LaneSlot(channelCoarse, lane)]
		bs.laneFine[lane] = raking[e.scan.LaneSlot(channelFine, lane)]
	}

	// Reserve: one fetch-and-add per non-empty channel, bases broadcast to
	// the block through the dedicated scratch slots.
	var bases [numChannels]uint64
	for ch := 0; ch < numChannels; ch++ {
		if bs.totals[ch] == 0 {
			continue
		}
		base, err := bs.out.reserve(ch, uint64(bs.totals[ch]))
		if err != nil {
			return err
		}
		bases[ch] = base
		bs.scratch[cfg.BroadcastSlot(ch)] = uint32(base)
	}

	bs.emit(count)

	if e.opts.Dedup {
		bs.dedup(bases)
	}

	bs.stats.Tiles++
	bs.stats.CoarseEmitted += uint64(bs.totals[channelCoarse])
	bs.stats.FineEmitted += uint64(bs.totals[channelFine])
	return nil
}

// Gather-view layout: four tile-sized arrays inside the union pool.
func (bs *blockState) gatherView() (off, length, src, rank []uint32) {
	t := bs.e.cfg.TileSize
	gv := bs.scratch[bs.e.cfg.UnionOffset():]
	return gv[0:t], gv[t : 2*t], gv[2*t : 3*t], gv[3*t : 4*t]
}

// emit writes both channels. The raking view is dead by now (ranks live in
// registers), so the union pool is retagged as the gather buffer. Both
// reserved bases are read back through the broadcast slots.
func (bs *blockState) emit(count int) {
	e := bs.e
	cfg := e.cfg
	coarseBase := uint64(bs.scratch[cfg.BroadcastSlot(channelCoarse)])
	fineBase := uint64(bs.scratch[cfg.BroadcastSlot(channelFine)])
	coarseOut := bs.out.regions[channelCoarse]
	fineOut := bs.out.regions[channelFine]
	coarsePar := bs.out.parents[channelCoarse]
	finePar := bs.out.parents[channelFine]

	// Enlist coarse rows into the gather buffer with their scanned ranks;
	// write fine rows directly, each lane at its own rank.
	gvOff, gvLen, gvSrc, gvRank := bs.gatherView()
	enlisted := 0
	for lane := 0; lane < cfg.Threads; lane++ {
		cRank := bs.laneCoarse[lane]
		fRank := bs.laneFine[lane]
		for k := 0; k < e.perLane; k++ {
			i := lane*e.perLane + k
			if i >= count {
				break
			}
			length := bs.rowLen[i]
			if length == 0 {
				continue
			}
			if bs.coarse[i] {
				gvOff[enlisted] = bs.rowOff[i]
				gvLen[enlisted] = length
				gvSrc[enlisted] = bs.ids[i]
				gvRank[enlisted] = cRank
				enlisted++
				cRank += length
				continue
			}
			dst := fineBase + uint64(fRank)
			copy(fineOut[dst:dst+uint64(length)], bs.g.Neighbors(bs.ids[i]))
			if bs.out.track {
				fill(finePar[dst:dst+uint64(length)], bs.ids[i])
			}
			fRank += length
		}
	}

	// Cooperative pass: the block strides each enlisted row in turn.
	for k := 0; k < enlisted; k++ {
		dst := coarseBase + uint64(gvRank[k])
		row := bs.g.Neighbors(gvSrc[k])
		copy(coarseOut[dst:dst+uint64(gvLen[k])], row)
		if bs.out.track {
			fill(coarsePar[dst:dst+uint64(gvLen[k])], gvSrc[k])
		}
	}
}

// dedup retags the union pool as the hash table and filters the output
// ranges this tile just reserved. Direct-mapped, evict-on-collision: a
// colliding candidate replaces the occupant, so collisions may pass
// duplicates through but never drop unique ids.
func (bs *blockState) dedup(bases [numChannels]uint64) {
	cfg := bs.e.cfg
	table := bs.scratch[cfg.UnionOffset() : cfg.UnionOffset()+cfg.HashSlots]
	for i := range table {
		table[i] = InvalidVertex
	}
	mask := uint32(cfg.HashSlots - 1)

	for ch := 0; ch < numChannels; ch++ {
		n := uint64(bs.totals[ch])
		if n == 0 {
			continue
		}
		region := bs.out.regions[ch][bases[ch] : bases[ch]+n]
		var parents []uint32
		if bs.out.track {
			parents = bs.out.parents[ch][bases[ch] : bases[ch]+n]
		}
		for i, id := range region {
			slot := id & mask
			if table[slot] == id {
				region[i] = InvalidVertex
				if parents != nil {
					parents[i] = InvalidVertex
				}
				bs.stats.Duplicates++
				continue
			}
			table[slot] = id
		}
	}
}

// fill sets every element of dst to v.
func fill(dst []uint32, v uint32) {
	for i := range dst {
		dst[i] = v
	}
}
