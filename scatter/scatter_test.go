package scatter

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flokey/back40computing/arch"
	"github.com/flokey/back40computing/kernelcfg"
)

// testConfig keeps tiles tiny so a handful of keys spans several blocks.
func testConfig() kernelcfg.Config {
	return kernelcfg.Config{LogThreads: 4, LogRakingThreads: 2}
}

// stableDistribute is the reference: a stable counting pass by digit. Block
// ranges are contiguous and ordered, so the kernel's (digit, block) segment
// order collapses to exactly this.
func stableDistribute(keys, values []uint32, radixBits int, bitOffset uint) (outK, outV []uint32) {
	digits := 1 << radixBits
	mask := uint32(digits - 1)
	counts := make([]uint32, digits)
	for _, k := range keys {
		counts[(k>>bitOffset)&mask]++
	}
	var running uint32
	for i, c := range counts {
		counts[i], running = running, running+c
	}
	outK = make([]uint32, len(keys))
	if values != nil {
		outV = make([]uint32, len(values))
	}
	for i, k := range keys {
		dig := (k >> bitOffset) & mask
		dst := counts[dig]
		counts[dig]++
		outK[dst] = k
		if values != nil {
			outV[dst] = values[i]
		}
	}
	return outK, outV
}

func TestNewDownsweepRejections(t *testing.T) {
	p := arch.Current()

	_, err := NewDownsweep(p, testConfig(), 0)
	require.ErrorIs(t, err, ErrRadixBits)
	_, err = NewDownsweep(p, testConfig(), maxRadixBits+1)
	require.ErrorIs(t, err, ErrRadixBits)

	stealing := testConfig()
	stealing.WorkStealing = true
	_, err = NewDownsweep(p, stealing, 4)
	require.ErrorIs(t, err, ErrWorkStealing)

	// 1024-thread blocks exceed the legacy profile's thread capacity.
	wide := kernelcfg.Config{LogThreads: 10}
	_, err = NewDownsweep(arch.Legacy(), wide, 4)
	require.ErrorIs(t, err, kernelcfg.ErrInvalidConfig)
}

func TestScatterRejections(t *testing.T) {
	d, err := NewDownsweep(arch.Current(), testConfig(), 4)
	require.NoError(t, err)

	keys := []uint32{3, 1, 2}
	spine, err := d.BuildSpine(keys, 0)
	require.NoError(t, err)

	out := make([]uint32, len(keys))
	require.ErrorIs(t, d.Scatter(context.Background(), keys, nil, spine, out, nil, 30), ErrRadixBits)
	require.ErrorIs(t, d.Scatter(context.Background(), keys, nil, spine, out[:2], nil, 0), ErrLengthMismatch)
	require.ErrorIs(t, d.Scatter(context.Background(), keys, []uint32{1}, spine, out, out, 0), ErrLengthMismatch)
	require.ErrorIs(t, d.Scatter(context.Background(), keys, nil, spine, out, out, 0), ErrLengthMismatch)
	require.ErrorIs(t, d.Scatter(context.Background(), keys, nil, spine[:1], out, nil, 0), ErrSpineShape)

	_, err = d.BuildSpine(keys, 29)
	require.ErrorIs(t, err, ErrRadixBits)
}

// TestScratchPoolCoversRakingView pins the block scratch to the derived
// SharedScratch layout: the raking view must fit the union region past the
// broadcast slots.
func TestScratchPoolCoversRakingView(t *testing.T) {
	d, err := NewDownsweep(arch.Current(), testConfig(), 4)
	require.NoError(t, err)
	require.Equal(t, d.cfg.Channels, d.cfg.UnionOffset())
	require.GreaterOrEqual(t, d.cfg.ScratchWords, d.cfg.UnionOffset()+d.scan.Words())

	bs := newBlockState(&pass{d: d}, 0)
	require.Len(t, bs.scratch, d.cfg.ScratchWords)
}

func TestScatterEmpty(t *testing.T) {
	d, err := NewDownsweep(arch.Current(), testConfig(), 4)
	require.NoError(t, err)

	spine, err := d.BuildSpine(nil, 0)
	require.NoError(t, err)
	require.Empty(t, spine)
	require.NoError(t, d.Scatter(context.Background(), nil, nil, spine, nil, nil, 0))
}

func TestScatterMatchesStableDistribution(t *testing.T) {
	d, err := NewDownsweep(arch.Current(), testConfig(), 4)
	require.NoError(t, err)
	tile := d.Config().TileSize

	rng := rand.New(rand.NewSource(7))
	for _, n := range []int{1, tile - 1, tile, tile + 1, 3*tile + 5, 50_000} {
		for _, bitOffset := range []uint{0, 8} {
			keys := make([]uint32, n)
			values := make([]uint32, n)
			for i := range keys {
				keys[i] = rng.Uint32()
				values[i] = uint32(i)
			}

			spine, err := d.BuildSpine(keys, bitOffset)
			require.NoError(t, err)
			require.Len(t, spine, d.Digits()*d.GridSize(n))

			outK := make([]uint32, n)
			outV := make([]uint32, n)
			require.NoError(t, d.Scatter(context.Background(), keys, values, spine, outK, outV, bitOffset))

			wantK, wantV := stableDistribute(keys, values, 4, bitOffset)
			require.Equal(t, wantK, outK, "n=%d bitOffset=%d", n, bitOffset)
			require.Equal(t, wantV, outV, "n=%d bitOffset=%d", n, bitOffset)
		}
	}
}

func TestScatterKeysOnly(t *testing.T) {
	d, err := NewDownsweep(arch.Current(), testConfig(), 2)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(11))
	keys := make([]uint32, 1000)
	for i := range keys {
		keys[i] = rng.Uint32() & 0xff
	}
	spine, err := d.BuildSpine(keys, 0)
	require.NoError(t, err)

	out := make([]uint32, len(keys))
	require.NoError(t, d.Scatter(context.Background(), keys, nil, spine, out, nil, 0))

	want, _ := stableDistribute(keys, nil, 2, 0)
	require.Equal(t, want, out)
}

// TestLSDRadixSort chains downsweep passes over successive digit windows,
// ping-ponging buffers. Stability within every pass makes the composition a
// full sort.
func TestLSDRadixSort(t *testing.T) {
	const radix = 4
	d, err := NewDownsweep(arch.Current(), testConfig(), radix)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))
	n := 10_000
	cur := make([]uint32, n)
	for i := range cur {
		cur[i] = rng.Uint32()
	}
	want := append([]uint32(nil), cur...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	next := make([]uint32, n)
	for bitOffset := uint(0); bitOffset < 32; bitOffset += radix {
		spine, err := d.BuildSpine(cur, bitOffset)
		require.NoError(t, err)
		require.NoError(t, d.Scatter(context.Background(), cur, nil, spine, next, nil, bitOffset))
		cur, next = next, cur
	}
	require.Equal(t, want, cur)
}
