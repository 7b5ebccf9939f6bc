package bulkcopy

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flokey/back40computing/arch"
	"github.com/flokey/back40computing/kernelcfg"
)

func randomPayload(n int, seed int64) []uint32 {
	rng := rand.New(rand.NewSource(seed))
	p := make([]uint32, n)
	for i := range p {
		p[i] = rng.Uint32()
	}
	return p
}

func TestNewCopierRejectsUnlaunchable(t *testing.T) {
	_, err := NewCopier(arch.Legacy(), kernelcfg.Config{LogThreads: 10})
	require.ErrorIs(t, err, kernelcfg.ErrInvalidConfig)
}

func TestCopierRoundTrip(t *testing.T) {
	for _, preset := range []kernelcfg.Config{SmallConfig(), LargeConfig()} {
		c, err := NewCopier(arch.Current(), preset)
		require.NoError(t, err)
		tile := c.Config().TileSize

		// Sizes that exercise the empty, single-tile, guarded-tail and
		// multi-block paths.
		for _, n := range []int{0, 1, tile - 1, tile, tile + 1, 17*tile + 3} {
			src := randomPayload(n, int64(n))
			dst := make([]uint32, n)
			require.NoError(t, c.Copy(context.Background(), dst, src))
			require.Equal(t, src, dst, "threads=%d n=%d", c.Config().Threads, n)
		}
	}
}

func TestCopierLengthMismatch(t *testing.T) {
	c, err := NewCopier(arch.Current(), SmallConfig())
	require.NoError(t, err)
	require.ErrorIs(t, c.Copy(context.Background(), make([]uint32, 2), make([]uint32, 3)), ErrLengthMismatch)
}

func TestCopierCancelledContext(t *testing.T) {
	c, err := NewCopier(arch.Current(), SmallConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := randomPayload(10_000, 1)
	require.ErrorIs(t, c.Copy(ctx, make([]uint32, len(src)), src), context.Canceled)
}

func TestPresetsLaunchableOnBothProfiles(t *testing.T) {
	for _, p := range []arch.Profile{arch.Current(), arch.Legacy()} {
		for _, preset := range []kernelcfg.Config{SmallConfig(), LargeConfig()} {
			c, err := NewCopier(p, preset)
			require.NoError(t, err)
			require.True(t, c.Config().Valid(), "tag=%s threads=%d", p.Tag, c.Config().Threads)
		}
	}
}

func TestDispatcherSelectsBySize(t *testing.T) {
	d, err := NewDispatcher(arch.Current())
	require.NoError(t, err)

	for _, n := range []int{100, DefaultThreshold, DefaultThreshold + 1} {
		src := randomPayload(n, int64(n))
		dst := make([]uint32, n)
		require.NoError(t, d.Copy(context.Background(), dst, src))
		require.Equal(t, src, dst)
	}
}
