package scatter

import (
	"context"
	"math/rand"
	"testing"

	"github.com/flokey/back40computing/arch"
)

// BenchmarkScatter_Radix4 measures one keys+values downsweep pass over
// uniformly random 32-bit keys with a prebuilt spine.
func BenchmarkScatter_Radix4(b *testing.B) {
	d, err := NewDownsweep(arch.Current(), DefaultConfig(), 4)
	if err != nil {
		b.Fatal(err)
	}

	n := 1 << 16
	rng := rand.New(rand.NewSource(1))
	keys := make([]uint32, n)
	values := make([]uint32, n)
	for i := range keys {
		keys[i] = rng.Uint32()
		values[i] = uint32(i)
	}
	spine, err := d.BuildSpine(keys, 0)
	if err != nil {
		b.Fatal(err)
	}
	outK := make([]uint32, n)
	outV := make([]uint32, n)

	b.ReportAllocs()
	b.SetBytes(int64(n * 8))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := d.Scatter(context.Background(), keys, values, spine, outK, outV, 0); err != nil {
			b.Fatal(err)
		}
	}
}
