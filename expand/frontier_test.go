package expand_test

import (
	"context"
	"testing"

	"github.com/flokey/back40computing/arch"
	"github.com/flokey/back40computing/csr"
	"github.com/flokey/back40computing/expand"
)

// TestFrontier_ParentsDisabled returns nil parent views when tracking is
// off.
func TestFrontier_ParentsDisabled(t *testing.T) {
	f := expand.NewFrontier(8, 8, false)
	if f.TracksParents() {
		t.Error("TracksParents() = true; want false")
	}
	if f.CoarseParents() != nil || f.FineParents() != nil {
		t.Error("parent views must be nil when tracking is disabled")
	}
}

// TestFrontier_ResetRewinds reuses the same regions across two levels.
func TestFrontier_ResetRewinds(t *testing.T) {
	g, err := csr.FromAdjacency([][]uint32{{1, 2}, {}, {}})
	if err != nil {
		t.Fatal(err)
	}
	e, err := expand.NewEngine(arch.Current(), testConfig())
	if err != nil {
		t.Fatal(err)
	}

	f := expand.NewFrontier(8, 8, false)
	if _, err := e.Expand(context.Background(), g, []uint32{0}, f); err != nil {
		t.Fatal(err)
	}
	if f.FineCount() != 2 {
		t.Fatalf("FineCount = %d; want 2", f.FineCount())
	}

	f.Reset()
	if f.FineCount() != 0 || f.CoarseCount() != 0 {
		t.Errorf("Reset left cursors at %d/%d", f.CoarseCount(), f.FineCount())
	}
	if _, err := e.Expand(context.Background(), g, []uint32{0}, f); err != nil {
		t.Fatal(err)
	}
	if f.FineCount() != 2 {
		t.Fatalf("post-reset FineCount = %d; want 2", f.FineCount())
	}
}

// TestFrontier_CompactAppends appends to an existing slice.
func TestFrontier_CompactAppends(t *testing.T) {
	g, err := csr.FromAdjacency([][]uint32{{1}, {}})
	if err != nil {
		t.Fatal(err)
	}
	e, err := expand.NewEngine(arch.Current(), testConfig())
	if err != nil {
		t.Fatal(err)
	}
	f := expand.NewFrontier(4, 4, false)
	if _, err := e.Expand(context.Background(), g, []uint32{0}, f); err != nil {
		t.Fatal(err)
	}
	got := f.Compact([]uint32{9})
	if len(got) != 2 || got[0] != 9 || got[1] != 1 {
		t.Errorf("Compact = %v; want [9 1]", got)
	}
}
