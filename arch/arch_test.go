package arch_test

import (
	"errors"
	"testing"

	"github.com/flokey/back40computing/arch"
)

// TestLookup_KnownTags verifies both supported generations resolve to
// profiles carrying their own tag.
func TestLookup_KnownTags(t *testing.T) {
	for _, tag := range []arch.Tag{arch.Gen200, arch.Gen100} {
		p, err := arch.Lookup(tag)
		if err != nil {
			t.Fatalf("Lookup(%s): unexpected error: %v", tag, err)
		}
		if p.Tag != tag {
			t.Errorf("Lookup(%s).Tag = %s; want %s", tag, p.Tag, tag)
		}
	}
}

// TestLookup_UnknownTag verifies the sentinel error for unsupported tags.
func TestLookup_UnknownTag(t *testing.T) {
	if _, err := arch.Lookup("gen999"); !errors.Is(err, arch.ErrUnknownTag) {
		t.Errorf("unknown tag: want ErrUnknownTag, got %v", err)
	}
}

// TestProfiles_SaneBudgets checks the invariants every profile must satisfy
// for occupancy arithmetic to be meaningful.
func TestProfiles_SaneBudgets(t *testing.T) {
	for _, p := range []arch.Profile{arch.Current(), arch.Legacy()} {
		if p.SubgroupWidth <= 0 || p.SubgroupWidth&(p.SubgroupWidth-1) != 0 {
			t.Errorf("%s: SubgroupWidth %d must be a positive power of two", p.Tag, p.SubgroupWidth)
		}
		if p.ThreadCapacity < p.SubgroupWidth {
			t.Errorf("%s: ThreadCapacity %d below one subgroup", p.Tag, p.ThreadCapacity)
		}
		if p.MaxResidentBlocks <= 0 || p.LocalMemBytes <= 0 || p.Units <= 0 {
			t.Errorf("%s: non-positive resource budget %+v", p.Tag, p)
		}
		if p.DefaultCoarseThreshold <= 0 {
			t.Errorf("%s: DefaultCoarseThreshold must be positive", p.Tag)
		}
	}
}
