package expand

import (
	"errors"
	"fmt"
)

// InvalidVertex is the sentinel id marking masked lanes and output slots
// vacated by duplicate suppression. It is never a legal vertex id.
const InvalidVertex = ^uint32(0)

// Sentinel errors for expansion runs.
var (
	// ErrGraphNil is returned if a nil adjacency index is passed.
	ErrGraphNil = errors.New("expand: graph is nil")
	// ErrFrontierNil is returned if a nil output frontier is passed.
	ErrFrontierNil = errors.New("expand: output frontier is nil")
	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("expand: invalid option supplied")
	// ErrFrontierOverflow is returned when a tile's reservation exceeds the
	// output region's capacity; the whole pass fails and its outputs are
	// undefined.
	ErrFrontierOverflow = errors.New("expand: output frontier capacity exhausted")
)

// Option configures an Engine via functional arguments. An invalid option
// is recorded and surfaced as ErrOptionViolation by NewEngine.
type Option func(*Options)

// Options holds the engine knobs that are not part of the tuned kernel
// configuration.
type Options struct {
	// Dedup enables best-effort tile-local duplicate suppression.
	Dedup bool
	// MaxGridSize, if > 0, caps the blocks launched per pass.
	MaxGridSize int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns the engine defaults: no duplicate suppression and
// an uncapped grid.
func DefaultOptions() Options {
	return Options{}
}

// WithDedup enables the tile-local duplicate filter.
func WithDedup() Option {
	return func(o *Options) { o.Dedup = true }
}

// WithMaxGridSize caps the number of blocks launched per pass.
//
//	n > 0:  launch at most n blocks
//	n == 0: explicit no cap
//	n < 0:  invalid option → ErrOptionViolation
func WithMaxGridSize(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxGridSize cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxGridSize = n
	}
}

// Stats reports one pass's outcome. Counts are totals across all blocks;
// nothing here is ordered.
type Stats struct {
	// Tiles is the number of tiles processed.
	Tiles uint64
	// CoarseEmitted and FineEmitted count reserved output entries per
	// channel, including slots later vacated by duplicate suppression.
	CoarseEmitted uint64
	FineEmitted   uint64
	// Duplicates counts output slots vacated by the tile-local filter.
	Duplicates uint64
	// StolenGrains counts grains claimed beyond static allotments; zero
	// unless work stealing is enabled.
	StolenGrains uint64
}
