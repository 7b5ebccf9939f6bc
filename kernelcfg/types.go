package kernelcfg

import (
	"errors"

	"github.com/flokey/back40computing/arch"
)

// Sentinel errors for configuration building and consumption.
var (
	// ErrTileGeometry indicates a log2 tunable outside the supported range.
	ErrTileGeometry = errors.New("kernelcfg: tile geometry out of range")
	// ErrRakingGeometry indicates raking threads that do not divide the
	// thread count or exceed one lockstep subgroup.
	ErrRakingGeometry = errors.New("kernelcfg: invalid raking thread geometry")
	// ErrChannelCount indicates a scan channel count that is not a positive
	// power of two.
	ErrChannelCount = errors.New("kernelcfg: channel count must be a positive power of two")
	// ErrThreshold indicates a negative coarse/fine degree threshold.
	ErrThreshold = errors.New("kernelcfg: coarse/fine threshold cannot be negative")
	// ErrInvalidConfig marks a configuration whose derived occupancy is zero
	// on the target architecture. New returns such records without error;
	// every launch path must reject them with this sentinel.
	ErrInvalidConfig = errors.New("kernelcfg: configuration occupancy is zero for target architecture")
)

// CacheHint selects the load policy for one input array.
type CacheHint uint8

const (
	// HintDefault retains loaded lines normally.
	HintDefault CacheHint = iota
	// HintStreaming marks single-use data (e.g. frontier queue entries) that
	// should not displace reusable cached data.
	HintStreaming
)

// Tunable upper bounds. TileSize is capped at 2^20 elements so word-count
// arithmetic stays comfortably inside int range on every platform.
const (
	maxLogThreads       = 10
	maxLogVectorWidth   = 4
	maxLogLoadsPerTile  = 4
	maxLogRakingThreads = 10
	maxLogGranularity   = 8
	maxChannels         = 64
)

// Config is the compile-time tuning surface of one kernel specialization.
// All size tunables are log2-encoded so derived sizes are powers of two.
type Config struct {
	// LogThreads is log2 of the threads per block.
	LogThreads uint
	// LogVectorWidth is log2 of the elements one thread loads per access.
	LogVectorWidth uint
	// LogLoadsPerTile is log2 of the accesses each thread performs per tile.
	LogLoadsPerTile uint
	// LogRakingThreads is log2 of the threads that rake the scan spine.
	LogRakingThreads uint
	// LogScheduleGranularity is log2 of the tiles per scheduling grain.
	LogScheduleGranularity uint

	// MaxOccupancy caps resident blocks per unit; 0 defers to the profile's
	// MaxResidentBlocks.
	MaxOccupancy int
	// Channels is the scan channel count; 0 defaults to 2 (coarse + fine).
	Channels int
	// WorkStealing enables the shared-counter scheduling variant for
	// workloads with non-uniform per-element cost.
	WorkStealing bool
	// CoarseThreshold is the fan-out at or above which a vertex is expanded
	// cooperatively; 0 defers to the profile default.
	CoarseThreshold int

	// QueueHint is the load policy for frontier/input queue entries.
	QueueHint CacheHint
	// ColumnHint is the load policy for adjacency/payload arrays.
	ColumnHint CacheHint
}

// Derived binds a Config to a profile with every dependent constant computed
// once. Derived values are immutable; copy freely.
type Derived struct {
	Config
	Profile arch.Profile

	// Threads, VectorWidth, LoadsPerTile and TileSize are the decoded tile
	// geometry; TileSize = Threads · VectorWidth · LoadsPerTile.
	Threads      int
	VectorWidth  int
	LoadsPerTile int
	TileSize     int
	// RakingThreads rake the scan spine; always ≤ Threads and ≤ subgroup.
	RakingThreads int
	// ScheduleGranularity is the scheduling grain in elements.
	ScheduleGranularity int
	// HashSlots is the duplicate-suppression table size (view C).
	HashSlots int
	// ScratchWords/ScratchBytes is the per-block pool footprint.
	ScratchWords int
	ScratchBytes int
	// Occupancy is the resident blocks per unit; 0 means never launchable.
	Occupancy int
}
