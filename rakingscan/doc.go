// Package rakingscan implements a multi-channel exclusive prefix scan over
// one tile's lanes using the raking strategy.
//
// What
//
//   - A Scanner is bound to a fixed geometry: lane count, channel count,
//     lockstep subgroup width, and raking thread count.
//   - Exclusive runs one scan over caller scratch: upsweep (each raking
//     thread serially reduces its segment of lanes), spine (the raking
//     threads' partials are exclusively scanned), downsweep (each segment is
//     reseeded with its partial's prefix and scanned serially), producing
//     every lane's exclusive rank and each channel's total in a single
//     traversal of the data.
//
// Why
//
//	A naive lane-by-lane scan synchronizes the whole block at every step; a
//	raking scan confines the serial work to subgroup-sized segments and a
//	spine no wider than one subgroup, so the spine pass needs no block-wide
//	barrier. All channels are scanned in the same traversal: storage is
//	channel-major, each channel owning structurally separate lane and
//	partial slots, so no channel can corrupt another's partial sums.
//
// Scratch contract
//
//	The caller provides a slice of at least Words() uint32s, laid out
//	channel-major: per channel, lanes slots followed by rakingThreads
//	partial slots. Lane values are written before the call via LaneSlot;
//	after the call each lane slot holds that lane's exclusive rank.
//
// Errors
//
//   - ErrGeometry for any shape that is not a power-of-two layout with the
//     raking threads dividing the lanes and fitting one subgroup.
package rakingscan
