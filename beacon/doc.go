// Package beacon defines the identifier/timestamp payload broadcast by a
// timing source and the tracker that decides when a receiver is locked to
// one source.
//
// A beacon payload is the identifier followed by the timestamp, each an
// unsigned little-endian integer of the same width. The default width of 2
// bytes yields a 4-byte payload.
//
// Clock extrapolates the tracked source's timestamp between beacons from the
// capture's sample position.
package beacon
