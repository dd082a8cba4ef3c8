// Package cdpregap finds the pregap boundary of a track on an audio
// Compact Disc: the Logical Sector Number at which the silent "index 0"
// region preceding a track begins.
//
// Drive firmware does not always expose pregap boundaries, and the
// Red Book layout places index-0 sectors inside the previous track's
// LBA range, so an accurate ripper has to go looking for the boundary
// itself by reading raw sectors and their Q subchannel near the track
// edge. [PregapFinder] implements that search: a bounded
// binary-search-like procedure that tolerates transient read errors
// and CRC mismatches and converges on the first sector belonging to
// the pregap.
//
// The package depends on two small collaborator interfaces, [Transport]
// and [TocQueries], rather than any particular OS or optical drive
// library. Concrete transports for Linux (MMC READ CD over SG_IO) and
// macOS (the DKIOCCDREAD ioctl) live in the transport/mmc and
// transport/darwin subpackages.
//
// MusicBrainz lookups, audio ripping/encoding/tagging, and CLI/config
// plumbing are not part of this package; it only finds the boundary.
package cdpregap
