package cdpregap

// LSN is a Logical Sector Number: a signed, linear, 0-based sector
// address on the user area of a disc. Sector 0 is the start of the
// user area; LBA (Logical Block Address) equals LSN+150, the pregap
// lead-in offset, but this package only ever deals in LSNs.
type LSN int32

// InvalidLSN is the sentinel returned when a pregap cannot be
// determined, or by a [TocQueries] implementation that has no
// driver-provided pregap hint for a track.
const InvalidLSN LSN = -1

// TrackNumber identifies a track on the disc, starting at 1.
type TrackNumber int

// SectorsPerSecond is the number of sectors (frames) per second of
// CD-DA audio: 75, per Redbook MSF addressing.
const SectorsPerSecond = 75

// FrameAudioLen is the number of bytes of linear PCM audio in one raw
// frame, opaque to this package.
const FrameAudioLen = 2352

// SubqLen is the number of bytes in a formatted Q-subchannel response
// (MMC-3 Table 38).
const SubqLen = 16

// FrameLen is the size in bytes of one raw audio+Q-subchannel frame as
// read by [Transport.Read]: FrameAudioLen audio bytes followed by
// SubqLen subchannel bytes.
const FrameLen = FrameAudioLen + SubqLen
