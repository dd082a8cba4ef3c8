package cdpregap

// Transport reads raw audio+Q-subchannel frames from a drive. It is
// the single abstract operation this package depends on for talking
// to hardware; platform-specific implementations live in the
// transport/mmc and transport/darwin subpackages.
//
// Read fills out with blocks consecutive frames starting at lsn. out
// must be exactly blocks*FrameLen bytes long. Each frame is
// FrameAudioLen bytes of CD-DA audio followed by SubqLen bytes of
// formatted Q-subchannel response (MMC-3 Table 38).
//
// Read performs no retries of its own; it reports the first failure
// it encounters. Retrying on CRC mismatch is [RetryingReader]'s job,
// not the transport's. A Transport never writes to the drive.
type Transport interface {
	Read(lsn LSN, blocks int, out []byte) error
}
