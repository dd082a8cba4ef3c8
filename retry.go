package cdpregap

// RetryingReader reads a single sector, retrying the transport read up
// to a caller-supplied bound while the decoded subchannel CRC fails to
// verify. It surfaces transport errors unchanged and immediately; CRC
// mismatches are not transport errors and are not retried once
// maxRetries extra attempts have been exhausted.
//
// This distinction is the whole point of the type: "transport broken"
// is fatal to the caller, "CRC never matched" is advisory, and it is
// [PregapFinder]'s bracket logic - not this reader - that decides what
// to do about an unverified read.
type RetryingReader struct {
	Transport Transport
}

// Read reads one frame at lsn into buf (which must be FrameLen bytes),
// retrying while the subchannel CRC does not verify, up to maxRetries
// additional attempts beyond the first. It returns the decoded
// subchannel, whether its CRC verified, and a non-nil error only when
// the transport itself failed.
//
// TODO: a drive-cache invalidation before each retry was tried against
// real hardware and had no measurable effect, so it isn't done here.
func (r RetryingReader) Read(lsn LSN, maxRetries int, buf []byte) (SubchannelQ, bool, error) {
	if err := r.Transport.Read(lsn, 1, buf); err != nil {
		return SubchannelQ{}, false, &TransportError{LSN: lsn, Err: err}
	}

	subq, verified := decodeAndVerify(buf)
	for attempts := 0; attempts < maxRetries && !verified; attempts++ {
		if err := r.Transport.Read(lsn, 1, buf); err != nil {
			return SubchannelQ{}, false, &TransportError{LSN: lsn, Err: err}
		}
		subq, verified = decodeAndVerify(buf)
	}
	return subq, verified, nil
}

func decodeAndVerify(frame []byte) (SubchannelQ, bool) {
	subqBuf := frame[FrameAudioLen:]
	subq, err := DecodeSubchannelQ(subqBuf)
	if err != nil {
		return SubchannelQ{}, false
	}
	return subq, VerifySubchannelQ(subqBuf)
}
