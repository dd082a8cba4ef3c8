package cdpregap

import "log"

// LogMode configures where PregapFinder sends its diagnostic logs.
type LogMode int

const (
	LogModeSilent LogMode = 0 // disable logs (default)
	LogModeStdErr LogMode = 1 // log to stderr
	LogModeLogger LogMode = 2 // log to the supplied *log.Logger
)

// Default retry/backtrack tuning. The ceilings are empirical; an
// implementation may make them configurable (PregapFinder does, via
// its exported fields) but must keep the two-tier policy: a cheap
// attempt for sectors the algorithm can route around, an expensive
// one for sectors it cannot.
const (
	DefaultRetryMax     = 5
	DefaultHardRetryMax = 200
	DefaultBacktrackStep LSN = 150 // 2 seconds at 75 sectors/second
)

// PregapFinder converges on the pregap start LSN of a track by
// orchestrating a [RetryingReader] against [TocQueries]-provided
// bounds. It holds no state across calls to FindPregapLSN; the zero
// value is usable once Transport and Toc are set, at which point the
// RetryMax/HardRetryMax/BacktrackStep fields fall back to their
// Default* constants.
type PregapFinder struct {
	Transport Transport
	Toc       TocQueries

	// RetryMax is the initial CRC-retry ceiling for "routine" reads.
	// Zero means DefaultRetryMax.
	RetryMax int
	// HardRetryMax is the escalated ceiling used only when a sector is
	// essential to tightening the bounds and can't be routed around.
	// Zero means DefaultHardRetryMax.
	HardRetryMax int
	// BacktrackStep is the coarse backtrack stride, in sectors. Zero
	// means DefaultBacktrackStep.
	BacktrackStep LSN

	LogMode LogMode
	Logger  *log.Logger
}

func (f *PregapFinder) retryMax() int {
	if f.RetryMax <= 0 {
		return DefaultRetryMax
	}
	return f.RetryMax
}

func (f *PregapFinder) hardRetryMax() int {
	if f.HardRetryMax <= 0 {
		return DefaultHardRetryMax
	}
	return f.HardRetryMax
}

func (f *PregapFinder) backtrackStep() LSN {
	if f.BacktrackStep <= 0 {
		return DefaultBacktrackStep
	}
	return f.BacktrackStep
}

func (f *PregapFinder) logf(format string, args ...any) {
	switch f.LogMode {
	case LogModeStdErr:
		log.Printf(format, args...)
	case LogModeLogger:
		if f.Logger != nil {
			f.Logger.Printf(format, args...)
		}
	}
}

// FindPregapLSN returns the first LSN of track's pregap, or track's
// own start LSN if it has no pregap, or InvalidLSN (with a non-nil
// error) on failure.
//
// TODO: pre-MMC-2 drives return all-zero Q subchannel data; this does
// not detect that case before running the algorithm against it.
func (f *PregapFinder) FindPregapLSN(track TrackNumber) (LSN, error) {
	if hint := f.Toc.DriverPregapLSN(track); hint != InvalidLSN {
		f.logf("cdpregap: driver reported pregap lsn %d for track %d", hint, track)
		return hint, nil
	}

	if track == f.Toc.FirstTrackNumber() {
		return 0, nil
	}

	trackStart := f.Toc.TrackStartLSN(track)
	prevTrack := track - 1
	prevTrackStart := f.Toc.TrackStartLSN(prevTrack)

	// Previous track has a single sector: no room for a pregap.
	if prevTrackStart+1 == trackStart {
		return trackStart, nil
	}

	reader := RetryingReader{Transport: f.Transport}
	buf := make([]byte, FrameLen)
	retryMax := f.retryMax()

	rightBound := trackStart

	// Preamble: check one sector before track start.
	lsn := trackStart - 1
	subq, verified, err := reader.Read(lsn, retryMax, buf)
	if err != nil {
		return InvalidLSN, err
	}
	if verified && subq.ADR == ADRCurrentPosition {
		switch subq.Track {
		case prevTrack:
			return trackStart, nil
		case track:
			rightBound = lsn
		}
	}

	// Coarse backtrack in 2-second steps until a sector confirmed to
	// belong to the previous track is found (or the previous track's
	// own start is reached by clamping).
	step := f.backtrackStep()
	for {
		if lsn-step >= prevTrackStart {
			lsn -= step
		} else {
			lsn = prevTrackStart
		}
		if lsn == prevTrackStart {
			break
		}
		subq, verified, err = reader.Read(lsn, retryMax, buf)
		if err != nil {
			return InvalidLSN, err
		}
		if !verified || subq.ADR != ADRCurrentPosition {
			continue
		}
		if subq.Track == track {
			rightBound = lsn
			continue
		}
		// subq.Track == prevTrack
		break
	}
	leftBound := lsn

	// Fine contraction: sweep forward from leftBound+1, tightening
	// bounds until they meet, skipping over CRC-failing sectors and
	// escalating to the hard retry ceiling only if that skipping ever
	// leaves an essential sector unclassified.
	for leftBound+1 != rightBound {
		lsn++
		if lsn == rightBound {
			if retryMax == f.hardRetryMax() {
				break
			}
			retryMax = f.hardRetryMax()
			f.logf("cdpregap: escalating to hard retry ceiling %d at lsn %d", retryMax, lsn)
			lsn = leftBound
			continue
		}

		subq, verified, err = reader.Read(lsn, retryMax, buf)
		if err != nil {
			return InvalidLSN, err
		}
		if !verified {
			continue
		}
		if subq.ADR != ADRCurrentPosition {
			// A mode-2/mode-3 sector immediately following leftBound is
			// absorbed into the previous track's region.
			if lsn-1 == leftBound {
				leftBound = lsn
			}
			continue
		}
		switch subq.Track {
		case prevTrack:
			leftBound = lsn
		case track:
			rightBound = lsn
			lsn = leftBound // revisit unknown sectors between new bounds
		}
	}

	if leftBound+1 == rightBound {
		return rightBound, nil
	}
	f.logf("cdpregap: could not converge for track %d: left=%d right=%d", track, leftBound, rightBound)
	return InvalidLSN, ErrPregapAmbiguous
}
