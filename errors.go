package cdpregap

import (
	"errors"
	"fmt"
)

// ErrPregapAmbiguous is returned by [PregapFinder.FindPregapLSN] when
// ambiguous (CRC-failing) sectors straddle the pregap boundary and
// remain unresolved even after escalating to the hard retry ceiling.
// It is not a transport failure: the drive is fine, but the sectors
// that would settle the boundary never produced a verifying read.
var ErrPregapAmbiguous = errors.New("cdpregap: pregap boundary could not be determined (ambiguous CRC failures)")

// TransportError wraps an error reported by a [Transport]. It is
// always fatal: [PregapFinder.FindPregapLSN] returns it immediately,
// with no partial state and InvalidLSN as the result.
type TransportError struct {
	LSN LSN
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cdpregap: transport read at lsn %d failed: %v", e.LSN, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
