//go:build darwin

package darwin

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/rabidaudio/cdpregap"
)

// dkCDRead mirrors dk_cd_read_t from <IOKit/storage/IOCDMediaBSDClient.h>.
type dkCDRead struct {
	Offset       int64
	SectorArea   uint8
	SectorType   uint8
	_            [2]byte // padding to align BufferLength on 4 bytes
	BufferLength uint32
	Buffer       uint64 // pointer to the destination buffer
}

// Sector area/type flags from <IOKit/storage/IOCDTypes.h>.
const (
	sectorAreaUser        = 0x10
	sectorAreaSubChannelQ = 0x02
	sectorTypeCDDA        = 0x01
)

// DKIOCCDREAD is _IOWR('d', 40, dk_cd_read_t), computed the same way
// the <sys/ioctl.h> _IOWR macro does rather than hardcoding a number
// that would silently drift if the struct size ever changed.
var dkioccdread = ioc(iocInOut, 'd', 40, unsafe.Sizeof(dkCDRead{}))

const (
	iocParmMask = 0x1fff
	iocIn       = 0x80000000
	iocOut      = 0x40000000
	iocInOut    = iocIn | iocOut
)

func ioc(inout uint32, group byte, num uint8, size uintptr) uint32 {
	return inout | (uint32(size&iocParmMask) << 16) | (uint32(group) << 8) | uint32(num)
}

// Transport reads audio+Q-subchannel frames from a macOS CD device
// (e.g. /dev/rdisk2) using DKIOCCDREAD.
type Transport struct {
	Device string

	f *os.File
}

// Open opens the underlying device. It must be called before Read.
func (t *Transport) Open() error {
	f, err := os.OpenFile(t.Device, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("darwin: open %s: %w", t.Device, err)
	}
	t.f = f
	return nil
}

// Close releases the underlying device file.
func (t *Transport) Close() error {
	if t.f == nil {
		return nil
	}
	return t.f.Close()
}

var _ cdpregap.Transport = (*Transport)(nil)

// Read implements [cdpregap.Transport] by issuing a single DKIOCCDREAD
// ioctl covering blocks consecutive sectors starting at lsn.
func (t *Transport) Read(lsn cdpregap.LSN, blocks int, out []byte) error {
	if t.f == nil {
		return fmt.Errorf("darwin: device not open")
	}
	want := blocks * cdpregap.FrameLen
	if len(out) != want {
		return fmt.Errorf("darwin: buffer must be %d bytes, got %d", want, len(out))
	}

	req := dkCDRead{
		Offset:       int64(lsn) * int64(cdpregap.FrameLen),
		SectorArea:   sectorAreaUser | sectorAreaSubChannelQ,
		SectorType:   sectorTypeCDDA,
		BufferLength: uint32(want),
		Buffer:       uint64(uintptr(unsafe.Pointer(&out[0]))),
	}

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, t.f.Fd(), uintptr(dkioccdread), uintptr(unsafe.Pointer(&req))); errno != 0 {
		return fmt.Errorf("darwin: DKIOCCDREAD at lsn %d: %w", lsn, errno)
	}
	return nil
}
