//go:build linux

package mmc

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/rabidaudio/cdpregap"
)

// sgIOHeader mirrors struct sg_io_hdr from <scsi/sg.h>. Field order
// and sizes match the kernel ABI; this is a plain block-device ioctl,
// not a reach into any CD-I/O library's internal layout.
type sgIOHeader struct {
	InterfaceID    int32
	DxferDirection int32
	CmdLen         uint8
	MxSbLen        uint8
	IovecCount     uint16
	DxferLen       uint32
	Dxferp         uint64
	Cmdp           uint64
	Sbp            uint64
	Timeout        uint32
	Flags          uint32
	PackID         int32
	_              uint32 // padding: align UsrPtr to 8 bytes, as the kernel's C struct does
	UsrPtr         uint64
	Status         uint8
	MaskedStatus   uint8
	MsgStatus      uint8
	SbLenWr        uint8
	HostStatus     uint16
	DriverStatus   uint16
	Resid          int32
	Duration       uint32
	Info           uint32
}

const (
	sgIOIoctl        = 0x2285 // SG_IO
	sgDxferFromDev   = -3    // SG_DXFER_FROM_DEV
	sgInterfaceIDS   = 'S'
	readCDOpcode     = 0xBE
	cdDASectorType   = 1 // expected sector type: CD-DA
	subqSelectionQ   = 2 // sub-channel selection: formatted Q
	senseBufferLen   = 32
	ioctlTimeoutMsec = 5000
)

// Transport reads audio+Q-subchannel frames from a Linux block device
// (e.g. /dev/sr0) using the MMC READ CD command over SG_IO.
type Transport struct {
	Device string

	f *os.File
}

// Open opens the underlying block device. It must be called before
// Read.
func (t *Transport) Open() error {
	f, err := os.OpenFile(t.Device, os.O_RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmc: open %s: %w", t.Device, err)
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

// Read implements [cdpregap.Transport] by issuing a single READ CD
// command covering blocks consecutive sectors starting at lsn.
func (t *Transport) Read(lsn cdpregap.LSN, blocks int, out []byte) error {
	if t.f == nil {
		return fmt.Errorf("mmc: device not open")
	}
	want := blocks * cdpregap.FrameLen
	if len(out) != want {
		return fmt.Errorf("mmc: buffer must be %d bytes, got %d", want, len(out))
	}

	cdb := buildReadCDCDB(lsn, blocks, cdpregap.FrameLen)
	sense := make([]byte, senseBufferLen)

	hdr := sgIOHeader{
		InterfaceID:    sgInterfaceIDS,
		DxferDirection: sgDxferFromDev,
		CmdLen:         uint8(len(cdb)),
		MxSbLen:        senseBufferLen,
		DxferLen:       uint32(want),
		Dxferp:         uint64(uintptr(unsafe.Pointer(&out[0]))),
		Cmdp:           uint64(uintptr(unsafe.Pointer(&cdb[0]))),
		Sbp:            uint64(uintptr(unsafe.Pointer(&sense[0]))),
		Timeout:        ioctlTimeoutMsec,
	}

	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, t.f.Fd(), sgIOIoctl, uintptr(unsafe.Pointer(&hdr))); errno != 0 {
		return fmt.Errorf("mmc: SG_IO at lsn %d: %w", lsn, errno)
	}
	if hdr.Status != 0 || hdr.HostStatus != 0 || hdr.DriverStatus != 0 {
		return fmt.Errorf("mmc: SG_IO at lsn %d failed: status=%d host=%d driver=%d",
			lsn, hdr.Status, hdr.HostStatus, hdr.DriverStatus)
	}
	return nil
}

// buildReadCDCDB constructs the 12-byte READ CD (0xBE) command
// descriptor block per MMC-3: sector type CD-DA, user data enabled,
// no header/sync/EDC-ECC/C2, sub-channel selection = formatted Q.
func buildReadCDCDB(lsn cdpregap.LSN, blocks int, _ int) []byte {
	cdb := make([]byte, 12)
	cdb[0] = readCDOpcode
	cdb[1] = cdDASectorType << 2
	cdb[2] = byte(lsn >> 24)
	cdb[3] = byte(lsn >> 16)
	cdb[4] = byte(lsn >> 8)
	cdb[5] = byte(lsn)
	cdb[6] = byte(blocks >> 16)
	cdb[7] = byte(blocks >> 8)
	cdb[8] = byte(blocks)
	cdb[9] = 0x10 // user data bit set, sync/header/EDC-ECC/C2 all off
	cdb[10] = subqSelectionQ
	cdb[11] = 0 // control
	return cdb
}
