// Package mmc implements [github.com/rabidaudio/cdpregap.Transport]
// for Linux by issuing an MMC
// READ CD command (opcode 0xBE) through the SCSI generic SG_IO ioctl,
// with sector type CD-DA, user data enabled, and sub-channel
// selection set to Q, per MMC-3.
//
// This talks to the block device file this package opens itself; it
// does not reach into another CD-I/O library's private handle to find
// a file descriptor it didn't open.
package mmc
