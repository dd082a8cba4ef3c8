// Package darwin implements [github.com/rabidaudio/cdpregap.Transport]
// for macOS by issuing the DKIOCCDREAD disk ioctl with sector area
// user-data + Q subchannel and sector type CD-DA.
//
// This package opens the block device itself with os.OpenFile and
// ioctls that file descriptor directly. It never reaches into a
// CD-I/O library's private env struct to recover a file descriptor it
// didn't open.
package darwin
