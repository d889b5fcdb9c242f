//go:build linux

package device

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// BlockDevice accesses a Linux block device with O_DIRECT|O_SYNC so every
// read and write goes to the drive instead of the page cache. Writable
// opens add O_EXCL, which on block devices fails if the device is mounted
// or otherwise claimed.
type BlockDevice struct {
	file        *os.File
	path        string
	size        int64
	logicalSec  int64
	physicalSec int64
}

func openBlockDevice(path string, readOnly bool) (*BlockDevice, error) {
	flag := unix.O_DIRECT | unix.O_SYNC
	if readOnly {
		flag |= unix.O_RDONLY
	} else {
		flag |= unix.O_RDWR | unix.O_EXCL
	}
	file, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	fd := int(file.Fd())
	size, err := unix.IoctlGetInt(fd, unix.BLKGETSIZE64)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("BLKGETSIZE64 on %s: %w", path, err)
	}
	logical, err := unix.IoctlGetInt(fd, unix.BLKSSZGET)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("BLKSSZGET on %s: %w", path, err)
	}
	physical, err := unix.IoctlGetInt(fd, unix.BLKPBSZGET)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("BLKPBSZGET on %s: %w", path, err)
	}

	return &BlockDevice{
		file:        file,
		path:        path,
		size:        int64(size),
		logicalSec:  int64(logical),
		physicalSec: int64(physical),
	}, nil
}

func (d *BlockDevice) ReadAt(p []byte, off int64) error {
	n, err := d.file.ReadAt(p, off)
	if err != nil {
		return &Error{Op: "read", Path: d.path, Offset: off, Err: err}
	}
	if n != len(p) {
		return &Error{Op: "read", Path: d.path, Offset: off, Err: io.ErrUnexpectedEOF}
	}
	return nil
}

func (d *BlockDevice) WriteAt(p []byte, off int64) error {
	n, err := d.file.WriteAt(p, off)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &Error{Op: "write", Path: d.path, Offset: off, Err: err}
	}
	return nil
}

func (d *BlockDevice) Size() int64 {
	return d.size
}

// Alignment returns the stricter of the logical and physical sector sizes.
// O_DIRECT transfers must be aligned to it, both the device offset and the
// memory buffer (see AlignedBlock).
func (d *BlockDevice) Alignment() int64 {
	if d.physicalSec > d.logicalSec {
		return d.physicalSec
	}
	return d.logicalSec
}

// SectorSizes returns the logical and physical sector sizes in bytes.
func (d *BlockDevice) SectorSizes() (logical, physical int64) {
	return d.logicalSec, d.physicalSec
}

func (d *BlockDevice) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
