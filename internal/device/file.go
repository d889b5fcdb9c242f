package device

import (
	"fmt"
	"io"
	"os"
)

// FileDevice adapts a regular file (typically a disk image) to the Device
// interface. Writes are followed by fsync so the durability contract holds
// without O_DIRECT, which most filesystems do not support for plain files.
type FileDevice struct {
	file *os.File
	path string
	size int64
}

// OpenFileDevice opens a disk image at path.
func OpenFileDevice(path string, readOnly bool) (*FileDevice, error) {
	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}
	file, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("opening image %s: %w", path, err)
	}
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat image %s: %w", path, err)
	}
	return &FileDevice{file: file, path: path, size: fi.Size()}, nil
}

func (d *FileDevice) ReadAt(p []byte, off int64) error {
	n, err := d.file.ReadAt(p, off)
	if err != nil {
		return &Error{Op: "read", Path: d.path, Offset: off, Err: err}
	}
	if n != len(p) {
		return &Error{Op: "read", Path: d.path, Offset: off, Err: io.ErrUnexpectedEOF}
	}
	return nil
}

func (d *FileDevice) WriteAt(p []byte, off int64) error {
	n, err := d.file.WriteAt(p, off)
	if err == nil && n != len(p) {
		err = io.ErrShortWrite
	}
	if err == nil {
		err = d.file.Sync()
	}
	if err != nil {
		return &Error{Op: "write", Path: d.path, Offset: off, Err: err}
	}
	return nil
}

func (d *FileDevice) Size() int64 {
	return d.size
}

// Alignment is zero for regular files; the kernel handles any offset.
func (d *FileDevice) Alignment() int64 {
	return 0
}

func (d *FileDevice) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
