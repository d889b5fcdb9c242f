// Package device provides uncached, alignment-aware access to block devices
// and disk images. It is the only package in the tree that touches the OS.
package device

import (
	"fmt"
	"os"
	"unsafe"
)

// Device is the access port the validation engine runs against. Reads and
// writes are synchronous and bypass the OS page cache where the platform
// allows it: data accepted by WriteAt must be observable by an independent
// ReadAt issued afterwards, modulo any drive-internal cache.
//
// Offsets and buffer lengths must be multiples of Alignment when it is
// non-zero. A short read or short write is reported as an error, never as
// a truncated result.
type Device interface {
	// ReadAt fills p with the bytes stored at off.
	ReadAt(p []byte, off int64) error
	// WriteAt stores p at off.
	WriteAt(p []byte, off int64) error
	// Size returns the device capacity in bytes, as reported by the device.
	Size() int64
	// Alignment returns the required I/O alignment in bytes, or 0 when the
	// device accepts arbitrary offsets and lengths.
	Alignment() int64
	// Close releases the underlying handle.
	Close() error
}

// Error describes a failed read or write against a device. It wraps the
// underlying OS error and records where the operation was aimed.
type Error struct {
	Op     string // "read" or "write"
	Path   string
	Offset int64
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s at offset %d: %v", e.Op, e.Path, e.Offset, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Open opens the storage target at path. Block devices are opened with
// platform flags that bypass OS caching (and exclusively, when writable);
// regular files fall back to a synced file device so disk images can be
// tested the same way.
func Open(path string, readOnly bool) (Device, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if fi.Mode()&os.ModeDevice != 0 {
		return openBlockDevice(path, readOnly)
	}
	return OpenFileDevice(path, readOnly)
}

// AlignedBlock allocates a size-byte buffer whose backing array starts on
// an align-byte boundary, as required for O_DIRECT transfers. align must be
// a power of two (sector sizes always are); zero or negative align yields a
// plain allocation.
func AlignedBlock(size int, align int64) []byte {
	if align <= 0 || size == 0 {
		return make([]byte, size)
	}
	buf := make([]byte, size+int(align))
	shift := int(uintptr(unsafe.Pointer(&buf[0])) & uintptr(align-1))
	if shift != 0 {
		shift = int(align) - shift
	}
	return buf[shift : shift+size : shift+size]
}
