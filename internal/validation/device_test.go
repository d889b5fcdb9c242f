package validation

import (
	"io"

	"github.com/deploymenttheory/go-drivecap/internal/device"
)

// fakeDevice is an in-memory Device with fault injection hooks. It keeps
// per-call counters so tests can assert how the engine drove it.
type fakeDevice struct {
	data  []byte
	align int64

	// dropWritesBeyond, when positive, silently discards writes at or
	// past that offset, imitating a counterfeit drive with less physical
	// storage than it advertises.
	dropWritesBeyond int64

	// readErr and writeErr, when non-nil, may fail an individual call.
	// call counts from 1 within each kind.
	readErr  func(off int64, call int) error
	writeErr func(off int64, call int) error

	// onWrite runs after a successful write, letting tests corrupt the
	// stored bytes before the engine reads them back.
	onWrite func(off int64)

	reads  int
	writes int
	closed bool
}

var _ device.Device = (*fakeDevice)(nil)

func newFakeDevice(size int64) *fakeDevice {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return &fakeDevice{data: data}
}

func (d *fakeDevice) ReadAt(p []byte, off int64) error {
	d.reads++
	if d.readErr != nil {
		if err := d.readErr(off, d.reads); err != nil {
			return &device.Error{Op: "read", Path: "fake", Offset: off, Err: err}
		}
	}
	if off < 0 || off+int64(len(p)) > int64(len(d.data)) {
		return &device.Error{Op: "read", Path: "fake", Offset: off, Err: io.ErrUnexpectedEOF}
	}
	copy(p, d.data[off:])
	return nil
}

func (d *fakeDevice) WriteAt(p []byte, off int64) error {
	d.writes++
	if d.writeErr != nil {
		if err := d.writeErr(off, d.writes); err != nil {
			return &device.Error{Op: "write", Path: "fake", Offset: off, Err: err}
		}
	}
	if off < 0 || off+int64(len(p)) > int64(len(d.data)) {
		return &device.Error{Op: "write", Path: "fake", Offset: off, Err: io.ErrShortWrite}
	}
	if d.dropWritesBeyond > 0 && off >= d.dropWritesBeyond {
		// Pretend success, store nothing.
		return nil
	}
	copy(d.data[off:], p)
	if d.onWrite != nil {
		d.onWrite(off)
	}
	return nil
}

func (d *fakeDevice) Size() int64 {
	return int64(len(d.data))
}

func (d *fakeDevice) Alignment() int64 {
	return d.align
}

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}
