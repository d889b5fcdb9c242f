package device

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempImage(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "image.bin")
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestFileDeviceReadWrite(t *testing.T) {
	path := writeTempImage(t, 8192)
	dev, err := OpenFileDevice(path, false)
	require.NoError(t, err)
	defer dev.Close()

	assert.Equal(t, int64(8192), dev.Size())
	assert.Zero(t, dev.Alignment())

	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	require.NoError(t, dev.WriteAt(payload, 4096))

	got := make([]byte, 4)
	require.NoError(t, dev.ReadAt(got, 4096))
	assert.Equal(t, payload, got)
}

func TestFileDeviceShortReadIsError(t *testing.T) {
	path := writeTempImage(t, 1024)
	dev, err := OpenFileDevice(path, false)
	require.NoError(t, err)
	defer dev.Close()

	buf := make([]byte, 512)
	err = dev.ReadAt(buf, 900)
	require.Error(t, err, "a read past the end must fail, not truncate")
	var devErr *Error
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, "read", devErr.Op)
	assert.Equal(t, int64(900), devErr.Offset)
}

func TestFileDeviceReadOnlyRejectsWrites(t *testing.T) {
	path := writeTempImage(t, 1024)
	dev, err := OpenFileDevice(path, true)
	require.NoError(t, err)
	defer dev.Close()

	err = dev.WriteAt([]byte{1}, 0)
	var devErr *Error
	require.ErrorAs(t, err, &devErr)
	assert.Equal(t, "write", devErr.Op)
}

func TestOpenDispatchesRegularFiles(t *testing.T) {
	path := writeTempImage(t, 2048)
	dev, err := Open(path, true)
	require.NoError(t, err)
	defer dev.Close()

	_, ok := dev.(*FileDevice)
	assert.True(t, ok, "regular files must open as FileDevice")
	assert.Equal(t, int64(2048), dev.Size())
}

func TestOpenMissingPath(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), true)
	assert.Error(t, err)
}

func TestAlignedBlock(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		align int64
	}{
		{name: "sector aligned", size: 4096, align: 512},
		{name: "page aligned", size: 4096, align: 4096},
		{name: "no alignment", size: 100, align: 0},
		{name: "size smaller than alignment", size: 512, align: 4096},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := AlignedBlock(tt.size, tt.align)
			require.Len(t, buf, tt.size)
			if tt.align > 0 {
				addr := uintptr(unsafe.Pointer(&buf[0]))
				assert.Zero(t, addr%uintptr(tt.align), "buffer start not aligned")
			}
		})
	}
}

func TestErrorFormatsAndUnwraps(t *testing.T) {
	cause := errors.New("input/output error")
	err := &Error{Op: "write", Path: "/dev/sdz", Offset: 123456, Err: cause}
	assert.Contains(t, err.Error(), "write /dev/sdz at offset 123456")
	assert.ErrorIs(t, err, cause)
}
