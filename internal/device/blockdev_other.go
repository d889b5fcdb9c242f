//go:build !linux

package device

import (
	"fmt"
	"io"
	"os"
)

// Only Linux gets the O_DIRECT block-device path. Other platforms open the
// node as a synced file and probe the size by seeking, which is enough for
// disk images but gives no cache-bypass guarantee on a live device.
func openBlockDevice(path string, readOnly bool) (Device, error) {
	flag := os.O_RDWR | os.O_SYNC
	if readOnly {
		flag = os.O_RDONLY
	}
	file, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	size, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("probing size of %s: %w", path, err)
	}
	return &FileDevice{file: file, path: path, size: size}, nil
}
