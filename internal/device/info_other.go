//go:build !linux

package device

import (
	"fmt"
	"os"
)

// Probe returns what little can be learned without sysfs: the path and,
// for regular files, the size.
func Probe(path string) (*Info, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	info := &Info{Path: path}
	if fi.Mode()&os.ModeDevice != 0 {
		info.IsBlockDevice = true
	} else {
		info.Size = fi.Size()
	}
	return info, nil
}
