//go:build linux

package device

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// Probe collects identity and geometry information for the device at path
// from block-device ioctls and sysfs. Missing sysfs attributes are not an
// error; the corresponding fields stay empty.
func Probe(path string) (*Info, error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	info := &Info{Path: path}

	if st.Mode&unix.S_IFMT != unix.S_IFBLK {
		fi, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		info.Size = fi.Size()
		return info, nil
	}
	info.IsBlockDevice = true

	file, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	fd := int(file.Fd())
	if size, err := unix.IoctlGetInt(fd, unix.BLKGETSIZE64); err == nil {
		info.Size = int64(size)
	}
	if logical, err := unix.IoctlGetInt(fd, unix.BLKSSZGET); err == nil {
		info.LogicalBlockSize = int64(logical)
	}
	if physical, err := unix.IoctlGetInt(fd, unix.BLKPBSZGET); err == nil {
		info.PhysicalBlockSize = int64(physical)
	}

	sysPath, err := sysPathForRdev(st.Rdev)
	if err != nil {
		return info, nil
	}
	info.Vendor = readSysAttr(sysPath, "device/vendor")
	info.Model = readSysAttr(sysPath, "device/model")
	info.Serial = readSysAttr(sysPath, "device/serial")
	info.Revision = readSysAttr(sysPath, "device/rev")
	info.FirmwareRevision = readSysAttr(sysPath, "device/firmware_rev")
	info.Subsystems = subsystemChain(sysPath)

	for _, s := range info.Subsystems {
		if s == "usb" {
			fillUSBInfo(info, sysPath)
			break
		}
	}
	return info, nil
}

// sysPathForRdev resolves the /sys/dev/block/<major>:<minor> symlink for a
// device number to its canonical sysfs directory.
func sysPathForRdev(rdev uint64) (string, error) {
	major := (rdev >> 8) & 0xfff
	minor := (rdev & 0xff) | ((rdev >> 12) & 0xfff00)
	link := fmt.Sprintf("/sys/dev/block/%d:%d", major, minor)
	return filepath.EvalSymlinks(link)
}

// readSysAttr reads a sysfs attribute and trims whitespace. A missing or
// unreadable attribute yields "".
func readSysAttr(sysPath, attr string) string {
	data, err := os.ReadFile(filepath.Join(sysPath, attr))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// subsystemChain walks from the device's sysfs directory up to /sys,
// collecting the subsystem of every ancestor that has one. Consecutive
// duplicates are collapsed.
func subsystemChain(sysPath string) []string {
	var chain []string
	for dir := sysPath; filepath.Base(dir) != "sys" && dir != "/"; dir = filepath.Dir(dir) {
		target, err := os.Readlink(filepath.Join(dir, "subsystem"))
		if err != nil {
			continue
		}
		name := filepath.Base(target)
		if len(chain) == 0 || chain[len(chain)-1] != name {
			chain = append(chain, name)
		}
	}
	return chain
}

// fillUSBInfo walks the sysfs tree upwards looking for the usb-storage or
// uas driver; the parent of the driver's device directory carries the USB
// descriptor attributes.
func fillUSBInfo(info *Info, sysPath string) {
	for dir := sysPath; filepath.Base(dir) != "sys" && dir != "/"; dir = filepath.Dir(dir) {
		target, err := os.Readlink(filepath.Join(dir, "subsystem"))
		if err != nil || filepath.Base(target) != "usb" {
			continue
		}
		driverLink, err := os.Readlink(filepath.Join(dir, "driver"))
		if err != nil {
			continue
		}
		driver := filepath.Base(driverLink)
		if driver != "uas" && driver != "usb-storage" {
			continue
		}
		parent := filepath.Dir(dir)
		if _, err := os.Stat(filepath.Join(parent, "idVendor")); err != nil {
			continue
		}
		info.USBDriver = driver
		info.USBVendorID = readSysAttr(parent, "idVendor")
		info.USBProductID = readSysAttr(parent, "idProduct")
		info.USBManufacturer = readSysAttr(parent, "manufacturer")
		info.USBProduct = readSysAttr(parent, "product")
		info.USBSerialNumber = readSysAttr(parent, "serial")
		info.USBVersion = readSysAttr(parent, "version")
		info.USBSpeed = readSysAttr(parent, "speed")
		return
	}
}
