// Package blockdev discovers fixed drives through sysfs and resolves
// stable /dev/disk/by-id names for them.
package blockdev

import (
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

// Drive describes a fixed (non-removable) drive.
type Drive struct {
	BusLocation string // Physical bus location, used for stable sorting.
	DevicePath  string // Kernel device node, such as /dev/sda.
	Name        string // Kernel name, such as sda.
	Size        uint64 // Size in bytes.
}

type Params struct {
	// ByIdDirectory gives the directory of stable device symlinks.
	// The default is /dev/disk/by-id.
	ByIdDirectory string

	// DevDirectory gives the directory of device nodes. The default is
	// /dev.
	DevDirectory string

	// SysfsDirectory gives the mount point of sysfs. The default is /sys.
	SysfsDirectory string

	Logger log.DebugLogger
}

// ListDrives scans sysfs for fixed drives, skipping partitions, virtual
// devices and removable media. Drives are sorted by bus location so the
// list is stable across boots.
func ListDrives(params Params) ([]*Drive, error) {
	params.setDefaults()
	return listDrives(params)
}

// FindDrive returns the drive whose device path or kernel name matches
// device.
func FindDrive(drives []*Drive, device string) (*Drive, error) {
	return findDrive(drives, device)
}

// ResolveById returns the /dev/disk/by-id symlink for the given device
// node, preferring hardware identity names over WWN aliases. If no symlink
// is found the device node is returned unchanged.
func ResolveById(params Params, devicePath string) (string, error) {
	params.setDefaults()
	return resolveById(params, devicePath)
}
