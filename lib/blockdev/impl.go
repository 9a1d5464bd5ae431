package blockdev

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Symlink prefixes naming hardware identity, in order of preference.
// WWN and EUI aliases are skipped: they duplicate these and are harder
// for a human to map to a physical drive.
var preferredIdPrefixes = []string{
	"ata-", "scsi-", "nvme-", "virtio-", "usb-",
}

func (params *Params) setDefaults() {
	if params.ByIdDirectory == "" {
		params.ByIdDirectory = "/dev/disk/by-id"
	}
	if params.DevDirectory == "" {
		params.DevDirectory = "/dev"
	}
	if params.SysfsDirectory == "" {
		params.SysfsDirectory = "/sys"
	}
}

func listDrives(params Params) ([]*Drive, error) {
	logger := params.Logger
	basedir := filepath.Join(params.SysfsDirectory, "class", "block")
	file, err := os.Open(basedir)
	if err != nil {
		return nil, err
	}
	names, err := file.Readdirnames(-1)
	file.Close()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	var drives []*Drive
	for _, name := range names {
		dirname := filepath.Join(basedir, name)
		if _, err := os.Stat(filepath.Join(dirname, "partition")); err == nil {
			logger.Debugf(2, "skipping partition: %s\n", name)
			continue
		}
		if _, err := os.Stat(filepath.Join(dirname, "device")); err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			logger.Debugf(2, "skipping non-device: %s\n", name)
			continue
		}
		if v, err := readInt(filepath.Join(dirname, "removable")); err != nil {
			return nil, err
		} else if v != 0 {
			logger.Debugf(2, "skipping removable device: %s\n", name)
			continue
		}
		busLocation, err := os.Readlink(dirname)
		if err != nil {
			logger.Println(err)
			continue
		}
		if splitLink := strings.Split(busLocation, "/"); len(splitLink) > 5 {
			busLocation = filepath.Join(splitLink[3 : len(splitLink)-2]...)
		}
		size, err := readInt(filepath.Join(dirname, "size"))
		if err != nil {
			return nil, err
		}
		logger.Debugf(1, "found: %s %d GiB (%d GB) at %s\n",
			name, size>>21, size<<9/1000000000, busLocation)
		drives = append(drives, &Drive{
			BusLocation: busLocation,
			DevicePath:  filepath.Join(params.DevDirectory, name),
			Name:        name,
			Size:        size << 9,
		})
	}
	if len(drives) < 1 {
		return nil, fmt.Errorf("no drives found")
	}
	// Sort drives based on their bus location. This is a cheap attempt at
	// stable naming.
	sort.SliceStable(drives, func(left, right int) bool {
		return drives[left].BusLocation < drives[right].BusLocation
	})
	return drives, nil
}

func findDrive(drives []*Drive, device string) (*Drive, error) {
	name := filepath.Base(device)
	for _, drive := range drives {
		if drive.DevicePath == device || drive.Name == name {
			return drive, nil
		}
	}
	return nil, fmt.Errorf("drive not found: %s", device)
}

func resolveById(params Params, devicePath string) (string, error) {
	file, err := os.Open(params.ByIdDirectory)
	if err != nil {
		if os.IsNotExist(err) {
			return devicePath, nil
		}
		return "", err
	}
	names, err := file.Readdirnames(-1)
	file.Close()
	if err != nil {
		return "", err
	}
	sort.Strings(names)
	target := filepath.Base(devicePath)
	best := ""
	bestRank := len(preferredIdPrefixes)
	for _, name := range names {
		linkTarget, err := os.Readlink(
			filepath.Join(params.ByIdDirectory, name))
		if err != nil {
			continue
		}
		if filepath.Base(linkTarget) != target {
			continue
		}
		for rank, prefix := range preferredIdPrefixes {
			if strings.HasPrefix(name, prefix) && rank < bestRank {
				best = name
				bestRank = rank
				break
			}
		}
	}
	if best == "" {
		return devicePath, nil
	}
	return filepath.Join(params.ByIdDirectory, best), nil
}

func readInt(filename string) (uint64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	var value uint64
	if _, err := fmt.Fscanf(file, "%d", &value); err != nil {
		return 0, err
	}
	return value, nil
}
