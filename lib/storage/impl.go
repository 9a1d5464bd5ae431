package storage

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// GPT overhead and alignment padding: 1 MiB before the first
	// partition, plus 1 MiB of slack for the secondary GPT and rounding.
	diskOverhead = 2 << 20

	minimumBootPartitionSize = 1 << 20
)

func parseDiskSpecs(specs []string) ([]Disk, error) {
	if len(specs) < 1 {
		return nil, fmt.Errorf("no disks specified")
	}
	disks := make([]Disk, 0, len(specs))
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		switch {
		case spec == MissingDisk:
			disks = append(disks, Disk{Spec: spec})
		case strings.HasPrefix(spec, "/dev/"):
			disks = append(disks, Disk{Spec: spec})
		case spec == "":
			return nil, fmt.Errorf("empty disk specification")
		default:
			return nil, fmt.Errorf(
				"invalid disk specification: %s: must be a /dev path or %q",
				spec, MissingDisk)
		}
	}
	return disks, nil
}

func partitionDevice(device string, number int) string {
	suffix := strconv.FormatInt(int64(number), 10)
	base := filepath.Base(device)
	if strings.HasPrefix(device, "/dev/disk/") {
		return device + "-part" + suffix
	}
	if len(base) > 0 && base[len(base)-1] >= '0' && base[len(base)-1] <= '9' {
		return device + "p" + suffix
	}
	return device + suffix
}

func makePlan(disks []Disk, layout Layout) (*Plan, error) {
	if err := validate(disks, layout); err != nil {
		return nil, err
	}
	plan := &Plan{
		BootPool: PoolPlan{Name: layout.BootPoolName, RaidLevel: RaidMirror},
		MainPool: PoolPlan{Name: layout.MainPoolName,
			RaidLevel: layout.RaidLevel},
	}
	if len(disks) < 2 {
		plan.BootPool.RaidLevel = RaidStripe
	}
	mainPartitionSize, err := computeMainPartitionSize(disks, layout)
	if err != nil {
		return nil, err
	}
	for index, disk := range disks {
		if disk.IsMissing() {
			bootFile := placeholderPath(layout, layout.BootPoolName, index)
			mainFile := placeholderPath(layout, layout.MainPoolName, index)
			plan.Placeholders = append(plan.Placeholders,
				Placeholder{
					Path:   bootFile,
					Pool:   layout.BootPoolName,
					Size:   layout.BootPartitionSize,
					Detach: true,
				},
				Placeholder{
					Path:   mainFile,
					Pool:   layout.MainPoolName,
					Size:   mainPartitionSize,
					Detach: layout.RaidLevel == RaidMirror,
				})
			plan.BootPool.Members = append(plan.BootPool.Members,
				Member{Path: bootFile, Placeholder: true})
			plan.MainPool.Members = append(plan.MainPool.Members,
				Member{Path: mainFile, Placeholder: true})
			continue
		}
		diskPlan := makeDiskPlan(disk, layout)
		plan.Disks = append(plan.Disks, diskPlan)
		plan.BootPool.Members = append(plan.BootPool.Members,
			Member{Path: PartitionDevice(disk.Device,
				diskPlan.BootPartition)})
		plan.MainPool.Members = append(plan.MainPool.Members,
			Member{Path: PartitionDevice(disk.Device,
				diskPlan.MainPartition)})
	}
	return plan, nil
}

func computeMainPartitionSize(disks []Disk, layout Layout) (uint64, error) {
	if layout.MainPartitionSize > 0 {
		for _, disk := range disks {
			if disk.IsMissing() {
				continue
			}
			if fixedOverhead(layout)+layout.MainPartitionSize > disk.Size {
				return 0, fmt.Errorf(
					"disk: %s too small: %d bytes for main partition: %d",
					disk.Device, disk.Size, layout.MainPartitionSize)
			}
		}
		return layout.MainPartitionSize, nil
	}
	// The remainder of the smallest real disk bounds the size of a
	// placeholder, so that a later replacement disk of the same geometry
	// as any real disk can resilver into the slot.
	var minimum uint64
	for _, disk := range disks {
		if disk.IsMissing() {
			continue
		}
		overhead := fixedOverhead(layout)
		if overhead >= disk.Size {
			return 0, fmt.Errorf("disk: %s too small: %d bytes",
				disk.Device, disk.Size)
		}
		remainder := disk.Size - overhead
		if minimum == 0 || remainder < minimum {
			minimum = remainder
		}
	}
	return minimum, nil
}

func fixedOverhead(layout Layout) uint64 {
	overhead := uint64(diskOverhead) + layout.BootPartitionSize +
		layout.SwapSize
	if layout.BootMode == BootModeEfi {
		overhead += layout.EfiPartitionSize
	} else {
		overhead += 1 << 20 // BIOS boot partition.
	}
	return overhead
}

func makeDiskPlan(disk Disk, layout Layout) DiskPlan {
	diskPlan := DiskPlan{Device: disk.Device}
	number := 1
	if layout.BootMode == BootModeEfi {
		diskPlan.Partitions = append(diskPlan.Partitions, Partition{
			Label:    "EFI system partition",
			Number:   number,
			Size:     layout.EfiPartitionSize,
			TypeCode: TypeCodeEfi,
		})
		diskPlan.EfiPartition = number
	} else {
		diskPlan.Partitions = append(diskPlan.Partitions, Partition{
			Label:    "BIOS boot partition",
			Number:   number,
			Size:     1 << 20,
			TypeCode: TypeCodeBiosBoot,
		})
	}
	number++
	diskPlan.Partitions = append(diskPlan.Partitions, Partition{
		Label:    layout.BootPoolName,
		Number:   number,
		Size:     layout.BootPartitionSize,
		TypeCode: TypeCodeZfs,
	})
	diskPlan.BootPartition = number
	number++
	if layout.SwapSize > 0 {
		diskPlan.Partitions = append(diskPlan.Partitions, Partition{
			Label:    "swap",
			Number:   number,
			Size:     layout.SwapSize,
			TypeCode: TypeCodeSwap,
		})
		diskPlan.SwapPartition = number
		number++
	}
	diskPlan.Partitions = append(diskPlan.Partitions, Partition{
		Label:    layout.MainPoolName,
		Number:   number,
		Size:     layout.MainPartitionSize,
		TypeCode: TypeCodeZfs,
	})
	diskPlan.MainPartition = number
	return diskPlan
}

func placeholderPath(layout Layout, pool string, index int) string {
	return filepath.Join(layout.PlaceholderDirectory,
		fmt.Sprintf("%s-missing-%d.img", pool, index))
}

func validate(disks []Disk, layout Layout) error {
	if len(disks) < 1 {
		return fmt.Errorf("no disks specified")
	}
	numReal := 0
	for _, disk := range disks {
		if disk.IsMissing() {
			continue
		}
		numReal++
		if disk.Device == "" {
			return fmt.Errorf("unresolved device for disk: %s", disk.Spec)
		}
		if disk.Size < 1 {
			return fmt.Errorf("unknown size for disk: %s", disk.Device)
		}
	}
	if numReal < 1 {
		return fmt.Errorf("all %d disks are missing", len(disks))
	}
	if numReal < len(disks) && layout.RaidLevel == RaidStripe {
		return fmt.Errorf("striped pools cannot have missing disks")
	}
	if minimum := layout.RaidLevel.MinimumMembers(); len(disks) < minimum {
		return fmt.Errorf("%s requires at least %d disks, have: %d",
			layout.RaidLevel, minimum, len(disks))
	}
	switch layout.RaidLevel {
	case RaidStripe, RaidMirror, RaidZ1, RaidZ2, RaidZ3:
	default:
		return fmt.Errorf("invalid RAID level: %s", layout.RaidLevel)
	}
	if layout.BootPoolName == "" || layout.MainPoolName == "" {
		return fmt.Errorf("pool names must be specified")
	}
	if layout.BootPoolName == layout.MainPoolName {
		return fmt.Errorf("pool names must differ")
	}
	if layout.BootPartitionSize < minimumBootPartitionSize {
		return fmt.Errorf("boot partition too small: %d",
			layout.BootPartitionSize)
	}
	if layout.BootMode == BootModeEfi && layout.EfiPartitionSize < 1<<20 {
		return fmt.Errorf("EFI partition too small: %d",
			layout.EfiPartitionSize)
	}
	if layout.PlaceholderDirectory == "" {
		return fmt.Errorf("no placeholder directory specified")
	}
	return nil
}

func (level *RaidLevel) set(value string) error {
	switch RaidLevel(value) {
	case RaidStripe, RaidMirror, RaidZ1, RaidZ2, RaidZ3:
		*level = RaidLevel(value)
		return nil
	case RaidLevel("stripe"):
		*level = RaidStripe
		return nil
	case RaidLevel("raidz"):
		*level = RaidZ1
		return nil
	}
	return fmt.Errorf("invalid RAID level: %s", value)
}
