// Package partition writes GPT partition tables using sgdisk.
package partition

import (
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/osutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
)

// PartitionDisk zaps the partition table of the disk described by diskPlan
// and creates the planned partitions. The kernel is told to re-read the
// partition table afterwards.
func PartitionDisk(runner osutil.Runner, diskPlan storage.DiskPlan,
	logger log.DebugLogger) error {
	return partitionDisk(runner, diskPlan, logger)
}

// WaitForPartitions waits until the device nodes for the planned partitions
// appear, giving up after a timeout.
func WaitForPartitions(diskPlan storage.DiskPlan,
	logger log.DebugLogger) error {
	return waitForPartitions(diskPlan, logger)
}
