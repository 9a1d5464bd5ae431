package partition

import (
	"fmt"
	"time"

	"github.com/Cloud-Foundations/zfs-installer/lib/fsutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/osutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
)

const waitTimeout = 10 * time.Second

func partitionDisk(runner osutil.Runner, diskPlan storage.DiskPlan,
	logger log.DebugLogger) error {
	logger.Debugf(0, "partitioning: %s\n", diskPlan.Device)
	if err := runner.Run("sgdisk", "--zap-all", diskPlan.Device); err != nil {
		return err
	}
	args := make([]string, 0, len(diskPlan.Partitions)*6+1)
	for _, part := range diskPlan.Partitions {
		args = append(args,
			"-n", fmt.Sprintf("%d:0:%s", part.Number, sizeArg(part.Size)),
			"-t", fmt.Sprintf("%d:%s", part.Number, part.TypeCode),
			"-c", fmt.Sprintf("%d:%s", part.Number, part.Label))
	}
	args = append(args, diskPlan.Device)
	if err := runner.Run("sgdisk", args...); err != nil {
		return err
	}
	return runner.Run("partprobe", diskPlan.Device)
}

// sizeArg converts a partition size in bytes to an sgdisk relative end
// position. A zero size extends the partition to the end of the disk.
func sizeArg(size uint64) string {
	if size < 1 {
		return "0"
	}
	return fmt.Sprintf("+%dM", size>>20)
}

func waitForPartitions(diskPlan storage.DiskPlan,
	logger log.DebugLogger) error {
	for _, part := range diskPlan.Partitions {
		device := storage.PartitionDevice(diskPlan.Device, part.Number)
		retries, sleeps, err := fsutil.WaitForBlockAvailable(device,
			waitTimeout)
		if err != nil {
			return fmt.Errorf("timed out waiting for: %s: %s", device, err)
		}
		if retries > 0 {
			logger.Debugf(1, "%s available after %d retries, %d sleeps\n",
				device, retries, sleeps)
		}
	}
	return nil
}
