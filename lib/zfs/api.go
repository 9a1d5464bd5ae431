// Package zfs drives the zpool and zfs command-line tools to build the
// pools and dataset hierarchy for a root-on-ZFS installation.
package zfs

import (
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/osutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
)

// CreateBootPool creates the boot pool with the reduced feature set that
// GRUB can read. Pool members listed in poolPlan are joined at the
// requested RAID level and the pool is mounted under altRoot.
func CreateBootPool(runner osutil.Runner, poolPlan storage.PoolPlan,
	altRoot string, logger log.DebugLogger) error {
	return createBootPool(runner, poolPlan, altRoot, logger)
}

// CreateMainPool creates the main pool holding the root filesystem,
// mounted under altRoot.
func CreateMainPool(runner osutil.Runner, poolPlan storage.PoolPlan,
	altRoot string, logger log.DebugLogger) error {
	return createMainPool(runner, poolPlan, altRoot, logger)
}

// CreateDatasets creates the boot environment and supporting datasets in
// the boot and main pools. The root dataset is mounted explicitly since it
// has canmount=noauto.
func CreateDatasets(runner osutil.Runner, bootPool, mainPool,
	bootEnvironment string, logger log.DebugLogger) error {
	return createDatasets(runner, bootPool, mainPool, bootEnvironment,
		logger)
}

// CreatePools creates the boot and main pools from plan and then offlines
// and removes the placeholder vdevs, leaving the pools degraded before any
// data is written to them.
func CreatePools(runner osutil.Runner, plan storage.Plan, altRoot string,
	logger log.DebugLogger) error {
	return createPools(runner, plan, altRoot, logger)
}

// SetBootFilesystem records the boot environment dataset in the bootfs
// property of the pool containing it.
func SetBootFilesystem(runner osutil.Runner, pool, dataset string) error {
	return runner.Run("zpool", "set", "bootfs="+dataset, pool)
}

// ExportPools exports the named pools, unmounting their datasets.
func ExportPools(runner osutil.Runner, pools ...string) error {
	return exportPools(runner, pools)
}

// ImportPools imports the named pools under altRoot without mounting
// datasets automatically.
func ImportPools(runner osutil.Runner, altRoot string,
	pools ...string) error {
	return importPools(runner, altRoot, pools)
}
