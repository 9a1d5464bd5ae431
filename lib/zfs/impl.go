package zfs

import (
	"os"

	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/osutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
)

func createBootPool(runner osutil.Runner, poolPlan storage.PoolPlan,
	altRoot string, logger log.DebugLogger) error {
	logger.Debugf(0, "creating boot pool: %s\n", poolPlan.Name)
	args := []string{"create", "-f",
		"-o", "ashift=12",
		"-o", "autotrim=on",
		"-o", "compatibility=grub2",
		"-o", "cachefile=/etc/zfs/zpool.cache",
		"-O", "devices=off",
		"-O", "acltype=posixacl",
		"-O", "xattr=sa",
		"-O", "compression=lz4",
		"-O", "normalization=formD",
		"-O", "relatime=on",
		"-O", "canmount=off",
		"-O", "mountpoint=/boot",
		"-R", altRoot,
		poolPlan.Name,
	}
	args = appendVdevs(args, poolPlan)
	return runner.Run("zpool", args...)
}

func createMainPool(runner osutil.Runner, poolPlan storage.PoolPlan,
	altRoot string, logger log.DebugLogger) error {
	logger.Debugf(0, "creating main pool: %s\n", poolPlan.Name)
	args := []string{"create", "-f",
		"-o", "ashift=12",
		"-o", "autotrim=on",
		"-O", "acltype=posixacl",
		"-O", "xattr=sa",
		"-O", "dnodesize=auto",
		"-O", "compression=lz4",
		"-O", "normalization=formD",
		"-O", "relatime=on",
		"-O", "canmount=off",
		"-O", "mountpoint=/",
		"-R", altRoot,
		poolPlan.Name,
	}
	args = appendVdevs(args, poolPlan)
	return runner.Run("zpool", args...)
}

func appendVdevs(args []string, poolPlan storage.PoolPlan) []string {
	switch poolPlan.RaidLevel {
	case storage.RaidMirror:
		args = append(args, "mirror")
	case storage.RaidZ1:
		args = append(args, "raidz1")
	case storage.RaidZ2:
		args = append(args, "raidz2")
	case storage.RaidZ3:
		args = append(args, "raidz3")
	}
	for _, member := range poolPlan.Members {
		args = append(args, member.Path)
	}
	return args
}

func createDatasets(runner osutil.Runner, bootPool, mainPool,
	bootEnvironment string, logger log.DebugLogger) error {
	logger.Debugf(0, "creating datasets for boot environment: %s\n",
		bootEnvironment)
	rootDataset := mainPool + "/ROOT/" + bootEnvironment
	type dataset struct {
		name    string
		options []string
	}
	datasets := []dataset{
		{mainPool + "/ROOT",
			[]string{"-o", "canmount=off", "-o", "mountpoint=none"}},
		{rootDataset,
			[]string{"-o", "canmount=noauto", "-o", "mountpoint=/"}},
	}
	for _, ds := range datasets {
		args := append([]string{"create"}, ds.options...)
		if err := runner.Run("zfs",
			append(args, ds.name)...); err != nil {
			return err
		}
	}
	// The root dataset has canmount=noauto so must be mounted by hand
	// before anything below it.
	if err := runner.Run("zfs", "mount", rootDataset); err != nil {
		return err
	}
	datasets = []dataset{
		{bootPool + "/BOOT",
			[]string{"-o", "canmount=off", "-o", "mountpoint=none"}},
		{bootPool + "/BOOT/" + bootEnvironment,
			[]string{"-o", "mountpoint=/boot"}},
		{mainPool + "/home", nil},
		{mainPool + "/var",
			[]string{"-o", "canmount=off"}},
		{mainPool + "/var/log", nil},
		{mainPool + "/var/spool", nil},
		{mainPool + "/docker",
			[]string{"-o", "mountpoint=/var/lib/docker"}},
	}
	for _, ds := range datasets {
		args := append([]string{"create"}, ds.options...)
		if err := runner.Run("zfs",
			append(args, ds.name)...); err != nil {
			return err
		}
	}
	return SetBootFilesystem(runner, mainPool, rootDataset)
}

func createPools(runner osutil.Runner, plan storage.Plan, altRoot string,
	logger log.DebugLogger) error {
	if err := createBootPool(runner, plan.BootPool, altRoot,
		logger); err != nil {
		return err
	}
	if err := createMainPool(runner, plan.MainPool, altRoot,
		logger); err != nil {
		return err
	}
	// Placeholders exist only to satisfy vdev counts at creation time.
	// They must come out before any data lands, else writes mirror into
	// the sparse files.
	return removePlaceholders(runner, plan.Placeholders, logger)
}

// removePlaceholders offlines each placeholder vdev, detaches it from the
// pool where the topology allows, and deletes the backing file. Pools with
// non-detachable placeholders are left running degraded.
func removePlaceholders(runner osutil.Runner,
	placeholders []storage.Placeholder, logger log.DebugLogger) error {
	for _, placeholder := range placeholders {
		logger.Debugf(0, "offlining placeholder: %s from pool: %s\n",
			placeholder.Path, placeholder.Pool)
		if err := runner.Run("zpool", "offline", placeholder.Pool,
			placeholder.Path); err != nil {
			return err
		}
		if placeholder.Detach {
			if err := runner.Run("zpool", "detach", placeholder.Pool,
				placeholder.Path); err != nil {
				return err
			}
		}
		err := os.Remove(placeholder.Path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

func exportPools(runner osutil.Runner, pools []string) error {
	for _, pool := range pools {
		if err := runner.Run("zpool", "export", pool); err != nil {
			return err
		}
	}
	return nil
}

func importPools(runner osutil.Runner, altRoot string,
	pools []string) error {
	for _, pool := range pools {
		err := runner.Run("zpool", "import", "-N", "-R", altRoot, pool)
		if err != nil {
			return err
		}
	}
	return nil
}
