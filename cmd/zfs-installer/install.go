//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"

	"github.com/Cloud-Foundations/zfs-installer/lib/bootstrap"
	"github.com/Cloud-Foundations/zfs-installer/lib/concurrent"
	"github.com/Cloud-Foundations/zfs-installer/lib/fsutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/osutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/partition"
	"github.com/Cloud-Foundations/zfs-installer/lib/sshkeys"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
	"github.com/Cloud-Foundations/zfs-installer/lib/zfs"
)

func installSubcommand(args []string, logger log.DebugLogger) error {
	if err := install(nil, logger); err != nil {
		return fmt.Errorf("error installing: %s", err)
	}
	return nil
}

func install(logFlusher flusher, logger log.DebugLogger) error {
	if *tftpServerHostname != "" {
		if err := loadTftpFiles(*tftpServerHostname, logger); err != nil {
			logger.Printf("error loading configuration from TFTP: %s\n",
				err)
		}
	}
	if err := loadConfiguration(logger); err != nil {
		return err
	}
	plan, layout, err := makeStoragePlan(logger)
	if err != nil {
		return err
	}
	runner := makeRunner("", logger)
	if err := partitionDisks(runner, plan, logger); err != nil {
		return err
	}
	if err := createPools(runner, plan, logger); err != nil {
		return err
	}
	err = zfs.CreateDatasets(runner, layout.BootPoolName,
		layout.MainPoolName, *bootEnvironment, logger)
	if err != nil {
		return err
	}
	bootstrapParams := makeBootstrapParams(logger)
	if err := bootstrap.Bootstrap(runner, bootstrapParams); err != nil {
		return err
	}
	if err := bootstrap.CopyConfiguration(bootstrapParams); err != nil {
		return err
	}
	if !*skipNetwork {
		if err := configureTargetNetwork(runner, logger); err != nil {
			return err
		}
	}
	if !*dryRun {
		err := sshkeys.GenerateHostKeys(*mountPoint, logger)
		if err != nil {
			return err
		}
		err = sshkeys.InstallAuthorizedKeys(*mountPoint, logger)
		if err != nil {
			return err
		}
	}
	if err := bootstrap.MakeBindMounts(bootstrapParams); err != nil {
		return err
	}
	chrootRunner := makeRunner(*mountPoint, logger)
	err = bootstrap.TargetSetup(chrootRunner, bootstrapParams, plan, layout)
	if err != nil {
		return err
	}
	if err := bootstrap.RemoveBindMounts(bootstrapParams); err != nil {
		return err
	}
	logger.Println("installation completed, copying logs and exporting")
	if logFlusher != nil {
		if err := copyLogs(logFlusher); err != nil {
			return fmt.Errorf("error copying logs: %s", err)
		}
	}
	return zfs.ExportPools(runner, layout.BootPoolName,
		layout.MainPoolName)
}

func partitionDisks(runner osutil.Runner, plan *storage.Plan,
	logger log.DebugLogger) error {
	state := concurrent.NewState(0)
	for _, diskPlan := range plan.Disks {
		diskPlan := diskPlan
		err := state.GoRun(func() error {
			return partition.PartitionDisk(runner, diskPlan, logger)
		})
		if err != nil {
			state.Reap()
			return err
		}
	}
	if err := state.Reap(); err != nil {
		return err
	}
	if *dryRun {
		return nil
	}
	for _, diskPlan := range plan.Disks {
		if err := partition.WaitForPartitions(diskPlan, logger); err != nil {
			return err
		}
	}
	return nil
}

func createPools(runner osutil.Runner, plan *storage.Plan,
	logger log.DebugLogger) error {
	if err := makePlaceholderFiles(plan, logger); err != nil {
		return err
	}
	return zfs.CreatePools(runner, *plan, *mountPoint, logger)
}

func makePlaceholderFiles(plan *storage.Plan,
	logger log.DebugLogger) error {
	if len(plan.Placeholders) < 1 {
		return nil
	}
	if *dryRun {
		logger.Debugln(0, "dry run: skipping placeholder files")
		return nil
	}
	err := os.MkdirAll(*placeholderDirectory, fsutil.DirPerms)
	if err != nil {
		return err
	}
	for _, placeholder := range plan.Placeholders {
		err := fsutil.MakeSparseFile(placeholder.Path, placeholder.Size,
			fsutil.PrivateFilePerms)
		if err != nil {
			return err
		}
		logger.Debugf(1, "made placeholder: %s (%d bytes)\n",
			placeholder.Path, placeholder.Size)
	}
	return nil
}
