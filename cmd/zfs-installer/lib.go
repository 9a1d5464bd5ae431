//go:build linux
// +build linux

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cloud-Foundations/zfs-installer/lib/blockdev"
	"github.com/Cloud-Foundations/zfs-installer/lib/fsutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/osutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
	"github.com/pin/tftp"
)

var tftpFiles = map[string]bool{ // If true, file is required.
	"config.json": true,
}

func makeRunner(chroot string, logger log.DebugLogger) osutil.Runner {
	return osutil.NewRunner(osutil.Params{
		Chroot: chroot,
		DryRun: *dryRun,
		Logger: logger,
	})
}

// resolveDisks parses the -disks flag and fills in device paths and sizes
// for the real disks, preferring stable /dev/disk/by-id names.
func resolveDisks(logger log.DebugLogger) ([]storage.Disk, error) {
	if len(disks) < 1 {
		return nil, errors.New("no -disks specified")
	}
	diskList, err := storage.ParseDiskSpecs(disks)
	if err != nil {
		return nil, err
	}
	params := blockdev.Params{
		SysfsDirectory: *sysfsDirectory,
		Logger:         logger,
	}
	drives, err := blockdev.ListDrives(params)
	if err != nil {
		return nil, err
	}
	for index := range diskList {
		disk := &diskList[index]
		if disk.IsMissing() {
			continue
		}
		drive, err := blockdev.FindDrive(drives, disk.Spec)
		if err != nil {
			return nil, err
		}
		device, err := blockdev.ResolveById(params, drive.DevicePath)
		if err != nil {
			return nil, err
		}
		disk.Device = device
		disk.Size = drive.Size
	}
	return diskList, nil
}

func makeStoragePlan(logger log.DebugLogger) (
	*storage.Plan, storage.Layout, error) {
	layout, err := getLayout()
	if err != nil {
		return nil, storage.Layout{}, err
	}
	diskList, err := resolveDisks(logger)
	if err != nil {
		return nil, storage.Layout{}, err
	}
	plan, err := storage.MakePlan(diskList, layout)
	if err != nil {
		return nil, storage.Layout{}, err
	}
	return plan, layout, nil
}

func loadTftpFiles(tftpServer string, logger log.DebugLogger) error {
	client, err := tftp.NewClient(tftpServer + ":69")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(*tftpDirectory, fsutil.DirPerms); err != nil {
		return err
	}
	for name, required := range tftpFiles {
		logger.Debugf(1, "downloading: %s\n", name)
		wt, err := client.Receive(name, "octet")
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") && !required {
				logger.Debugf(2, "error receiving: %s: %s\n", name, err)
				continue
			}
			return fmt.Errorf("error receiving: %s: %s", name, err)
		}
		filename := filepath.Join(*tftpDirectory, name)
		file, err := os.Create(filename)
		if err != nil {
			return err
		}
		if _, err := wt.WriteTo(file); err != nil {
			file.Close()
			return fmt.Errorf("error downloading: %s: %s", name, err)
		}
		file.Close()
		logger.Debugf(2, "downloaded: %s\n", name)
	}
	return nil
}
