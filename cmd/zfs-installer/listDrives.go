//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/Cloud-Foundations/zfs-installer/lib/blockdev"
	"github.com/Cloud-Foundations/zfs-installer/lib/format"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

func listDrivesSubcommand(args []string, logger log.DebugLogger) error {
	if err := listDrivesCmd(logger); err != nil {
		return fmt.Errorf("error listing drives: %s", err)
	}
	return nil
}

func listDrivesCmd(logger log.DebugLogger) error {
	params := blockdev.Params{
		SysfsDirectory: *sysfsDirectory,
		Logger:         logger,
	}
	drives, err := blockdev.ListDrives(params)
	if err != nil {
		return err
	}
	for _, drive := range drives {
		byId, err := blockdev.ResolveById(params, drive.DevicePath)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s %s\n", drive.DevicePath,
			format.FormatBytes(drive.Size), byId)
	}
	return nil
}
