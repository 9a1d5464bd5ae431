//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

func partitionDisksSubcommand(args []string, logger log.DebugLogger) error {
	if err := partitionDisksCmd(logger); err != nil {
		return fmt.Errorf("error partitioning disks: %s", err)
	}
	return nil
}

func partitionDisksCmd(logger log.DebugLogger) error {
	if err := loadConfiguration(logger); err != nil {
		return err
	}
	plan, _, err := makeStoragePlan(logger)
	if err != nil {
		return err
	}
	return partitionDisks(makeRunner("", logger), plan, logger)
}
