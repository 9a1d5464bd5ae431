//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

func createPoolsSubcommand(args []string, logger log.DebugLogger) error {
	if err := createPoolsCmd(logger); err != nil {
		return fmt.Errorf("error creating pools: %s", err)
	}
	return nil
}

func createPoolsCmd(logger log.DebugLogger) error {
	if err := loadConfiguration(logger); err != nil {
		return err
	}
	plan, _, err := makeStoragePlan(logger)
	if err != nil {
		return err
	}
	return createPools(makeRunner("", logger), plan, logger)
}
