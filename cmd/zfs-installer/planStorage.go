//go:build linux
// +build linux

package main

import (
	"fmt"
	"os"

	"github.com/Cloud-Foundations/zfs-installer/lib/json"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

func planStorageSubcommand(args []string, logger log.DebugLogger) error {
	if err := planStorageCmd(logger); err != nil {
		return fmt.Errorf("error planning storage: %s", err)
	}
	return nil
}

func planStorageCmd(logger log.DebugLogger) error {
	if err := loadConfiguration(logger); err != nil {
		return err
	}
	plan, _, err := makeStoragePlan(logger)
	if err != nil {
		return err
	}
	return json.WriteWithIndent(os.Stdout, "    ", plan)
}
