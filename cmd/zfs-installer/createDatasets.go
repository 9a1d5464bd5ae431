//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/zfs"
)

func createDatasetsSubcommand(args []string, logger log.DebugLogger) error {
	if err := createDatasetsCmd(logger); err != nil {
		return fmt.Errorf("error creating datasets: %s", err)
	}
	return nil
}

func createDatasetsCmd(logger log.DebugLogger) error {
	if err := loadConfiguration(logger); err != nil {
		return err
	}
	return zfs.CreateDatasets(makeRunner("", logger), *bootPool, *mainPool,
		*bootEnvironment, logger)
}
