//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/Cloud-Foundations/zfs-installer/lib/bootstrap"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/zfs"
)

func makeBootstrapParams(logger log.DebugLogger) bootstrap.Params {
	return bootstrap.Params{
		DryRun:          *dryRun,
		IncludePackages: includePackages,
		Mirror:          *mirror,
		Suite:           *suite,
		TargetRoot:      *mountPoint,
		Logger:          logger,
	}
}

func bootstrapSubcommand(args []string, logger log.DebugLogger) error {
	if err := loadConfiguration(logger); err != nil {
		return err
	}
	err := bootstrap.Bootstrap(makeRunner("", logger),
		makeBootstrapParams(logger))
	if err != nil {
		return fmt.Errorf("error bootstrapping: %s", err)
	}
	return nil
}

func copyConfigurationSubcommand(args []string,
	logger log.DebugLogger) error {
	err := bootstrap.CopyConfiguration(makeBootstrapParams(logger))
	if err != nil {
		return fmt.Errorf("error copying configuration: %s", err)
	}
	return nil
}

func targetSetupSubcommand(args []string, logger log.DebugLogger) error {
	if err := targetSetupCmd(logger); err != nil {
		return fmt.Errorf("error setting up target: %s", err)
	}
	return nil
}

func targetSetupCmd(logger log.DebugLogger) error {
	if err := loadConfiguration(logger); err != nil {
		return err
	}
	plan, layout, err := makeStoragePlan(logger)
	if err != nil {
		return err
	}
	// The pools are exported when running standalone after a reboot. A
	// failed import is logged and ignored: they may still be imported
	// from a previous step.
	err = zfs.ImportPools(makeRunner("", logger), *mountPoint,
		layout.BootPoolName, layout.MainPoolName)
	if err != nil {
		logger.Printf("continuing with pools not imported here: %s\n", err)
	}
	params := makeBootstrapParams(logger)
	if err := bootstrap.MakeBindMounts(params); err != nil {
		return err
	}
	defer bootstrap.RemoveBindMounts(params)
	return bootstrap.TargetSetup(makeRunner(*mountPoint, logger), params,
		plan, layout)
}
