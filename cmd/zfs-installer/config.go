//go:build linux
// +build linux

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Cloud-Foundations/zfs-installer/lib/json"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
)

// installConfig mirrors the command-line flags. Values from the
// configuration file are applied only for flags not given on the
// command-line.
type installConfig struct {
	BootEnvironment   string   `json:",omitempty"`
	BootMode          string   `json:",omitempty"`
	BootPartitionSize string   `json:",omitempty"`
	BootPool          string   `json:",omitempty"`
	Disks             []string `json:",omitempty"`
	EfiPartitionSize  string   `json:",omitempty"`
	IncludePackages   []string `json:",omitempty"`
	MainPool          string   `json:",omitempty"`
	Mirror            string   `json:",omitempty"`
	RaidLevel         string   `json:",omitempty"`
	Suite             string   `json:",omitempty"`
	SwapSize          string   `json:",omitempty"`
}

func loadConfiguration(logger log.DebugLogger) error {
	filename := *configFile
	if _, err := os.Stat(filename); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		filename = filepath.Join(*tftpDirectory, "config.json")
		if _, err := os.Stat(filename); err != nil {
			logger.Debugln(1, "no configuration file, using flags only")
			return nil
		}
	}
	var config installConfig
	if err := json.ReadFromFile(filename, &config); err != nil {
		return fmt.Errorf("error reading: %s: %s", filename, err)
	}
	setFlags := make(map[string]struct{})
	flag.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = struct{}{}
	})
	apply := func(name, value string) error {
		if value == "" {
			return nil
		}
		if _, ok := setFlags[name]; ok {
			return nil
		}
		return flag.Set(name, value)
	}
	pairs := []struct{ name, value string }{
		{"bootEnvironment", config.BootEnvironment},
		{"bootMode", config.BootMode},
		{"bootPartitionSize", config.BootPartitionSize},
		{"bootPool", config.BootPool},
		{"disks", joinList(config.Disks)},
		{"efiPartitionSize", config.EfiPartitionSize},
		{"includePackages", joinList(config.IncludePackages)},
		{"mainPool", config.MainPool},
		{"mirror", config.Mirror},
		{"raidLevel", config.RaidLevel},
		{"suite", config.Suite},
		{"swapSize", config.SwapSize},
	}
	for _, pair := range pairs {
		if err := apply(pair.name, pair.value); err != nil {
			return fmt.Errorf("error applying %s from %s: %s",
				pair.name, filename, err)
		}
	}
	logger.Printf("loaded configuration from: %s\n", filename)
	return nil
}

func joinList(list []string) string {
	result := ""
	for index, entry := range list {
		if index > 0 {
			result += ","
		}
		result += entry
	}
	return result
}

func getLayout() (storage.Layout, error) {
	layout := storage.Layout{
		BootPartitionSize:    uint64(bootPartitionSize),
		BootPoolName:         *bootPool,
		EfiPartitionSize:     uint64(efiPartitionSize),
		MainPoolName:         *mainPool,
		PlaceholderDirectory: *placeholderDirectory,
		RaidLevel:            raidLevel,
		SwapSize:             uint64(swapSize),
	}
	switch *bootMode {
	case "bios":
		layout.BootMode = storage.BootModeBios
	case "efi":
		layout.BootMode = storage.BootModeEfi
	case "auto":
		if checkIsEfi() {
			layout.BootMode = storage.BootModeEfi
		} else {
			layout.BootMode = storage.BootModeBios
		}
	default:
		return storage.Layout{}, fmt.Errorf("invalid boot mode: %s",
			*bootMode)
	}
	return layout, nil
}

func checkIsEfi() bool {
	if _, err := os.Stat(filepath.Join(*sysfsDirectory,
		"firmware", "efi")); err == nil {
		return true
	}
	return false
}
