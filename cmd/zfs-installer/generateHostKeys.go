//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/sshkeys"
)

func generateHostKeysSubcommand(args []string,
	logger log.DebugLogger) error {
	if err := sshkeys.GenerateHostKeys(*mountPoint, logger); err != nil {
		return fmt.Errorf("error generating host keys: %s", err)
	}
	if err := sshkeys.InstallAuthorizedKeys(*mountPoint, logger); err != nil {
		return fmt.Errorf("error installing authorized keys: %s", err)
	}
	return nil
}
