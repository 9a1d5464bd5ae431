// Package sshkeys generates SSH host keys for a freshly installed root
// so the first boot comes up with a stable host identity.
package sshkeys

import (
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

// GenerateHostKeys writes an ed25519 host key pair into etc/ssh under the
// target root: ssh_host_ed25519_key in PEM form and
// ssh_host_ed25519_key.pub in authorized-keys form. Existing keys are left
// alone.
func GenerateHostKeys(targetRoot string, logger log.DebugLogger) error {
	return generateHostKeys(targetRoot, logger)
}

// InstallAuthorizedKeys copies the authorized_keys of the live environment
// root user into the target root, creating root/.ssh as needed. A missing
// source file is not an error.
func InstallAuthorizedKeys(targetRoot string, logger log.DebugLogger) error {
	return installAuthorizedKeys(targetRoot, logger)
}
