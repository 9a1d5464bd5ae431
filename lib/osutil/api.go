/*
Package osutil runs external operating-system tools, with optional chroot
confinement and dry-run support. Every command line is logged before it is
run.
*/
package osutil

import (
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

// Runner runs external commands. Implementations other than the one
// returned by NewRunner may be used in tests to record the command
// sequence instead of executing it.
type Runner interface {
	// Run runs the named command and waits for it to complete. Standard
	// output and standard error are captured and included in any error.
	Run(name string, args ...string) error
	// Output runs the named command and returns its standard output.
	Output(name string, args ...string) ([]byte, error)
}

type Params struct {
	// Chroot specifies a directory to chroot into before running
	// commands. If empty, commands run in the current root.
	Chroot string
	// DryRun prevents commands from running: they are logged and
	// reported as successful.
	DryRun bool
	Logger log.DebugLogger
}

// NewRunner returns a Runner which executes commands, logging each
// command line through params.Logger.
func NewRunner(params Params) Runner {
	return &runnerType{params}
}
