/*
Package loadflags will set command-line flags from flag files, so that
per-machine defaults may be baked into an installer image.
*/
package loadflags

import (
	"path/filepath"
)

// LoadForDaemon will load flags from files under /etc/progName.
func LoadForDaemon(progName string) error {
	return loadFlags(filepath.Join("/etc", progName))
}
