// Package bootstrap assembles a Devuan/Debian base system in a target
// root directory and finishes it from inside a chroot: kernel, ZFS
// support, bootloader and SSH access.
package bootstrap

import (
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/osutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
)

type Params struct {
	// DryRun logs actions without performing them.
	DryRun bool

	// IncludePackages lists extra packages passed to debootstrap.
	IncludePackages []string

	// Mirror gives the package mirror URL. The default is
	// http://deb.devuan.org/merged.
	Mirror string

	// Suite gives the distribution release, such as daedalus or bookworm.
	Suite string

	// TargetRoot gives the directory where the new root is mounted.
	TargetRoot string

	Logger log.DebugLogger
}

// Bootstrap runs debootstrap to unpack a base system into the target
// root.
func Bootstrap(runner osutil.Runner, params Params) error {
	params.setDefaults()
	return bootstrap(runner, params)
}

// CopyConfiguration copies identity and configuration files from the live
// environment into the target root: hostname, hosts, resolv.conf, apt
// sources, timezone, locale, the SSH authorized_keys for root and the
// home directories under /root and /home.
func CopyConfiguration(params Params) error {
	params.setDefaults()
	return copyConfiguration(params)
}

// MakeBindMounts bind mounts the pseudo-filesystems a chroot needs into
// the target root.
func MakeBindMounts(params Params) error {
	params.setDefaults()
	return makeBindMounts(params)
}

// RemoveBindMounts undoes MakeBindMounts, in reverse order.
func RemoveBindMounts(params Params) error {
	params.setDefaults()
	return removeBindMounts(params)
}

// TargetSetup completes the installation from inside a chroot of the
// target root: package installation (kernel, ZFS, GRUB, OpenSSH), swap
// and ESP formatting, bootloader installation (on each planned disk for
// BIOS, on the first ESP for EFI), initramfs rebuild, fstab and hostid.
func TargetSetup(runner osutil.Runner, params Params, plan *storage.Plan,
	layout storage.Layout) error {
	params.setDefaults()
	return targetSetup(runner, params, plan, layout)
}
