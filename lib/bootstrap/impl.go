package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cloud-Foundations/zfs-installer/lib/fsutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/osutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
	"github.com/Cloud-Foundations/zfs-installer/lib/wsyscall"
)

const defaultMirror = "http://deb.devuan.org/merged"

var standardBindMounts = []string{"dev", "proc", "sys", "tmp"}

// Files copied verbatim from the live environment when present.
var configurationFiles = []string{
	"etc/hostname",
	"etc/hosts",
	"etc/resolv.conf",
	"etc/timezone",
	"etc/localtime",
	"etc/default/locale",
	"etc/apt/sources.list",
	"root/.ssh/authorized_keys",
}

func (params *Params) setDefaults() {
	if params.Mirror == "" {
		params.Mirror = defaultMirror
	}
}

func bootstrap(runner osutil.Runner, params Params) error {
	args := []string{"--variant=minbase"}
	if len(params.IncludePackages) > 0 {
		args = append(args,
			"--include="+strings.Join(params.IncludePackages, ","))
	}
	args = append(args, params.Suite, params.TargetRoot, params.Mirror)
	params.Logger.Debugf(0, "bootstrapping %s into %s\n",
		params.Suite, params.TargetRoot)
	return runner.Run("debootstrap", args...)
}

func copyConfiguration(params Params) error {
	for _, filename := range configurationFiles {
		source := filepath.Join("/", filename)
		if _, err := os.Stat(source); err != nil {
			if os.IsNotExist(err) {
				params.Logger.Debugf(1, "skipping absent: %s\n", source)
				continue
			}
			return err
		}
		target := filepath.Join(params.TargetRoot, filename)
		if params.DryRun {
			params.Logger.Debugf(0, "dry run: skipping copy of %s\n",
				source)
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target),
			fsutil.DirPerms); err != nil {
			return err
		}
		if err := fsutil.CopyFile(target, source,
			fsutil.PrivateFilePerms); err != nil {
			return err
		}
		params.Logger.Debugf(1, "copied: %s\n", source)
	}
	return copyHomeDirectories(params, "/")
}

// copyHomeDirectories copies /root and each directory under /home from
// the live environment, so users keep their keys and dotfiles.
func copyHomeDirectories(params Params, sourceRoot string) error {
	if params.DryRun {
		params.Logger.Debugln(0, "dry run: skipping home directories")
		return nil
	}
	target := filepath.Join(params.TargetRoot, "root")
	if err := os.MkdirAll(target, fsutil.PrivateDirPerms); err != nil {
		return err
	}
	source := filepath.Join(sourceRoot, "root")
	if err := fsutil.CopyTree(target, source); err != nil {
		return err
	}
	params.Logger.Debugf(1, "copied home directory: %s\n", source)
	homeDir := filepath.Join(sourceRoot, "home")
	entries, err := os.ReadDir(homeDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		source := filepath.Join(homeDir, entry.Name())
		target := filepath.Join(params.TargetRoot, "home", entry.Name())
		if err := os.MkdirAll(target, fsutil.DirPerms); err != nil {
			return err
		}
		if err := fsutil.CopyTree(target, source); err != nil {
			return err
		}
		params.Logger.Debugf(1, "copied home directory: %s\n", source)
	}
	return nil
}

func makeBindMounts(params Params) error {
	for _, bindMount := range standardBindMounts {
		target := filepath.Join(params.TargetRoot, bindMount)
		if params.DryRun {
			params.Logger.Debugf(0, "dry run: skipping bind mount of /%s\n",
				bindMount)
			continue
		}
		if err := os.MkdirAll(target, fsutil.DirPerms); err != nil {
			return err
		}
		err := wsyscall.Mount("/"+bindMount, target, "",
			wsyscall.MS_BIND, "")
		if err != nil {
			return fmt.Errorf("error bind mounting: /%s: %s",
				bindMount, err)
		}
	}
	return nil
}

func removeBindMounts(params Params) error {
	for index := len(standardBindMounts) - 1; index >= 0; index-- {
		target := filepath.Join(params.TargetRoot,
			standardBindMounts[index])
		if params.DryRun {
			params.Logger.Debugf(0, "dry run: skipping unmount of %s\n",
				target)
			continue
		}
		if err := wsyscall.Unmount(target, 0); err != nil {
			return fmt.Errorf("error unmounting: %s: %s", target, err)
		}
	}
	return nil
}

func targetSetup(runner osutil.Runner, params Params, plan *storage.Plan,
	layout storage.Layout) error {
	logger := params.Logger
	type command struct {
		name string
		args []string
	}
	steps := []command{
		{"apt-get", []string{"update"}},
		{"apt-get", []string{"install", "--yes", "console-setup",
			"locales"}},
		{"apt-get", []string{"install", "--yes", "linux-image-amd64",
			"linux-headers-amd64"}},
		{"apt-get", []string{"install", "--yes", "zfsutils-linux",
			"zfs-initramfs", "zfs-dkms"}},
	}
	if layout.BootMode == storage.BootModeEfi {
		steps = append(steps, command{"apt-get",
			[]string{"install", "--yes", "grub-efi-amd64", "shim-signed"}})
	} else {
		steps = append(steps, command{"apt-get",
			[]string{"install", "--yes", "grub-pc"}})
	}
	steps = append(steps, command{"apt-get",
		[]string{"install", "--yes", "openssh-server"}})
	for _, step := range steps {
		logger.Debugf(0, "target: %s %s\n",
			step.name, strings.Join(step.args, " "))
		if err := runner.Run(step.name, step.args...); err != nil {
			return err
		}
	}
	if err := writeFstab(params, plan, layout); err != nil {
		return err
	}
	if err := runner.Run("zgenhostid", "-f"); err != nil {
		return err
	}
	if err := makeSwapSpaces(runner, plan, logger); err != nil {
		return err
	}
	if layout.BootMode == storage.BootModeEfi {
		if err := mountEfiSystemPartition(runner, plan, logger); err != nil {
			return err
		}
		err := runner.Run("grub-install", "--target=x86_64-efi",
			"--efi-directory=/boot/efi", "--bootloader-id=devuan",
			"--recheck")
		if err != nil {
			return err
		}
	} else {
		for _, diskPlan := range plan.Disks {
			err := runner.Run("grub-install", "--target=i386-pc",
				diskPlan.Device)
			if err != nil {
				return err
			}
		}
	}
	if err := runner.Run("update-initramfs", "-c", "-k", "all"); err != nil {
		return err
	}
	if err := runner.Run("update-grub"); err != nil {
		return err
	}
	if layout.BootMode == storage.BootModeEfi {
		if err := runner.Run("umount", "/boot/efi"); err != nil {
			return err
		}
	}
	return runner.Run("passwd", "--lock", "root")
}

func makeSwapSpaces(runner osutil.Runner, plan *storage.Plan,
	logger log.DebugLogger) error {
	for _, diskPlan := range plan.Disks {
		if diskPlan.SwapPartition < 1 {
			continue
		}
		device := storage.PartitionDevice(diskPlan.Device,
			diskPlan.SwapPartition)
		logger.Debugf(0, "making swap space on: %s\n", device)
		if err := runner.Run("mkswap", device); err != nil {
			return err
		}
	}
	return nil
}

// mountEfiSystemPartition formats the ESP on every disk and mounts the
// first one at /boot/efi for grub-install. The spares only get populated
// if a resync tool is run against them later.
func mountEfiSystemPartition(runner osutil.Runner, plan *storage.Plan,
	logger log.DebugLogger) error {
	var firstEsp string
	for _, diskPlan := range plan.Disks {
		if diskPlan.EfiPartition < 1 {
			continue
		}
		device := storage.PartitionDevice(diskPlan.Device,
			diskPlan.EfiPartition)
		logger.Debugf(0, "formatting ESP: %s\n", device)
		if err := runner.Run("mkfs.vfat", "-F", "32", device); err != nil {
			return err
		}
		if firstEsp == "" {
			firstEsp = device
		}
	}
	if firstEsp == "" {
		return fmt.Errorf("no EFI system partition in plan")
	}
	if err := runner.Run("mkdir", "-p", "/boot/efi"); err != nil {
		return err
	}
	return runner.Run("mount", firstEsp, "/boot/efi")
}

func writeFstab(params Params, plan *storage.Plan,
	layout storage.Layout) error {
	if params.DryRun {
		params.Logger.Debugln(0, "dry run: skipping fstab")
		return nil
	}
	filename := filepath.Join(params.TargetRoot, "etc", "fstab")
	buffer := &strings.Builder{}
	fmt.Fprintln(buffer,
		"# /etc/fstab: static file system information.")
	fmt.Fprintln(buffer, "proc /proc proc defaults 0 0")
	for _, diskPlan := range plan.Disks {
		if diskPlan.EfiPartition > 0 {
			fmt.Fprintf(buffer, "%s /boot/efi vfat umask=0077 0 1\n",
				storage.PartitionDevice(diskPlan.Device,
					diskPlan.EfiPartition))
			break // Only the first ESP is mounted.
		}
	}
	for _, diskPlan := range plan.Disks {
		if diskPlan.SwapPartition > 0 {
			fmt.Fprintf(buffer, "%s none swap sw 0 0\n",
				storage.PartitionDevice(diskPlan.Device,
					diskPlan.SwapPartition))
		}
	}
	return fsutil.CopyToFile(filename, fsutil.PublicFilePerms,
		strings.NewReader(buffer.String()), 0)
}
