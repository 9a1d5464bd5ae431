package bootstrap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cloud-Foundations/zfs-installer/lib/log/testlogger"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
)

type recordingRunner struct {
	commands []string
}

func (runner *recordingRunner) Run(name string, args ...string) error {
	runner.commands = append(runner.commands,
		name+" "+strings.Join(args, " "))
	return nil
}

func (runner *recordingRunner) Output(name string, args ...string) (
	[]byte, error) {
	runner.Run(name, args...)
	return nil, nil
}

func (runner *recordingRunner) find(substring string) bool {
	for _, command := range runner.commands {
		if strings.Contains(command, substring) {
			return true
		}
	}
	return false
}

func TestBootstrap(t *testing.T) {
	runner := &recordingRunner{}
	params := Params{
		IncludePackages: []string{"openssh-server", "vim"},
		Suite:           "daedalus",
		TargetRoot:      "/mnt",
		Logger:          testlogger.New(t),
	}
	if err := Bootstrap(runner, params); err != nil {
		t.Fatal(err)
	}
	expected := "debootstrap --variant=minbase" +
		" --include=openssh-server,vim daedalus /mnt" +
		" http://deb.devuan.org/merged"
	if len(runner.commands) != 1 || runner.commands[0] != expected {
		t.Errorf("expected: %q, got: %v", expected, runner.commands)
	}
}

func TestCopyConfiguration(t *testing.T) {
	targetRoot := t.TempDir()
	params := Params{
		TargetRoot: targetRoot,
		Logger:     testlogger.New(t),
	}
	if err := CopyConfiguration(params); err != nil {
		t.Fatal(err)
	}
	// The live environment running the test has at least /etc/hostname.
	if _, err := os.Stat("/etc/hostname"); err == nil {
		target := filepath.Join(targetRoot, "etc", "hostname")
		if _, err := os.Stat(target); err != nil {
			t.Errorf("hostname not copied: %s", err)
		}
	}
}

func TestTargetSetupBios(t *testing.T) {
	runner := &recordingRunner{}
	targetRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(targetRoot, "etc"),
		0o755); err != nil {
		t.Fatal(err)
	}
	params := Params{
		TargetRoot: targetRoot,
		Logger:     testlogger.New(t),
	}
	layout := storage.Layout{BootMode: storage.BootModeBios}
	plan := &storage.Plan{
		Disks: []storage.DiskPlan{
			{Device: "/dev/sda", SwapPartition: 3},
			{Device: "/dev/sdb", SwapPartition: 3},
		},
	}
	if err := TargetSetup(runner, params, plan, layout); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"apt-get update",
		"apt-get install --yes zfsutils-linux zfs-initramfs zfs-dkms",
		"apt-get install --yes grub-pc",
		"grub-install --target=i386-pc /dev/sda",
		"grub-install --target=i386-pc /dev/sdb",
		"mkswap /dev/sda3",
		"mkswap /dev/sdb3",
		"zgenhostid -f",
		"update-initramfs -c -k all",
		"update-grub",
		"passwd --lock root",
	} {
		if !runner.find(want) {
			t.Errorf("missing command: %s", want)
		}
	}
	if runner.find("grub-efi") {
		t.Errorf("EFI GRUB installed for BIOS boot: %v", runner.commands)
	}
	if runner.find("mkfs.vfat") {
		t.Errorf("ESP formatted for BIOS boot: %v", runner.commands)
	}
	fstab, err := os.ReadFile(filepath.Join(targetRoot, "etc", "fstab"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"proc /proc proc defaults 0 0",
		"/dev/sda3 none swap sw 0 0",
		"/dev/sdb3 none swap sw 0 0",
	} {
		if !strings.Contains(string(fstab), want) {
			t.Errorf("fstab missing: %s, got: %s", want, string(fstab))
		}
	}
}

func TestTargetSetupEfi(t *testing.T) {
	runner := &recordingRunner{}
	targetRoot := t.TempDir()
	if err := os.MkdirAll(filepath.Join(targetRoot, "etc"),
		0o755); err != nil {
		t.Fatal(err)
	}
	params := Params{
		TargetRoot: targetRoot,
		Logger:     testlogger.New(t),
	}
	layout := storage.Layout{BootMode: storage.BootModeEfi}
	plan := &storage.Plan{
		Disks: []storage.DiskPlan{
			{Device: "/dev/sda", EfiPartition: 1},
			{Device: "/dev/sdb", EfiPartition: 1},
		},
	}
	if err := TargetSetup(runner, params, plan, layout); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"apt-get install --yes grub-efi-amd64 shim-signed",
		"mkfs.vfat -F 32 /dev/sda1",
		"mkfs.vfat -F 32 /dev/sdb1",
		"mkdir -p /boot/efi",
		"mount /dev/sda1 /boot/efi",
		"grub-install --target=x86_64-efi --efi-directory=/boot/efi" +
			" --bootloader-id=devuan --recheck",
		"umount /boot/efi",
	} {
		if !runner.find(want) {
			t.Errorf("missing command: %s, got: %v", want, runner.commands)
		}
	}
	if runner.find("--target=i386-pc") {
		t.Errorf("BIOS grub-install for EFI boot: %v", runner.commands)
	}
	// The ESP must be formatted and mounted before GRUB writes into it,
	// and unmounted only after update-grub.
	indexOf := func(substring string) int {
		for index, command := range runner.commands {
			if strings.Contains(command, substring) {
				return index
			}
		}
		return -1
	}
	mount := indexOf("mount /dev/sda1 /boot/efi")
	install := indexOf("grub-install")
	umount := indexOf("umount /boot/efi")
	updateGrub := indexOf("update-grub")
	if mount > install || install > updateGrub || updateGrub > umount {
		t.Errorf("bad command order: %v", runner.commands)
	}
	fstab, err := os.ReadFile(filepath.Join(targetRoot, "etc", "fstab"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(fstab),
		"/dev/sda1 /boot/efi vfat umask=0077 0 1") {
		t.Errorf("fstab missing ESP entry: %s", string(fstab))
	}
	if strings.Contains(string(fstab), "/dev/sdb1 /boot/efi") {
		t.Errorf("fstab mounts more than one ESP: %s", string(fstab))
	}
}

func TestCopyHomeDirectories(t *testing.T) {
	sourceRoot := t.TempDir()
	targetRoot := t.TempDir()
	files := []string{
		"root/.ssh/authorized_keys",
		"home/alice/.profile",
		"home/bob/.ssh/id_ed25519.pub",
	}
	for _, file := range files {
		filename := filepath.Join(sourceRoot, file)
		if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filename, []byte(file+"\n"),
			0o600); err != nil {
			t.Fatal(err)
		}
	}
	params := Params{
		TargetRoot: targetRoot,
		Logger:     testlogger.New(t),
	}
	if err := copyHomeDirectories(params, sourceRoot); err != nil {
		t.Fatal(err)
	}
	for _, file := range files {
		filename := filepath.Join(targetRoot, file)
		data, err := os.ReadFile(filename)
		if err != nil {
			t.Errorf("not copied: %s: %s", file, err)
			continue
		}
		if string(data) != file+"\n" {
			t.Errorf("bad contents for: %s: %q", file, string(data))
		}
	}
}
