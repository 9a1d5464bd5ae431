package blockdev

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Cloud-Foundations/zfs-installer/lib/log/testlogger"
)

func makeFakeSysfs(t *testing.T) Params {
	topdir := t.TempDir()
	blockDir := filepath.Join(topdir, "sys", "class", "block")
	devicesDir := filepath.Join(topdir, "sys", "devices")
	devDir := filepath.Join(topdir, "dev")
	byIdDir := filepath.Join(devDir, "disk", "by-id")
	for _, dir := range []string{blockDir, devicesDir, devDir, byIdDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	type fakeDrive struct {
		name      string
		bus       string
		removable string
		size      string
		partition bool
	}
	fakes := []fakeDrive{
		{name: "sda", bus: "pci0000:00/0000:00:1f.2/ata1/host0",
			removable: "0", size: "209715200"}, // 100 GiB.
		{name: "sdb", bus: "pci0000:00/0000:00:1f.2/ata2/host1",
			removable: "0", size: "209715200"},
		{name: "sdc", bus: "pci0000:00/0000:00:14.0/usb1/1-1",
			removable: "1", size: "61440000"},
		{name: "sda1", bus: "pci0000:00/0000:00:1f.2/ata1/host0",
			removable: "0", size: "2097152", partition: true},
	}
	for _, fake := range fakes {
		realDir := filepath.Join(devicesDir, fake.bus, "block", fake.name)
		if err := os.MkdirAll(realDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.MkdirAll(filepath.Join(realDir, "device"),
			0o755); err != nil {
			t.Fatal(err)
		}
		writeFile(t, filepath.Join(realDir, "removable"), fake.removable)
		writeFile(t, filepath.Join(realDir, "size"), fake.size)
		if fake.partition {
			writeFile(t, filepath.Join(realDir, "partition"), "1")
		}
		err := os.Symlink(realDir, filepath.Join(blockDir, fake.name))
		if err != nil {
			t.Fatal(err)
		}
	}
	err := os.Symlink("../../sda",
		filepath.Join(byIdDir, "ata-FAKEDISK_SERIAL1"))
	if err != nil {
		t.Fatal(err)
	}
	err = os.Symlink("../../sda",
		filepath.Join(byIdDir, "wwn-0x5000000000000001"))
	if err != nil {
		t.Fatal(err)
	}
	return Params{
		ByIdDirectory:  byIdDir,
		DevDirectory:   devDir,
		SysfsDirectory: filepath.Join(topdir, "sys"),
		Logger:         testlogger.New(t),
	}
}

func writeFile(t *testing.T, filename, contents string) {
	if err := os.WriteFile(filename, []byte(contents+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListDrives(t *testing.T) {
	params := makeFakeSysfs(t)
	drives, err := ListDrives(params)
	if err != nil {
		t.Fatal(err)
	}
	if len(drives) != 2 {
		t.Fatalf("expected 2 drives, got: %d", len(drives))
	}
	if drives[0].Name != "sda" || drives[1].Name != "sdb" {
		t.Errorf("unexpected drives: %v, %v", drives[0], drives[1])
	}
	if drives[0].Size != 209715200<<9 {
		t.Errorf("unexpected size: %d", drives[0].Size)
	}
	if _, err := FindDrive(drives, "/dev/sdb"); err != nil {
		t.Error(err)
	}
	if _, err := FindDrive(drives, "/dev/sdz"); err == nil {
		t.Error("expected error for unknown drive")
	}
}

func TestResolveById(t *testing.T) {
	params := makeFakeSysfs(t)
	resolved, err := ResolveById(params, "/dev/sda")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(resolved) != "ata-FAKEDISK_SERIAL1" {
		t.Errorf("expected ata symlink, got: %s", resolved)
	}
	// No symlink for sdb: fall back to the device node.
	resolved, err = ResolveById(params, "/dev/sdb")
	if err != nil {
		t.Fatal(err)
	}
	if resolved != "/dev/sdb" {
		t.Errorf("expected passthrough, got: %s", resolved)
	}
}
