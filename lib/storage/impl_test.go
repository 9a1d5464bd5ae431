package storage

import (
	"strings"
	"testing"
)

var testLayout = Layout{
	BootMode:             BootModeBios,
	BootPartitionSize:    2 << 30,
	BootPoolName:         "bpool",
	EfiPartitionSize:     512 << 20,
	MainPoolName:         "rpool",
	PlaceholderDirectory: "/tmp/placeholders",
	RaidLevel:            RaidMirror,
	SwapSize:             0,
}

func TestParseDiskSpecs(t *testing.T) {
	disks, err := ParseDiskSpecs([]string{"/dev/sda", "missing", "/dev/sdb"})
	if err != nil {
		t.Fatal(err)
	}
	if len(disks) != 3 {
		t.Fatalf("expected 3 disks, got: %d", len(disks))
	}
	if disks[0].IsMissing() {
		t.Errorf("disk: %s reported missing", disks[0].Spec)
	}
	if !disks[1].IsMissing() {
		t.Errorf("disk: %s not reported missing", disks[1].Spec)
	}
	if _, err := ParseDiskSpecs([]string{"sda"}); err == nil {
		t.Error("expected error for bare device name")
	}
	if _, err := ParseDiskSpecs(nil); err == nil {
		t.Error("expected error for no disks")
	}
}

func TestPartitionDevice(t *testing.T) {
	pairs := []struct{ device, expected string }{
		{"/dev/sda", "/dev/sda3"},
		{"/dev/nvme0n1", "/dev/nvme0n1p3"},
		{"/dev/disk/by-id/ata-SAMSUNG_860", "/dev/disk/by-id/ata-SAMSUNG_860-part3"},
	}
	for _, pair := range pairs {
		if result := PartitionDevice(pair.device, 3); result != pair.expected {
			t.Errorf("device: %s: expected: %s, got: %s",
				pair.device, pair.expected, result)
		}
	}
}

func TestRaidLevelSet(t *testing.T) {
	var level RaidLevel
	if err := level.Set("raidz2"); err != nil {
		t.Fatal(err)
	}
	if level != RaidZ2 {
		t.Errorf("expected: %s, got: %s", RaidZ2, level)
	}
	if err := level.Set("raidz"); err != nil {
		t.Fatal(err)
	}
	if level != RaidZ1 {
		t.Errorf("expected: %s, got: %s", RaidZ1, level)
	}
	if err := level.Set("stripe"); err != nil {
		t.Fatal(err)
	}
	if level != RaidStripe {
		t.Errorf("expected stripe, got: %q", level)
	}
	if err := level.Set("raid5"); err == nil {
		t.Error("expected error for invalid level")
	}
}

func TestMakePlanSingleDisk(t *testing.T) {
	layout := testLayout
	layout.RaidLevel = RaidStripe
	disks := []Disk{{Spec: "/dev/sda", Device: "/dev/sda", Size: 100 << 30}}
	plan, err := MakePlan(disks, layout)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Disks) != 1 {
		t.Fatalf("expected 1 disk plan, got: %d", len(plan.Disks))
	}
	if len(plan.Placeholders) != 0 {
		t.Errorf("expected no placeholders, got: %d", len(plan.Placeholders))
	}
	if plan.BootPool.RaidLevel != RaidStripe {
		t.Errorf("single disk boot pool should be striped, got: %s",
			plan.BootPool.RaidLevel)
	}
	diskPlan := plan.Disks[0]
	if len(diskPlan.Partitions) != 3 {
		t.Fatalf("expected 3 partitions, got: %d", len(diskPlan.Partitions))
	}
	if diskPlan.Partitions[0].TypeCode != TypeCodeBiosBoot {
		t.Errorf("partition 1 type: %s", diskPlan.Partitions[0].TypeCode)
	}
	if diskPlan.BootPartition != 2 {
		t.Errorf("boot partition number: %d", diskPlan.BootPartition)
	}
	if diskPlan.MainPartition != 3 {
		t.Errorf("main partition number: %d", diskPlan.MainPartition)
	}
	if diskPlan.SwapPartition != 0 {
		t.Errorf("unexpected swap partition: %d", diskPlan.SwapPartition)
	}
	if diskPlan.EfiPartition != 0 {
		t.Errorf("unexpected EFI partition: %d", diskPlan.EfiPartition)
	}
	if plan.MainPool.Members[0].Path != "/dev/sda3" {
		t.Errorf("main member: %s", plan.MainPool.Members[0].Path)
	}
}

func TestMakePlanSwapAndEfi(t *testing.T) {
	layout := testLayout
	layout.BootMode = BootModeEfi
	layout.RaidLevel = RaidStripe
	layout.SwapSize = 4 << 30
	disks := []Disk{{Spec: "/dev/sda", Device: "/dev/sda", Size: 100 << 30}}
	plan, err := MakePlan(disks, layout)
	if err != nil {
		t.Fatal(err)
	}
	diskPlan := plan.Disks[0]
	if len(diskPlan.Partitions) != 4 {
		t.Fatalf("expected 4 partitions, got: %d", len(diskPlan.Partitions))
	}
	if diskPlan.Partitions[0].TypeCode != TypeCodeEfi {
		t.Errorf("partition 1 type: %s", diskPlan.Partitions[0].TypeCode)
	}
	if diskPlan.EfiPartition != 1 {
		t.Errorf("EFI partition number: %d", diskPlan.EfiPartition)
	}
	if diskPlan.SwapPartition != 3 {
		t.Errorf("swap partition number: %d", diskPlan.SwapPartition)
	}
	if diskPlan.MainPartition != 4 {
		t.Errorf("main partition number: %d", diskPlan.MainPartition)
	}
}

func TestMakePlanMirrorWithMissing(t *testing.T) {
	disks := []Disk{
		{Spec: "/dev/sda", Device: "/dev/sda", Size: 100 << 30},
		{Spec: MissingDisk},
	}
	plan, err := MakePlan(disks, testLayout)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.Placeholders) != 2 {
		t.Fatalf("expected 2 placeholders, got: %d", len(plan.Placeholders))
	}
	for _, placeholder := range plan.Placeholders {
		if !placeholder.Detach {
			t.Errorf("mirror placeholder: %s should be detachable",
				placeholder.Path)
		}
		if !strings.HasPrefix(placeholder.Path, "/tmp/placeholders/") {
			t.Errorf("placeholder path: %s", placeholder.Path)
		}
	}
	if len(plan.BootPool.Members) != 2 {
		t.Fatalf("expected 2 boot pool members, got: %d",
			len(plan.BootPool.Members))
	}
	if plan.BootPool.Members[0].Placeholder {
		t.Error("first boot member should be real")
	}
	if !plan.BootPool.Members[1].Placeholder {
		t.Error("second boot member should be a placeholder")
	}
	if plan.BootPool.RaidLevel != RaidMirror {
		t.Errorf("boot pool RAID level: %s", plan.BootPool.RaidLevel)
	}
}

func TestMakePlanRaidz2WithMissing(t *testing.T) {
	layout := testLayout
	layout.RaidLevel = RaidZ2
	disks := []Disk{
		{Spec: "/dev/sda", Device: "/dev/sda", Size: 100 << 30},
		{Spec: MissingDisk},
		{Spec: "/dev/sdc", Device: "/dev/sdc", Size: 80 << 30},
		{Spec: MissingDisk},
	}
	plan, err := MakePlan(disks, layout)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.MainPool.Members) != 4 {
		t.Fatalf("expected 4 main pool members, got: %d",
			len(plan.MainPool.Members))
	}
	// Member order must follow the input disk order.
	expected := []struct {
		placeholder bool
		path        string
	}{
		{false, "/dev/sda3"},
		{true, "/tmp/placeholders/rpool-missing-1.img"},
		{false, "/dev/sdc3"},
		{true, "/tmp/placeholders/rpool-missing-3.img"},
	}
	for index, member := range plan.MainPool.Members {
		if member.Placeholder != expected[index].placeholder {
			t.Errorf("member %d: placeholder: %v", index, member.Placeholder)
		}
		if member.Path != expected[index].path {
			t.Errorf("member %d: expected: %s, got: %s",
				index, expected[index].path, member.Path)
		}
	}
	for _, placeholder := range plan.Placeholders {
		if placeholder.Pool == "rpool" && placeholder.Detach {
			t.Errorf("raidz placeholder: %s must stay attached",
				placeholder.Path)
		}
		if placeholder.Pool == "bpool" && !placeholder.Detach {
			t.Errorf("boot pool placeholder: %s should be detachable",
				placeholder.Path)
		}
	}
	// Placeholder size tracks the smallest real disk.
	var mainSize uint64
	for _, placeholder := range plan.Placeholders {
		if placeholder.Pool == "rpool" {
			mainSize = placeholder.Size
		}
	}
	smallest := uint64(80<<30) - fixedOverhead(layout)
	if mainSize != smallest {
		t.Errorf("placeholder size: expected: %d, got: %d",
			smallest, mainSize)
	}
}

func TestMakePlanAllMissing(t *testing.T) {
	disks := []Disk{{Spec: MissingDisk}, {Spec: MissingDisk}}
	if _, err := MakePlan(disks, testLayout); err == nil {
		t.Error("expected error when all disks are missing")
	}
}

func TestMakePlanTooFewMembers(t *testing.T) {
	layout := testLayout
	layout.RaidLevel = RaidZ2
	disks := []Disk{
		{Spec: "/dev/sda", Device: "/dev/sda", Size: 100 << 30},
		{Spec: MissingDisk},
	}
	if _, err := MakePlan(disks, layout); err == nil {
		t.Error("expected error for too few raidz2 members")
	}
}

func TestMakePlanStripeWithMissing(t *testing.T) {
	layout := testLayout
	layout.RaidLevel = RaidStripe
	disks := []Disk{
		{Spec: "/dev/sda", Device: "/dev/sda", Size: 100 << 30},
		{Spec: MissingDisk},
	}
	if _, err := MakePlan(disks, layout); err == nil {
		t.Error("expected error for striped pool with missing disk")
	}
}

func TestMakePlanDiskTooSmall(t *testing.T) {
	disks := []Disk{
		{Spec: "/dev/sda", Device: "/dev/sda", Size: 1 << 30},
	}
	layout := testLayout
	layout.RaidLevel = RaidStripe
	if _, err := MakePlan(disks, layout); err == nil {
		t.Error("expected error for undersized disk")
	}
}
