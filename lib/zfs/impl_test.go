package zfs

import (
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

func TestCreateBootPool(t *testing.T) {
	runner := &recordingRunner{}
	poolPlan := storage.PoolPlan{
		Name:      "bpool",
		RaidLevel: storage.RaidMirror,
		Members: []storage.Member{
			{Path: "/dev/sda2"},
			{Path: "/tmp/placeholders/bpool-missing-1.img",
				Placeholder: true},
		},
	}
	err := CreateBootPool(runner, poolPlan, "/mnt", testlogger.New(t))
	if err != nil {
		t.Fatal(err)
	}
	if len(runner.commands) != 1 {
		t.Fatalf("expected 1 command, got: %d", len(runner.commands))
	}
	command := runner.commands[0]
	if !strings.HasPrefix(command, "zpool create") {
		t.Errorf("unexpected command: %s", command)
	}
	for _, want := range []string{
		"-o compatibility=grub2",
		"-O mountpoint=/boot",
		"-R /mnt",
		"bpool mirror /dev/sda2 /tmp/placeholders/bpool-missing-1.img",
	} {
		if !strings.Contains(command, want) {
			t.Errorf("command missing %q: %s", want, command)
		}
	}
}

func TestCreateMainPoolRaidz(t *testing.T) {
	runner := &recordingRunner{}
	poolPlan := storage.PoolPlan{
		Name:      "rpool",
		RaidLevel: storage.RaidZ2,
		Members: []storage.Member{
			{Path: "/dev/sda3"},
			{Path: "/dev/sdb3"},
			{Path: "/dev/sdc3"},
		},
	}
	err := CreateMainPool(runner, poolPlan, "/mnt", testlogger.New(t))
	if err != nil {
		t.Fatal(err)
	}
	command := runner.commands[0]
	if strings.Contains(command, "compatibility=grub2") {
		t.Errorf("main pool must not limit features: %s", command)
	}
	if !strings.Contains(command,
		"rpool raidz2 /dev/sda3 /dev/sdb3 /dev/sdc3") {
		t.Errorf("unexpected vdev list: %s", command)
	}
}

func TestCreateStripePool(t *testing.T) {
	runner := &recordingRunner{}
	poolPlan := storage.PoolPlan{
		Name:      "rpool",
		RaidLevel: storage.RaidStripe,
		Members:   []storage.Member{{Path: "/dev/sda3"}},
	}
	err := CreateMainPool(runner, poolPlan, "/mnt", testlogger.New(t))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(runner.commands[0], "rpool /dev/sda3") {
		t.Errorf("stripe pool must not name a vdev type: %s",
			runner.commands[0])
	}
}

func TestCreatePoolsDegradesBeforeUse(t *testing.T) {
	runner := &recordingRunner{}
	plan := storage.Plan{
		BootPool: storage.PoolPlan{
			Name:      "bpool",
			RaidLevel: storage.RaidMirror,
			Members: []storage.Member{
				{Path: "/dev/sda2"},
				{Path: "/tmp/ph/bpool-missing-1.img", Placeholder: true},
			},
		},
		MainPool: storage.PoolPlan{
			Name:      "rpool",
			RaidLevel: storage.RaidMirror,
			Members: []storage.Member{
				{Path: "/dev/sda3"},
				{Path: "/tmp/ph/rpool-missing-1.img", Placeholder: true},
			},
		},
		Placeholders: []storage.Placeholder{
			{Path: "/tmp/ph/bpool-missing-1.img", Pool: "bpool",
				Detach: true},
			{Path: "/tmp/ph/rpool-missing-1.img", Pool: "rpool",
				Detach: true},
		},
	}
	err := CreatePools(runner, plan, "/mnt", testlogger.New(t))
	if err != nil {
		t.Fatal(err)
	}
	// Placeholders must be gone as soon as both pools exist: nothing may
	// run between pool creation and degradation.
	indexOf := func(substring string) int {
		for index, command := range runner.commands {
			if strings.Contains(command, substring) {
				return index
			}
		}
		return -1
	}
	createBoot := indexOf("zpool create -f -o ashift=12 -o autotrim=on -o compatibility=grub2")
	createMain := indexOf("rpool mirror /dev/sda3")
	offlineBoot := indexOf("zpool offline bpool")
	offlineMain := indexOf("zpool offline rpool")
	if createBoot < 0 || createMain < 0 || offlineBoot < 0 ||
		offlineMain < 0 {
		t.Fatalf("missing commands: %v", runner.commands)
	}
	if createBoot > createMain || createMain > offlineBoot ||
		offlineBoot > offlineMain {
		t.Errorf("bad command order: %v", runner.commands)
	}
	if !runner.find("zpool detach bpool /tmp/ph/bpool-missing-1.img") ||
		!runner.find("zpool detach rpool /tmp/ph/rpool-missing-1.img") {
		t.Errorf("missing detaches: %v", runner.commands)
	}
}

func TestCreateDatasets(t *testing.T) {
	runner := &recordingRunner{}
	err := CreateDatasets(runner, "bpool", "rpool", "devuan",
		testlogger.New(t))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"zfs create -o canmount=off -o mountpoint=none rpool/ROOT",
		"zfs create -o canmount=noauto -o mountpoint=/ rpool/ROOT/devuan",
		"zfs mount rpool/ROOT/devuan",
		"zfs create -o mountpoint=/boot bpool/BOOT/devuan",
		"zfs create rpool/home",
		"zfs create rpool/var/log",
		"zfs create rpool/var/spool",
		"zfs create -o mountpoint=/var/lib/docker rpool/docker",
		"zpool set bootfs=rpool/ROOT/devuan rpool",
	} {
		if !runner.find(want) {
			t.Errorf("missing command: %s, got: %v", want, runner.commands)
		}
	}
	// The root dataset must be mounted before its children are created.
	mountIndex, homeIndex := -1, -1
	for index, command := range runner.commands {
		switch command {
		case "zfs mount rpool/ROOT/devuan":
			mountIndex = index
		case "zfs create rpool/home":
			homeIndex = index
		}
	}
	if mountIndex < 0 || homeIndex < 0 || mountIndex > homeIndex {
		t.Errorf("bad command order: %v", runner.commands)
	}
}

func TestRemovePlaceholders(t *testing.T) {
	runner := &recordingRunner{}
	placeholders := []storage.Placeholder{
		{Path: "/nonexistent/bpool-missing-1.img", Pool: "bpool",
			Detach: true},
		{Path: "/nonexistent/rpool-missing-1.img", Pool: "rpool"},
	}
	err := removePlaceholders(runner, placeholders, testlogger.New(t))
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{
		"zpool offline bpool /nonexistent/bpool-missing-1.img",
		"zpool detach bpool /nonexistent/bpool-missing-1.img",
		"zpool offline rpool /nonexistent/rpool-missing-1.img",
	}
	if len(runner.commands) != len(expected) {
		t.Fatalf("expected %d commands, got: %v",
			len(expected), runner.commands)
	}
	for index, command := range runner.commands {
		if command != expected[index] {
			t.Errorf("command %d: expected: %q, got: %q",
				index, expected[index], command)
		}
	}
}

func TestExportImport(t *testing.T) {
	runner := &recordingRunner{}
	if err := ExportPools(runner, "bpool", "rpool"); err != nil {
		t.Fatal(err)
	}
	if err := ImportPools(runner, "/mnt", "rpool"); err != nil {
		t.Fatal(err)
	}
	if !runner.find("zpool export bpool") ||
		!runner.find("zpool export rpool") {
		t.Errorf("missing exports: %v", runner.commands)
	}
	if !runner.find("zpool import -N -R /mnt rpool") {
		t.Errorf("missing import: %v", runner.commands)
	}
}
