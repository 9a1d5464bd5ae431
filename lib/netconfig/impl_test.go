package netconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cloud-Foundations/zfs-installer/lib/log/testlogger"
	"github.com/d2g/dhcp4"
)

func TestIsValidHostname(t *testing.T) {
	for _, valid := range []string{"host", "host-1", "ZFS-box"} {
		if !isValidHostname([]byte(valid)) {
			t.Errorf("rejected valid hostname: %s", valid)
		}
	}
	for _, invalid := range []string{"", "host.domain", "host_1", "a b"} {
		if isValidHostname([]byte(invalid)) {
			t.Errorf("accepted invalid hostname: %s", invalid)
		}
	}
}

func TestHostnameFromDhcp(t *testing.T) {
	options := dhcp4.Options{
		dhcp4.OptionHostName: []byte("Storage-Host"),
	}
	if name := hostnameFromDhcp(options, "/nonexistent"); name != "storage-host" {
		t.Errorf("expected lowered hostname, got: %q", name)
	}
	cmdline := filepath.Join(t.TempDir(), "cmdline")
	err := os.WriteFile(cmdline,
		[]byte("quiet ro hostname=fallback-host root=/dev/sda1\n"), 0o644)
	if err != nil {
		t.Fatal(err)
	}
	if name := hostnameFromDhcp(dhcp4.Options{}, cmdline); name != "fallback-host" {
		t.Errorf("expected kernel cmdline hostname, got: %q", name)
	}
	if name := hostnameFromDhcp(dhcp4.Options{}, "/nonexistent"); name != "" {
		t.Errorf("expected empty hostname, got: %q", name)
	}
}

func TestWriteTargetConfig(t *testing.T) {
	targetRoot := t.TempDir()
	err := WriteTargetConfig(targetRoot, "eth0", "storage-host",
		testlogger.New(t))
	if err != nil {
		t.Fatal(err)
	}
	interfaces, err := os.ReadFile(
		filepath.Join(targetRoot, "etc", "network", "interfaces"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"auto lo",
		"iface lo inet loopback",
		"auto eth0",
		"iface eth0 inet dhcp",
	} {
		if !strings.Contains(string(interfaces), want) {
			t.Errorf("interfaces missing: %s", want)
		}
	}
	hostname, err := os.ReadFile(
		filepath.Join(targetRoot, "etc", "hostname"))
	if err != nil {
		t.Fatal(err)
	}
	if string(hostname) != "storage-host\n" {
		t.Errorf("unexpected hostname: %q", string(hostname))
	}
}

func TestLogDhcpPacket(t *testing.T) {
	params := Params{
		LogDirectory: filepath.Join(t.TempDir(), "dhcp"),
		Logger:       testlogger.New(t),
	}
	params.setDefaults()
	packet := dhcp4.NewPacket(dhcp4.BootReply)
	options := dhcp4.Options{
		dhcp4.OptionHostName: []byte("storage-host"),
	}
	logdir, err := logDhcpPacket(params, "eth0", packet, options)
	if err != nil {
		t.Fatal(err)
	}
	ifName, err := os.ReadFile(filepath.Join(logdir, "interface"))
	if err != nil {
		t.Fatal(err)
	}
	if string(ifName) != "eth0" {
		t.Errorf("unexpected interface: %q", string(ifName))
	}
	if _, err := os.Stat(filepath.Join(logdir, "packet")); err != nil {
		t.Error(err)
	}
	// A second call must get a fresh directory.
	logdir2, err := logDhcpPacket(params, "eth0", packet, options)
	if err != nil {
		t.Fatal(err)
	}
	if logdir2 == logdir {
		t.Errorf("log directory reused: %s", logdir2)
	}
}
