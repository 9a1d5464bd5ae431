// Package netconfig detects the connected network interface of the live
// environment with DHCP and writes matching network configuration into
// the target root.
package netconfig

import (
	"net"

	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/osutil"
	"github.com/d2g/dhcp4"
)

type Params struct {
	// LogDirectory gives the directory where DHCP responses are logged.
	// The default is /var/log/zfs-installer/dhcp.
	LogDirectory string

	// SysfsDirectory gives the mount point of sysfs. The default is /sys.
	SysfsDirectory string

	Runner osutil.Runner
	Logger log.DebugLogger
}

// ListBroadcastEthernet returns the broadcast-capable Ethernet
// interfaces, keyed by name. Bridges, bonds and virtual interfaces are
// skipped.
func ListBroadcastEthernet(params Params) (map[string]net.Interface,
	error) {
	params.setDefaults()
	return listBroadcastEthernet(params)
}

// RaiseInterfaces brings up each interface. Link status needs time to
// stabilise, so this is done once, early, for all candidates.
func RaiseInterfaces(params Params,
	interfaces map[string]net.Interface) error {
	params.setDefaults()
	return raiseInterfaces(params, interfaces)
}

// DhcpRequest probes all interfaces concurrently, waiting for carrier and
// then issuing DHCP requests on each. The first valid response wins: its
// interface name and packet are returned and the other probes are
// cancelled.
func DhcpRequest(params Params, interfaces map[string]net.Interface) (
	string, dhcp4.Packet, error) {
	params.setDefaults()
	return dhcpRequest(params, interfaces)
}

// LogDhcpPacket writes the raw packet and its decoded options to a new
// numbered directory under the log directory, returning the directory
// name.
func LogDhcpPacket(params Params, ifName string, packet dhcp4.Packet,
	options dhcp4.Options) (string, error) {
	params.setDefaults()
	return logDhcpPacket(params, ifName, packet, options)
}

// HostnameFromDhcp extracts a usable hostname from the DHCP HostName
// option, falling back to the hostname= kernel command-line argument. An
// empty string means neither source offered a valid name.
func HostnameFromDhcp(options dhcp4.Options) string {
	return hostnameFromDhcp(options, "/proc/cmdline")
}

// WriteTargetConfig writes /etc/network/interfaces with a DHCP stanza
// for ifName and /etc/hostname into the target root.
func WriteTargetConfig(targetRoot, ifName, hostname string,
	logger log.DebugLogger) error {
	return writeTargetConfig(targetRoot, ifName, hostname, logger)
}
