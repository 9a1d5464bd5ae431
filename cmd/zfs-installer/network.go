//go:build linux
// +build linux

package main

import (
	"fmt"

	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/netconfig"
	"github.com/Cloud-Foundations/zfs-installer/lib/osutil"
	"github.com/d2g/dhcp4"
)

func makeNetconfigParams(runner osutil.Runner,
	logger log.DebugLogger) netconfig.Params {
	return netconfig.Params{
		SysfsDirectory: *sysfsDirectory,
		Runner:         runner,
		Logger:         logger,
	}
}

func dhcpRequestSubcommand(args []string, logger log.DebugLogger) error {
	runner := makeRunner("", logger)
	_, packet, err := probeNetwork(runner, logger)
	if err != nil {
		return fmt.Errorf("error requesting DHCP: %s", err)
	}
	options := packet.ParseOptions()
	if hostname := options[dhcp4.OptionHostName]; len(hostname) > 0 {
		logger.Printf("DHCP HostName option found, value=%s\n",
			string(hostname))
	}
	return nil
}

func probeNetwork(runner osutil.Runner, logger log.DebugLogger) (
	string, dhcp4.Packet, error) {
	params := makeNetconfigParams(runner, logger)
	interfaces, err := netconfig.ListBroadcastEthernet(params)
	if err != nil {
		return "", nil, err
	}
	if err := runner.Run("ifconfig", "lo", "up"); err != nil {
		return "", nil, err
	}
	// Raise interfaces so that by the time the OS is installed link status
	// should be stable. This is how we discover connected interfaces.
	if err := netconfig.RaiseInterfaces(params, interfaces); err != nil {
		return "", nil, err
	}
	ifName, packet, err := netconfig.DhcpRequest(params, interfaces)
	if err != nil {
		return "", nil, err
	}
	options := packet.ParseOptions()
	if logdir, err := netconfig.LogDhcpPacket(params, ifName, packet,
		options); err != nil {
		logger.Printf("error logging DHCP packet: %s\n", err)
	} else {
		logger.Printf("logged DHCP response in: %s\n", logdir)
	}
	return ifName, packet, nil
}

func configureTargetNetwork(runner osutil.Runner,
	logger log.DebugLogger) error {
	ifName, packet, err := probeNetwork(runner, logger)
	if err != nil {
		return err
	}
	hostname := netconfig.HostnameFromDhcp(packet.ParseOptions())
	if *dryRun {
		logger.Debugf(0,
			"dry run: skipping network configuration for: %s\n", ifName)
		return nil
	}
	return netconfig.WriteTargetConfig(*mountPoint, ifName, hostname,
		logger)
}
