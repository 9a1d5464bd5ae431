package netconfig

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Cloud-Foundations/zfs-installer/lib/fsutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/log/prefixlogger"
	"github.com/d2g/dhcp4"
	"github.com/d2g/dhcp4client"
	dhcp "github.com/krolaw/dhcp4" // Used for option strings.
)

const dhcpTimeout = 5 * time.Minute

type dhcpResponse struct {
	error  error
	name   string
	packet dhcp4.Packet
}

func (params *Params) setDefaults() {
	if params.LogDirectory == "" {
		params.LogDirectory = "/var/log/zfs-installer/dhcp"
	}
	if params.SysfsDirectory == "" {
		params.SysfsDirectory = "/sys"
	}
}

func listBroadcastEthernet(params Params) (map[string]net.Interface,
	error) {
	logger := params.Logger
	allInterfaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	interfaces := make(map[string]net.Interface)
	for _, iface := range allInterfaces {
		if iface.Flags&net.FlagBroadcast == 0 {
			logger.Debugf(2, "skipping non-broadcast interface: %s\n",
				iface.Name)
			continue
		}
		classDir := filepath.Join(params.SysfsDirectory, "class", "net",
			iface.Name)
		for _, special := range []string{"bonding", "bridge"} {
			if _, err := os.Stat(filepath.Join(classDir,
				special)); err == nil {
				logger.Debugf(2, "skipping %s interface: %s\n",
					special, iface.Name)
				classDir = ""
				break
			}
		}
		if classDir == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(classDir, "device")); err != nil {
			logger.Debugf(2, "skipping virtual interface: %s\n", iface.Name)
			continue
		}
		logger.Debugf(1, "found broadcast interface: %s\n", iface.Name)
		interfaces[iface.Name] = iface
	}
	return interfaces, nil
}

func raiseInterfaces(params Params,
	interfaces map[string]net.Interface) error {
	for name := range interfaces {
		if err := params.Runner.Run("ifconfig", name, "up"); err != nil {
			return err
		}
	}
	return nil
}

func testCarrier(params Params, name string) bool {
	filename := filepath.Join(params.SysfsDirectory, "class", "net", name,
		"carrier")
	if data, err := os.ReadFile(filename); err == nil {
		return len(data) > 0 && data[0] == '1'
	}
	return false
}

func dhcpRequest(params Params, interfaces map[string]net.Interface) (
	string, dhcp4.Packet, error) {
	logger := params.Logger
	if len(interfaces) < 1 {
		return "", nil, errors.New("no interfaces to probe")
	}
	responseChannel := make(chan dhcpResponse, len(interfaces))
	logger.Println("waiting for carrier and DHCP response for each interface")
	cancelChannel := make(chan struct{})
	for _, iface := range interfaces {
		go dhcpRequestOnInterface(params, iface, cancelChannel,
			responseChannel, prefixlogger.New(iface.Name+": ", logger))
	}
	timer := time.NewTimer(dhcpTimeout)
	for range interfaces {
		select {
		case response := <-responseChannel:
			if response.error != nil {
				logger.Println(response.error)
				continue
			}
			close(cancelChannel)
			timer.Stop()
			return response.name, response.packet, nil
		case <-timer.C:
			return "", nil, errors.New("timed out waiting for DHCP")
		}
	}
	return "", nil,
		errors.New("unable to issue DHCP request on any interface")
}

func dhcpRequestOnInterface(params Params, iface net.Interface,
	cancelChannel <-chan struct{}, responseChannel chan<- dhcpResponse,
	logger log.DebugLogger) {
	packetSocket, err := dhcp4client.NewPacketSock(iface.Index)
	if err != nil {
		responseChannel <- dhcpResponse{
			error: fmt.Errorf("%s: failed to create DHCP socket: %s",
				iface.Name, err)}
		return
	}
	defer packetSocket.Close()
	client, err := dhcp4client.New(
		dhcp4client.HardwareAddr(iface.HardwareAddr),
		dhcp4client.Connection(packetSocket),
		dhcp4client.Timeout(time.Second*5))
	if err != nil {
		responseChannel <- dhcpResponse{
			error: fmt.Errorf("%s: failed to create DHCP client: %s",
				iface.Name, err)}
		return
	}
	defer client.Close()
	for ; ; time.Sleep(100 * time.Millisecond) {
		select {
		case <-cancelChannel:
			logger.Debugln(1, "cancelling carrier tests")
			return
		default:
		}
		if testCarrier(params, iface.Name) {
			break
		}
	}
	logger.Debugln(1, "carrier detected")
	for ; ; time.Sleep(100 * time.Millisecond) {
		select {
		case <-cancelChannel:
			logger.Debugln(1, "cancelling DHCP attempts")
			return
		default:
		}
		logger.Debugln(1, "DHCP attempt")
		ok, packet, err := client.Request()
		if err != nil {
			logger.Debugf(1, "DHCP failed: %s\n", err)
			continue
		}
		if !ok {
			continue
		}
		options := packet.ParseOptions()
		if len(options[dhcp4.OptionRouter]) < 4 {
			responseChannel <- dhcpResponse{
				error: fmt.Errorf(
					"%s: ignoring response with no valid router address",
					iface.Name)}
			return
		}
		responseChannel <- dhcpResponse{name: iface.Name, packet: packet}
		return
	}
}

func logDhcpPacket(params Params, ifName string, packet dhcp4.Packet,
	options dhcp4.Options) (string, error) {
	if err := os.MkdirAll(params.LogDirectory,
		fsutil.DirPerms); err != nil {
		return "", err
	}
	// Brute-force way to create the next log directory.
	var logdir string
	for count := 0; true; count++ {
		if count > 100 {
			return "", fmt.Errorf(
				"reached DHCP logging limit: empty out: %s",
				params.LogDirectory)
		}
		logdir = fmt.Sprintf("%s/%d", params.LogDirectory, count)
		if err := os.Mkdir(logdir, fsutil.DirPerms); err != nil {
			if os.IsExist(err) {
				continue
			}
			return "", err
		}
		break
	}
	err := os.WriteFile(filepath.Join(logdir, "interface"), []byte(ifName),
		fsutil.PublicFilePerms)
	if err != nil {
		return "", err
	}
	if file, err := os.Create(filepath.Join(logdir, "packet")); err != nil {
		return "", err
	} else {
		file.Write(packet)
		file.Close()
	}
	optionsFile, err := os.Create(filepath.Join(logdir, "options"))
	if err != nil {
		return "", err
	}
	defer optionsFile.Close()
	writer := bufio.NewWriter(optionsFile)
	defer writer.Flush()
	for code, value := range options {
		stringCode := dhcp.OptionCode(code).String()
		fmt.Fprintf(writer, "Code: %3d/%s\n", code, stringCode)
		fmt.Fprintf(writer, "  value: %#x%s\n", value, formatText(value))
	}
	return logdir, nil
}

func formatText(data []byte) string {
	for _, ch := range data {
		if ch < 0x20 || ch > 0x7e {
			return ""
		}
	}
	return "(\"" + string(data) + "\")"
}

// isValidHostname returns true if the specified hostname contains valid
// characters.
func isValidHostname(hostname []byte) bool {
	for _, ch := range hostname {
		if (ch >= 'A' && ch <= 'Z') ||
			(ch >= 'a' && ch <= 'z') ||
			(ch >= '0' && ch <= '9') ||
			(ch == '-') {
			continue
		}
		return false
	}
	return len(hostname) > 0
}

func hostnameFromDhcp(options dhcp4.Options, cmdlineFile string) string {
	if hostname := options[dhcp4.OptionHostName]; len(hostname) > 0 {
		hostname = bytes.ToLower(hostname)
		if isValidHostname(hostname) {
			return string(hostname)
		}
	}
	if data, err := os.ReadFile(cmdlineFile); err == nil {
		if hostname := getVariableFromBytes(data,
			"hostname"); len(hostname) > 0 {
			hostname = bytes.ToLower(hostname)
			if isValidHostname(hostname) {
				return string(hostname)
			}
		}
	}
	return ""
}

// getVariableFromBytes will search for a "name=value" tuple in a
// space separated slice of bytes. It will return the value if found.
func getVariableFromBytes(data []byte, name string) []byte {
	equals := []byte("=")
	nameBytes := []byte(name)
	for _, arg := range bytes.Fields(data) {
		if fields := bytes.Split(arg, equals); len(fields) == 2 {
			if bytes.Equal(fields[0], nameBytes) {
				return fields[1]
			}
		}
	}
	return nil
}

func writeTargetConfig(targetRoot, ifName, hostname string,
	logger log.DebugLogger) error {
	networkDir := filepath.Join(targetRoot, "etc", "network")
	if err := os.MkdirAll(networkDir, fsutil.DirPerms); err != nil {
		return err
	}
	buffer := &strings.Builder{}
	fmt.Fprintln(buffer, "auto lo")
	fmt.Fprintln(buffer, "iface lo inet loopback")
	fmt.Fprintln(buffer)
	fmt.Fprintf(buffer, "auto %s\n", ifName)
	fmt.Fprintf(buffer, "iface %s inet dhcp\n", ifName)
	err := os.WriteFile(filepath.Join(networkDir, "interfaces"),
		[]byte(buffer.String()), fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	logger.Debugf(1, "wrote interfaces file for: %s\n", ifName)
	if hostname != "" {
		err := os.WriteFile(filepath.Join(targetRoot, "etc", "hostname"),
			[]byte(hostname+"\n"), fsutil.PublicFilePerms)
		if err != nil {
			return err
		}
		logger.Debugf(1, "wrote hostname: %s\n", hostname)
	}
	return nil
}
