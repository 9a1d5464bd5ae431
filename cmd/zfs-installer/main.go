//go:build linux
// +build linux

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	stdlog "log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/Cloud-Foundations/tricorder/go/tricorder"
	"github.com/Cloud-Foundations/zfs-installer/lib/flags/commands"
	"github.com/Cloud-Foundations/zfs-installer/lib/flags/loadflags"
	"github.com/Cloud-Foundations/zfs-installer/lib/flagutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/fsutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"github.com/Cloud-Foundations/zfs-installer/lib/log/debuglogger"
	"github.com/Cloud-Foundations/zfs-installer/lib/logbuf"
	"github.com/Cloud-Foundations/zfs-installer/lib/storage"
	"github.com/Cloud-Foundations/zfs-installer/lib/wsyscall"
)

const logfile = "/var/log/zfs-installer/latest"

type flusher interface {
	Flush() error
}

type logWriter struct {
	writer io.Writer
}

var (
	bootEnvironment = flag.String("bootEnvironment", "devuan",
		"Name of the boot environment dataset to create")
	bootMode = flag.String("bootMode", "auto",
		"Firmware boot mode: auto, bios or efi")
	bootPartitionSize = flagutil.Size(2 << 30)
	bootPool          = flag.String("bootPool", "bpool",
		"Name of the boot pool")
	configFile = flag.String("configFile",
		"/etc/zfs-installer/config.json",
		"Name of optional installation configuration file")
	disks  = flagutil.StringList{}
	dryRun = flag.Bool("dryRun", ifUnprivileged(),
		"If true, do not make changes")
	efiPartitionSize = flagutil.Size(512 << 20)
	includePackages  = flagutil.StringList{}
	logDebugLevel    = flag.Int("logDebugLevel", -1, "Debug log level")
	mainPool         = flag.String("mainPool", "rpool",
		"Name of the main pool")
	mirror = flag.String("mirror", "",
		"Package mirror URL passed to debootstrap")
	mountPoint = flag.String("mountPoint", "/mnt",
		"Mount point for new root file-system")
	placeholderDirectory = flag.String("placeholderDirectory",
		"/var/tmp/zfs-installer",
		"Directory for sparse files standing in for missing disks")
	portNum = flag.Uint("portNum", 6978,
		"Port number to allocate and listen on for HTTP")
	raidLevel    = storage.RaidMirror
	shellCommand = flagutil.StringList{"/bin/busybox", "sh", "-i"}
	skipNetwork  = flag.Bool("skipNetwork", false,
		"If true, do not update target network configuration")
	suite = flag.String("suite", "daedalus",
		"Distribution release to bootstrap")
	swapSize       = flagutil.Size(0)
	sysfsDirectory = flag.String("sysfsDirectory", "/sys",
		"Directory where sysfs is mounted")
	tftpDirectory = flag.String("tftpDirectory", "/tftpdata",
		"Directory containing (possibly injected) TFTP data")
	tftpServerHostname = flag.String("tftpServerHostname", "",
		"Hostname of TFTP server (overrides DHCP response)")

	processStartTime = time.Now()
)

func init() {
	flag.Var(&bootPartitionSize, "bootPartitionSize",
		"Size of the boot pool partition on each disk")
	flag.Var(&disks, "disks",
		"Comma separated disk devices, \"missing\" for absent disks")
	flag.Var(&efiPartitionSize, "efiPartitionSize",
		"Size of the EFI system partition")
	flag.Var(&includePackages, "includePackages",
		"Comma separated extra packages passed to debootstrap")
	flag.Var(&raidLevel, "raidLevel",
		"RAID level for the main pool: stripe, mirror, raidz1/2/3")
	flag.Var(&shellCommand, "shellCommand",
		"Shell command with optional comma separated arguments")
	flag.Var(&swapSize, "swapSize",
		"Size of the swap partition on each disk (0 to disable)")
}

func printUsage() {
	w := flag.CommandLine.Output()
	fmt.Fprintln(w,
		"Usage: zfs-installer [flags...] [command [args...]]")
	fmt.Fprintln(w, "Common flags:")
	flag.PrintDefaults()
	fmt.Fprintln(w, "Commands:")
	commands.PrintCommands(w, subcommands)
}

var subcommands = []commands.Command{
	{Command: "bootstrap", CmdFunc: bootstrapSubcommand},
	{Command: "copy-configuration", CmdFunc: copyConfigurationSubcommand},
	{Command: "create-datasets", CmdFunc: createDatasetsSubcommand},
	{Command: "create-pools", CmdFunc: createPoolsSubcommand},
	{Command: "dhcp-request", CmdFunc: dhcpRequestSubcommand},
	{Command: "generate-host-keys", CmdFunc: generateHostKeysSubcommand},
	{Command: "install", CmdFunc: installSubcommand},
	{Command: "list-drives", CmdFunc: listDrivesSubcommand},
	{Command: "load-configuration-from-tftp",
		CmdFunc: loadConfigurationFromTftpSubcommand},
	{Command: "partition-disks", CmdFunc: partitionDisksSubcommand},
	{Command: "plan-storage", CmdFunc: planStorageSubcommand},
	{Command: "target-setup", CmdFunc: targetSetupSubcommand},
}

func copyLogs(logFlusher flusher) error {
	logFlusher.Flush()
	logdir := filepath.Join(*mountPoint, "var", "log", "zfs-installer")
	if err := os.MkdirAll(logdir, fsutil.DirPerms); err != nil {
		return err
	}
	err := fsutil.CopyFile(filepath.Join(logdir, "install.log"), logfile,
		fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	// Also carry the DHCP packet logs and any rotated logs across.
	return fsutil.CopyFilesTree(logdir, "/var/log/zfs-installer")
}

func createLogger() (*logbuf.LogBuffer, log.DebugLogger, error) {
	if err := os.MkdirAll("/var/log/zfs-installer",
		fsutil.DirPerms); err != nil {
		return nil, nil, err
	}
	options := logbuf.GetStandardOptions()
	options.AlsoLogToStderr = true
	logBuffer := logbuf.NewWithOptions(options)
	logger := debuglogger.New(stdlog.New(&logWriter{logBuffer}, "", 0))
	logger.SetLevel(int16(*logDebugLevel))
	return logBuffer, logger, nil
}

func ifUnprivileged() bool {
	if os.Geteuid() != 0 {
		return true
	}
	return false
}

func runDaemon() error {
	tricorder.RegisterFlags()
	logBuffer, logger, err := createLogger()
	if err != nil {
		return err
	}
	defer logBuffer.Flush()
	runOnSignal(syscall.SIGHUP, func() {
		sighupHandler(logger)
	})
	go runShellOnConsole(logger)
	AddHtmlWriter(logBuffer)
	if err := startServer(*portNum, logBuffer, logger); err != nil {
		logger.Printf("cannot start server: %s\n", err)
	}
	err = install(logBuffer, logger)
	if *dryRun {
		if err != nil {
			logger.Printf("error installing: %s\n", err)
		}
		logger.Println("dry run: sleeping indefinitely instead of rebooting")
		select {}
	}
	if err != nil {
		logger.Printf("error installing: %s\n", err)
		logger.Println("waiting 5m before rebooting")
		time.Sleep(5 * time.Minute)
	} else {
		logger.Println("waiting 5s before rebooting")
		time.Sleep(5 * time.Second)
	}
	if err := wsyscall.Sync(); err != nil {
		logger.Printf("error syncing: %s\n", err)
	}
	if err := syscall.Reboot(syscall.LINUX_REBOOT_CMD_RESTART); err != nil {
		logger.Fatalf("error rebooting: %s\n", err)
	}
	return nil
}

func processCommand(args []string) {
	if len(args) < 1 {
		if err := runDaemon(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	logger := debuglogger.New(stdlog.New(os.Stderr, "", 0))
	logger.SetLevel(int16(*logDebugLevel))
	os.Exit(commands.RunCommands(subcommands, printUsage, logger))
}

func main() {
	if err := loadflags.LoadForDaemon("zfs-installer"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Usage = printUsage
	flag.Parse()
	processCommand(flag.Args())
}

func runOnSignal(signum os.Signal, fn func()) {
	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, signum)
	go func() {
		<-signalChannel
		fn()
	}()
}

func sighupHandler(logger log.Logger) {
	logger.Printf("caught SIGHUP: re-execing with: %v\n", os.Args)
	var rlimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rlimit); err != nil {
		logger.Printf("error getting open file limit: %s\n", err)
		rlimit.Cur = 1024
	}
	for fd := 3; fd < int(rlimit.Cur); fd++ {
		syscall.CloseOnExec(fd)
	}
	if err := syscall.Exec(os.Args[0], os.Args, os.Environ()); err != nil {
		logger.Printf("unable to Exec: %s: %s\n", os.Args[0], err)
	}
}

func (w *logWriter) Write(p []byte) (int, error) {
	buffer := &bytes.Buffer{}
	fmt.Fprintf(buffer, "[%7.3f] ", time.Since(processStartTime).Seconds())
	buffer.Write(p)
	return w.writer.Write(buffer.Bytes())
}
