/*
Package commands implements simple subcommand dispatch on top of the
standard flag package.
*/
package commands

import (
	"io"

	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

type CommandFunc func([]string, log.DebugLogger) error

type Command struct {
	Command string
	Args    string
	MinArgs int
	MaxArgs int
	CmdFunc CommandFunc
}

// PrintCommands will write the list of commands (and their argument
// descriptions) to writer.
func PrintCommands(writer io.Writer, commands []Command) {
	printCommands(writer, commands)
}

// RunCommands will find the command specified by the first remaining
// command-line argument and run it with the remaining arguments. It
// returns the exit code for the programme.
func RunCommands(commands []Command, printUsage func(),
	logger log.DebugLogger) int {
	return runCommands(commands, printUsage, logger)
}
