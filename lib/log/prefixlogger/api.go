/*
Package prefixlogger wraps a log.DebugLogger, prefixing all messages with
a fixed string. It is useful when multiple goroutines share a logger, such
as per-interface DHCP probes.
*/
package prefixlogger

import (
	"fmt"

	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

type Logger struct {
	prefix string
	logger log.DebugLogger
}

// New will create a Logger which prefixes all messages with prefix before
// passing them to logger.
func New(prefix string, logger log.DebugLogger) *Logger {
	return &Logger{prefix, logger}
}

func (l *Logger) Debug(level uint8, v ...interface{}) {
	l.logger.Debug(level, l.prefix+fmt.Sprint(v...))
}

func (l *Logger) Debugf(level uint8, format string, v ...interface{}) {
	l.logger.Debugf(level, l.prefix+format, v...)
}

func (l *Logger) Debugln(level uint8, v ...interface{}) {
	l.logger.Debug(level, l.prefix+fmt.Sprintln(v...))
}

func (l *Logger) Fatal(v ...interface{}) {
	l.logger.Fatal(l.prefix + fmt.Sprint(v...))
}

func (l *Logger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatalf(l.prefix+format, v...)
}

func (l *Logger) Fatalln(v ...interface{}) {
	l.logger.Fatal(l.prefix + fmt.Sprintln(v...))
}

func (l *Logger) Panic(v ...interface{}) {
	l.logger.Panic(l.prefix + fmt.Sprint(v...))
}

func (l *Logger) Panicf(format string, v ...interface{}) {
	l.logger.Panicf(l.prefix+format, v...)
}

func (l *Logger) Panicln(v ...interface{}) {
	l.logger.Panic(l.prefix + fmt.Sprintln(v...))
}

func (l *Logger) Print(v ...interface{}) {
	l.logger.Print(l.prefix + fmt.Sprint(v...))
}

func (l *Logger) Printf(format string, v ...interface{}) {
	l.logger.Printf(l.prefix+format, v...)
}

func (l *Logger) Println(v ...interface{}) {
	l.logger.Print(l.prefix + fmt.Sprintln(v...))
}
