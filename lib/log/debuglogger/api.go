/*
Package debuglogger wraps a log.Logger from the standard library, adding
level-filtered debug logging methods so that it satisfies the
log.DebugLogger interface defined in this project.
*/
package debuglogger

import (
	stdlog "log"

	"github.com/Cloud-Foundations/zfs-installer/lib/log"
)

type Logger struct {
	level  int16
	logger *stdlog.Logger
}

// New will create a Logger from a standard library logger, with the debug
// level initialised to -1 (no debug logs emitted).
func New(logger *stdlog.Logger) *Logger {
	return &Logger{level: -1, logger: logger}
}

// Upgrade will return a DebugLogger. If logger already satisfies the
// interface it is returned unchanged, otherwise it is wrapped by a Logger
// with debug level -1.
func Upgrade(logger log.Logger) log.DebugLogger {
	if debugLogger, ok := logger.(log.DebugLogger); ok {
		return debugLogger
	}
	return &loggerWrapper{logger}
}

// Debug will log to the underlying logger if the debug level of the
// Logger is at least level.
func (l *Logger) Debug(level uint8, v ...interface{}) {
	if l.level >= int16(level) {
		l.logger.Print(v...)
	}
}

// Debugf is similar to Debug, with formatting support.
func (l *Logger) Debugf(level uint8, format string, v ...interface{}) {
	if l.level >= int16(level) {
		l.logger.Printf(format, v...)
	}
}

// Debugln is similar to Debug.
func (l *Logger) Debugln(level uint8, v ...interface{}) {
	if l.level >= int16(level) {
		l.logger.Println(v...)
	}
}

// GetLevel returns the current debug level of the Logger.
func (l *Logger) GetLevel() int16 {
	return l.level
}

// SetLevel sets the debug level of the Logger. Negative levels disable
// debug logging entirely.
func (l *Logger) SetLevel(maxLevel int16) {
	l.level = maxLevel
}

func (l *Logger) Fatal(v ...interface{})                 { l.logger.Fatal(v...) }
func (l *Logger) Fatalf(format string, v ...interface{}) { l.logger.Fatalf(format, v...) }
func (l *Logger) Fatalln(v ...interface{})               { l.logger.Fatalln(v...) }
func (l *Logger) Panic(v ...interface{})                 { l.logger.Panic(v...) }
func (l *Logger) Panicf(format string, v ...interface{}) { l.logger.Panicf(format, v...) }
func (l *Logger) Panicln(v ...interface{})               { l.logger.Panicln(v...) }
func (l *Logger) Print(v ...interface{})                 { l.logger.Print(v...) }
func (l *Logger) Printf(format string, v ...interface{}) { l.logger.Printf(format, v...) }
func (l *Logger) Println(v ...interface{})               { l.logger.Println(v...) }
