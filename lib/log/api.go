/*
Package log defines the logging interfaces used throughout the installer.

The interfaces are satisfied by the log.Logger type from the standard
library and by the richer implementations in the sub-packages.
*/
package log

// Logger defines a basic logging interface. It is a subset of the methods
// provided by the log.Logger type from the standard library, so that type
// may be used directly.
type Logger interface {
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
	Fatalln(v ...interface{})
	Panic(v ...interface{})
	Panicf(format string, v ...interface{})
	Panicln(v ...interface{})
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// DebugLogger defines a logging interface with additional methods for
// debug logs which are filtered by a verbosity level: a debug message is
// logged only if the logger debug level is at least the message level.
type DebugLogger interface {
	Logger
	Debug(level uint8, v ...interface{})
	Debugf(level uint8, format string, v ...interface{})
	Debugln(level uint8, v ...interface{})
}

// FlushableLogger defines a DebugLogger that can be flushed.
type FlushableLogger interface {
	DebugLogger
	Flush() error
}
