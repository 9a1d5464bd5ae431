/*
Package logbuf provides a circular buffer for logs, with optional spooling
to a log directory and exposure via HTTP.
*/
package logbuf

import (
	"flag"
	"io"
	"net/http"
	"sync"
)

var (
	alsoLogToStderr = flag.Bool("alsoLogToStderr", false,
		"If true, also write logs to stderr")
	logbufLines = flag.Uint("logbufLines", 1024,
		"Number of lines to store in the log buffer")
	logDir = flag.String("logDir", "/var/log/zfs-installer",
		"Directory to write log data to. If empty, no logs are written")
)

type Options struct {
	AlsoLogToStderr bool
	Directory       string
	HttpServeMux    *http.ServeMux
	MaxBufferLines  uint // Minimum: 100.
}

// LogBuffer is a circular log buffer. It satisfies the io.Writer
// interface so that it may be passed to log.New from the standard
// library.
type LogBuffer struct {
	options       Options
	rwMutex       sync.RWMutex // Protect everything below.
	buffer        []string
	nextLineIndex uint
	wrapped       bool
	file          writeFlushCloser
	panicLogfile  *string // Name of last invocation logfile if it panicked.
}

type writeFlushCloser interface {
	io.WriteCloser
	Flush() error
}

// GetStandardOptions will return the standard options, with option values
// taken from the command-line flags. This function should be called after
// flag.Parse.
func GetStandardOptions() Options {
	return Options{
		AlsoLogToStderr: *alsoLogToStderr,
		Directory:       *logDir,
		HttpServeMux:    http.DefaultServeMux,
		MaxBufferLines:  *logbufLines,
	}
}

// New returns a new LogBuffer with the standard options.
func New() *LogBuffer {
	return newLogBuffer(GetStandardOptions())
}

// NewWithOptions returns a new LogBuffer with the specified options.
func NewWithOptions(options Options) *LogBuffer {
	return newLogBuffer(options)
}

// Dump will write the contents of the log buffer to w, with a prefix and
// postfix string written before and after each line. If recentFirst is
// true, the most recently written lines are written first.
func (lb *LogBuffer) Dump(writer io.Writer, prefix, postfix string,
	recentFirst bool) error {
	return lb.dump(writer, prefix, postfix, recentFirst)
}

// Flush flushes the open log file (if any). This should only be called
// just prior to process termination.
func (lb *LogBuffer) Flush() error {
	return lb.flush()
}

// Write will write len(p) bytes from p to the log buffer. It always
// returns len(p), nil.
func (lb *LogBuffer) Write(p []byte) (int, error) {
	return lb.write(p)
}

// WriteHtml will write the contents of the log buffer to writer, with
// appropriate HTML markup.
func (lb *LogBuffer) WriteHtml(writer io.Writer) {
	lb.writeHtml(writer)
}
