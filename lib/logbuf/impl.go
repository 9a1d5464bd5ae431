package logbuf

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Cloud-Foundations/zfs-installer/lib/fsutil"
)

const (
	timeLayout      = "2006-01-02:15:04:05.999"
	latestSymlink   = "latest"
	panicLogSymlink = "last-panic"
)

type bufferedFile struct {
	file   *os.File
	writer *bufio.Writer
}

func (bf *bufferedFile) Close() error {
	if err := bf.writer.Flush(); err != nil {
		return err
	}
	return bf.file.Close()
}

func (bf *bufferedFile) Flush() error {
	return bf.writer.Flush()
}

func (bf *bufferedFile) Write(p []byte) (int, error) {
	return bf.writer.Write(p)
}

func newLogBuffer(options Options) *LogBuffer {
	if options.MaxBufferLines < 100 {
		options.MaxBufferLines = 100
	}
	logBuffer := &LogBuffer{
		options: options,
		buffer:  make([]string, options.MaxBufferLines),
	}
	if options.Directory != "" {
		if err := logBuffer.setupFileLogging(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	logBuffer.addHttpHandlers()
	return logBuffer
}

func (lb *LogBuffer) setupFileLogging() error {
	if err := os.MkdirAll(lb.options.Directory, fsutil.DirPerms); err != nil {
		return err
	}
	lb.checkLastPanic()
	filename := time.Now().Format(timeLayout)
	pathname := filepath.Join(lb.options.Directory, filename)
	file, err := os.OpenFile(pathname,
		os.O_CREATE|os.O_EXCL|os.O_WRONLY, fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	lb.file = &bufferedFile{file: file, writer: bufio.NewWriter(file)}
	symlink := filepath.Join(lb.options.Directory, latestSymlink)
	tmpSymlink := symlink + "~"
	os.Remove(tmpSymlink)
	if err := os.Symlink(filename, tmpSymlink); err == nil {
		os.Rename(tmpSymlink, symlink)
	}
	return nil
}

// checkLastPanic records the previous invocation logfile if it ended in a
// panic, so that it can be exposed via HTTP.
func (lb *LogBuffer) checkLastPanic() {
	symlink := filepath.Join(lb.options.Directory, latestSymlink)
	target, err := os.Readlink(symlink)
	if err != nil {
		return
	}
	pathname := filepath.Join(lb.options.Directory, target)
	file, err := os.Open(pathname)
	if err != nil {
		return
	}
	defer file.Close()
	var lastLine string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lastLine = line
		}
	}
	if strings.Contains(lastLine, "panic") {
		lb.panicLogfile = &target
		panicSymlink := filepath.Join(lb.options.Directory, panicLogSymlink)
		os.Remove(panicSymlink)
		os.Symlink(target, panicSymlink)
	}
}

func (lb *LogBuffer) dump(writer io.Writer, prefix, postfix string,
	recentFirst bool) error {
	lines := lb.snapshot(recentFirst)
	for _, line := range lines {
		fmt.Fprintf(writer, "%s%s%s\n", prefix, line, postfix)
	}
	return nil
}

func (lb *LogBuffer) flush() error {
	lb.rwMutex.Lock()
	defer lb.rwMutex.Unlock()
	if lb.file != nil {
		return lb.file.Flush()
	}
	return nil
}

// snapshot returns the buffered lines, oldest first unless recentFirst.
func (lb *LogBuffer) snapshot(recentFirst bool) []string {
	lb.rwMutex.RLock()
	defer lb.rwMutex.RUnlock()
	var lines []string
	if lb.wrapped {
		lines = append(lines, lb.buffer[lb.nextLineIndex:]...)
	}
	lines = append(lines, lb.buffer[:lb.nextLineIndex]...)
	if recentFirst {
		for left, right := 0, len(lines)-1; left < right; left, right =
			left+1, right-1 {
			lines[left], lines[right] = lines[right], lines[left]
		}
	}
	return lines
}

func (lb *LogBuffer) write(p []byte) (int, error) {
	if lb.options.AlsoLogToStderr {
		os.Stderr.Write(p)
	}
	lb.rwMutex.Lock()
	defer lb.rwMutex.Unlock()
	if lb.file != nil {
		lb.file.Write(p)
	}
	line := strings.TrimSuffix(string(p), "\n")
	lb.buffer[lb.nextLineIndex] = line
	lb.nextLineIndex++
	if lb.nextLineIndex >= uint(len(lb.buffer)) {
		lb.nextLineIndex = 0
		lb.wrapped = true
	}
	return len(p), nil
}

func (lb *LogBuffer) writeHtml(writer io.Writer) {
	fmt.Fprintln(writer, "Logs:<br>")
	fmt.Fprintln(writer, "<pre>")
	lb.dump(writer, "", "", false)
	fmt.Fprintln(writer, "</pre>")
}
