package logbuf

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/Cloud-Foundations/zfs-installer/lib/html"
	_ "github.com/Cloud-Foundations/tricorder/go/healthserver"
)

func (lb *LogBuffer) addHttpHandlers() {
	if lb.options.HttpServeMux == nil {
		return
	}
	html.ServeMuxHandleFunc(lb.options.HttpServeMux, "/logs",
		lb.httpListHandler)
	html.ServeMuxHandleFunc(lb.options.HttpServeMux, "/logs/dump",
		lb.httpDumpHandler)
	html.ServeMuxHandleFunc(lb.options.HttpServeMux, "/logs/showLast",
		lb.httpShowLastHandler)
}

func (lb *LogBuffer) httpDumpHandler(w http.ResponseWriter,
	req *http.Request) {
	recentFirst := req.URL.Query().Has("recentFirst")
	name := req.URL.Query().Get("name")
	writer := bufio.NewWriter(w)
	defer writer.Flush()
	if name == "" || name == "latest" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		lb.dump(writer, "", "", recentFirst)
		return
	}
	if lb.options.Directory == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	file, err := os.Open(path.Join(lb.options.Directory,
		path.Base(path.Clean(name))))
	if err != nil {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprintln(w, err)
		return
	}
	defer file.Close()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	reader := bufio.NewReader(file)
	reader.WriteTo(writer)
}

func (lb *LogBuffer) httpListHandler(w http.ResponseWriter,
	req *http.Request) {
	writer := bufio.NewWriter(w)
	defer writer.Flush()
	fmt.Fprintln(writer, "<title>installer logs</title>")
	fmt.Fprintln(writer, "<body>")
	html.WriteHeader(writer)
	fmt.Fprintln(writer,
		`Show <a href="logs/dump?name=latest">current logs</a><br>`)
	fmt.Fprintln(writer,
		`Show last: <a href="logs/showLast?1m">minute</a>`)
	fmt.Fprintln(writer, `<a href="logs/showLast?10m">10 min</a>`)
	fmt.Fprintln(writer, `<a href="logs/showLast?1h">hour</a><br>`)
	if lb.panicLogfile != nil {
		fmt.Fprintf(writer,
			"Previous invocation <a href=\"logs/dump?name=%s\">panicked</a><br>\n",
			*lb.panicLogfile)
	}
	if lb.options.Directory != "" {
		lb.listLogfiles(writer)
	}
	html.WriteFooter(writer)
}

func (lb *LogBuffer) httpShowLastHandler(w http.ResponseWriter,
	req *http.Request) {
	for query := range req.URL.Query() {
		if duration, err := time.ParseDuration(query); err == nil {
			lb.showRecent(w, duration)
			return
		}
	}
	lb.showRecent(w, 10*time.Minute)
}

func (lb *LogBuffer) listLogfiles(writer *bufio.Writer) {
	file, err := os.Open(lb.options.Directory)
	if err != nil {
		return
	}
	names, err := file.Readdirnames(-1)
	file.Close()
	if err != nil {
		return
	}
	fmt.Fprintln(writer, "Logfiles:<br>")
	for _, name := range names {
		if name == latestSymlink || name == panicLogSymlink {
			continue
		}
		fmt.Fprintf(writer, "<a href=\"logs/dump?name=%s\">%s</a><br>\n",
			name, name)
	}
}

// showRecent writes buffered lines whose timestamp prefix parses and is
// within duration of now. Lines without a parsable timestamp are shown.
func (lb *LogBuffer) showRecent(w http.ResponseWriter,
	duration time.Duration) {
	earliest := time.Now().Add(-duration)
	writer := bufio.NewWriter(w)
	defer writer.Flush()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, line := range lb.snapshot(false) {
		if len(line) >= 19 {
			if timestamp, err := time.ParseInLocation("2006/01/02 15:04:05",
				line[:19], time.Local); err == nil {
				if timestamp.Before(earliest) {
					continue
				}
			}
		}
		fmt.Fprintln(writer, line)
	}
}
