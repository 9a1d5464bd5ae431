package html

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/Cloud-Foundations/zfs-installer/lib/format"
)

var startTime = time.Now()

func handleFunc(serveMux *http.ServeMux, pattern string,
	handler func(w http.ResponseWriter, req *http.Request)) {
	serveMux.HandleFunc(pattern,
		func(w http.ResponseWriter, req *http.Request) {
			setSecurityHeaders(w)
			handler(w, req)
		})
}

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-XSS-Protection", "1")
	w.Header().Set("Content-Security-Policy",
		"default-src 'self' ;style-src 'self' 'unsafe-inline'")
	w.Header().Set("X-Content-Type-Options", "nosniff")
}

func writeFooter(writer io.Writer) {
	fmt.Fprintln(writer, "</body>")
	fmt.Fprintln(writer, "</html>")
}

func writeHeader(writer io.Writer) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	hostname, _ := os.Hostname()
	fmt.Fprintf(writer, "Hostname: %s<br>\n", hostname)
	fmt.Fprintf(writer, "Started at: %s, up for: %s<br>\n",
		startTime.Format(format.TimeFormatSeconds),
		format.Duration(time.Since(startTime)))
	fmt.Fprintf(writer, "Number of goroutines: %d<br>\n",
		runtime.NumGoroutine())
	fmt.Fprintf(writer, "Memory: allocated: %s, system: %s<br>\n",
		format.FormatBytes(memStats.Alloc), format.FormatBytes(memStats.Sys))
}
