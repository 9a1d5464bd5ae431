/*
Package html provides helpers for the status pages served by the
installer's embedded HTTP server.
*/
package html

import (
	"io"
	"net/http"
)

type HtmlWriter interface {
	WriteHtml(writer io.Writer)
}

// HandleFunc registers a handler on the default ServeMux, with security
// headers set on all responses.
func HandleFunc(pattern string,
	handler func(w http.ResponseWriter, req *http.Request)) {
	handleFunc(http.DefaultServeMux, pattern, handler)
}

// ServeMuxHandleFunc registers a handler on the specified ServeMux, with
// security headers set on all responses.
func ServeMuxHandleFunc(serveMux *http.ServeMux, pattern string,
	handler func(w http.ResponseWriter, req *http.Request)) {
	handleFunc(serveMux, pattern, handler)
}

// SetSecurityHeaders will set restrictive security headers on the
// response.
func SetSecurityHeaders(w http.ResponseWriter) {
	setSecurityHeaders(w)
}

// WriteHeader will write the common HTML page header, showing the
// programme start time, uptime and memory statistics.
func WriteHeader(writer io.Writer) {
	writeHeader(writer)
}

// WriteFooter will write the common HTML page footer.
func WriteFooter(writer io.Writer) {
	writeFooter(writer)
}
