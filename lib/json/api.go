/*
Package json reads and writes JSON data, ignoring comment lines when
reading so that configuration files may be annotated.
*/
package json

import (
	"io"
	"os"
)

// Read will read JSON data from reader and write the decoded data to
// value. If the JSON data are newline separated, lines beginning with
// "#", "//" or "!" are treated as comments and ignored.
func Read(reader io.Reader, value interface{}) error {
	return read(reader, value)
}

// ReadFromFile will read JSON data from the specified file and write the
// decoded data to value. Comment lines are ignored as for Read.
func ReadFromFile(filename string, value interface{}) error {
	return readFromFile(filename, value)
}

// WriteToFile will write value as indented JSON data to the specified
// file, atomically.
func WriteToFile(filename string, perm os.FileMode, indent string,
	value interface{}) error {
	return writeToFile(filename, perm, indent, value)
}

// WriteWithIndent will write value as indented JSON data to w.
func WriteWithIndent(w io.Writer, indent string, value interface{}) error {
	return writeWithIndent(w, indent, value)
}
