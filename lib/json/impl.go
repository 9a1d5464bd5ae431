package json

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
)

func read(reader io.Reader, value interface{}) error {
	filtered := &bytes.Buffer{}
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<24)
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") ||
			strings.HasPrefix(trimmed, "//") ||
			strings.HasPrefix(trimmed, "!") {
			continue
		}
		filtered.WriteString(line)
		filtered.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return json.NewDecoder(filtered).Decode(value)
}

func readFromFile(filename string, value interface{}) error {
	file, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return read(file, value)
}

func writeToFile(filename string, perm os.FileMode, indent string,
	value interface{}) error {
	tmpFilename := filename + "~"
	file, err := os.OpenFile(tmpFilename,
		os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpFilename)
	defer file.Close()
	writer := bufio.NewWriter(file)
	if err := writeWithIndent(writer, indent, value); err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFilename, filename)
}

func writeWithIndent(w io.Writer, indent string, value interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", indent)
	return encoder.Encode(value)
}
