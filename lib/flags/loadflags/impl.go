package loadflags

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/Cloud-Foundations/zfs-installer/lib/fsutil"
)

func loadFlags(dirname string) error {
	err := loadFlagsFromFile(filepath.Join(dirname, "flags.default"))
	if err != nil {
		return err
	}
	return loadFlagsFromFile(filepath.Join(dirname, "flags.extra"))
}

func loadFlagsFromFile(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()
	lines, err := fsutil.ReadLines(file)
	if err != nil {
		return err
	}
	for _, line := range lines {
		if line[0] == ';' {
			continue
		}
		splitLine := strings.SplitN(line, "=", 2)
		if len(splitLine) < 2 {
			return errors.New("bad line, cannot split name from value: " +
				line)
		}
		name := strings.TrimSpace(splitLine[0])
		if strings.Count(name, " ") != 0 {
			return errors.New("bad line, name has whitespace: " + line)
		}
		value := strings.TrimSpace(splitLine[1])
		if err := flag.CommandLine.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}
