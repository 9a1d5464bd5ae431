/*
Package flagutil provides utility types for the standard flag package.
*/
package flagutil

import (
	"fmt"
	"strconv"
	"strings"
)

// A Size is an integer number of bytes that satisfies the standard library
// flag.Value interface. Suffixes such as "KiB", "MiB", "GiB" and "TiB"
// (and the short forms "K", "M", "G", "T") are supported when setting, and
// denote binary multiples.
type Size uint64

func (size *Size) String() string {
	value := uint64(*size)
	switch {
	case value >= 1<<40 && value&(1<<40-1) == 0:
		return strconv.FormatUint(value>>40, 10) + "TiB"
	case value >= 1<<30 && value&(1<<30-1) == 0:
		return strconv.FormatUint(value>>30, 10) + "GiB"
	case value >= 1<<20 && value&(1<<20-1) == 0:
		return strconv.FormatUint(value>>20, 10) + "MiB"
	case value >= 1<<10 && value&(1<<10-1) == 0:
		return strconv.FormatUint(value>>10, 10) + "KiB"
	}
	return strconv.FormatUint(value, 10) + "B"
}

func (size *Size) Set(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("empty size")
	}
	multiplier := uint64(1)
	upper := strings.ToUpper(strings.TrimSuffix(
		strings.TrimSuffix(strings.ToUpper(value), "B"), "I"))
	switch {
	case strings.HasSuffix(upper, "K"):
		multiplier = 1 << 10
		upper = upper[:len(upper)-1]
	case strings.HasSuffix(upper, "M"):
		multiplier = 1 << 20
		upper = upper[:len(upper)-1]
	case strings.HasSuffix(upper, "G"):
		multiplier = 1 << 30
		upper = upper[:len(upper)-1]
	case strings.HasSuffix(upper, "T"):
		multiplier = 1 << 40
		upper = upper[:len(upper)-1]
	}
	number, err := strconv.ParseUint(strings.TrimSpace(upper), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid size: %s", value)
	}
	*size = Size(number * multiplier)
	return nil
}
