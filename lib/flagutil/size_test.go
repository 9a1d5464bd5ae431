package flagutil

import (
	"testing"
)

func TestSizeSet(t *testing.T) {
	table := []struct {
		input    string
		expected Size
	}{
		{"0", 0},
		{"512", 512},
		{"1K", 1 << 10},
		{"4KiB", 4 << 10},
		{"16M", 16 << 20},
		{"2GiB", 2 << 30},
		{"2g", 2 << 30},
		{"1TiB", 1 << 40},
	}
	for _, entry := range table {
		var size Size
		if err := size.Set(entry.input); err != nil {
			t.Errorf("Set(%q) failed: %s", entry.input, err)
			continue
		}
		if size != entry.expected {
			t.Errorf("Set(%q) = %d, expected: %d",
				entry.input, size, entry.expected)
		}
	}
}

func TestSizeSetInvalid(t *testing.T) {
	for _, input := range []string{"", "junk", "1.5G", "-1"} {
		var size Size
		if err := size.Set(input); err == nil {
			t.Errorf("Set(%q) should have failed", input)
		}
	}
}

func TestSizeString(t *testing.T) {
	table := []struct {
		input    Size
		expected string
	}{
		{0, "0B"},
		{512, "512B"},
		{2 << 30, "2GiB"},
		{16 << 20, "16MiB"},
	}
	for _, entry := range table {
		if result := entry.input.String(); result != entry.expected {
			t.Errorf("String(%d) = %s, expected: %s",
				entry.input, result, entry.expected)
		}
	}
}

func TestStringList(t *testing.T) {
	var list StringList
	if err := list.Set("a,b,c"); err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 || list[0] != "a" || list[2] != "c" {
		t.Errorf("unexpected list: %v", list)
	}
	if list.String() != "a,b,c" {
		t.Errorf("unexpected string: %s", list.String())
	}
	if err := list.Set(""); err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got: %v", list)
	}
}
