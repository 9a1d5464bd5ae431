package flagutil

import (
	"strings"
)

// A StringList is a slice of strings that satisfies the standard library
// flag.Value interface. The flag value is a comma separated list.
type StringList []string

func (sl *StringList) String() string {
	return strings.Join(*sl, ",")
}

func (sl *StringList) Set(value string) error {
	newList := make(StringList, 0)
	if value != "" {
		newList = strings.Split(value, ",")
	}
	*sl = newList
	return nil
}
