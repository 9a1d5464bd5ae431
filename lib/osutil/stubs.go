//go:build !linux

package osutil

import (
	"syscall"
)

type runnerType struct {
	params Params
}

func (r *runnerType) Output(name string, args ...string) ([]byte, error) {
	return nil, syscall.ENOTSUP
}

func (r *runnerType) Run(name string, args ...string) error {
	return syscall.ENOTSUP
}
