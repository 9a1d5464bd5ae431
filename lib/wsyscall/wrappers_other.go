//go:build !linux

package wsyscall

import (
	"syscall"
)

const ms_bind = 0

func mount(source string, target string, fstype string, flags uintptr,
	data string) error {
	return syscall.ENOTSUP
}

func sync() error {
	return syscall.ENOTSUP
}

func unmount(target string, flags int) error {
	return syscall.ENOTSUP
}
