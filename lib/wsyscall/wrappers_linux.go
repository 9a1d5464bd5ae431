package wsyscall

import (
	"syscall"
)

const ms_bind = syscall.MS_BIND

func mount(source string, target string, fstype string, flags uintptr,
	data string) error {
	return syscall.Mount(source, target, fstype, flags, data)
}

func sync() error {
	syscall.Sync()
	return nil
}

func unmount(target string, flags int) error {
	return syscall.Unmount(target, flags)
}
