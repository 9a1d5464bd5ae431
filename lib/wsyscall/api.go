/*
Package wsyscall provides wrapped syscall definitions, so that common
constants and calls may be used without build-tagged files in every
importing package.
*/
package wsyscall

const (
	S_IRUSR = 0x100
	S_IWUSR = 0x80
	S_IXUSR = 0x40
	S_IRGRP = 0x20
	S_IWGRP = 0x10
	S_IXGRP = 0x8
	S_IROTH = 0x4
	S_IWOTH = 0x2
	S_IXOTH = 0x1

	S_IRWXU = S_IRUSR | S_IWUSR | S_IXUSR

	MS_BIND = ms_bind
)

// Mount is a wrapper for the mount(2) system call.
func Mount(source string, target string, fstype string, flags uintptr,
	data string) error {
	return mount(source, target, fstype, flags, data)
}

// Unmount is a wrapper for the umount2(2) system call.
func Unmount(target string, flags int) error {
	return unmount(target, flags)
}

// Sync is a wrapper for the sync(2) system call.
func Sync() error {
	return sync()
}
