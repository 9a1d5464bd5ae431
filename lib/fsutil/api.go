/*
Package fsutil provides utilities for managing file-systems and files.
*/
package fsutil

import (
	"io"
	"os"
	"time"

	"github.com/Cloud-Foundations/zfs-installer/lib/wsyscall"
)

const (
	DirPerms = wsyscall.S_IRWXU | wsyscall.S_IRGRP | wsyscall.S_IXGRP |
		wsyscall.S_IROTH | wsyscall.S_IXOTH
	PrivateDirPerms  = wsyscall.S_IRWXU
	PrivateFilePerms = wsyscall.S_IRUSR | wsyscall.S_IWUSR
	PublicFilePerms  = PrivateFilePerms | wsyscall.S_IRGRP | wsyscall.S_IROTH
)

// CopyFile will create a new file, copy data from the sourceFilename to a
// tmpfile and then atomically rename the tmpfile to destFilename, ensuring
// that the file never has incomplete data.
// If there are any errors, then destFilename is unchanged.
// CopyFile is not safe to call concurrently for the same file.
func CopyFile(destFilename, sourceFilename string, mode os.FileMode) error {
	return copyFile(destFilename, sourceFilename, mode)
}

// CopyToFile will create a new file, write length bytes from reader to a
// tmpfile and then atomically rename the tmpfile to destFilename, ensuring
// that the file never has incomplete data.
// If length is zero all remaining bytes from reader are written. If there
// are any errors, then destFilename is unchanged.
// CopyToFile is not safe to call concurrently for the same file.
func CopyToFile(destFilename string, perm os.FileMode, reader io.Reader,
	length uint64) error {
	return copyToFile(destFilename, perm, reader, length)
}

// CopyTree will copy a directory tree. Regular files, directories and
// symlinks are copied. A missing sourceDir is not an error.
func CopyTree(destDir, sourceDir string) error {
	return copyTree(destDir, sourceDir, true, CopyFile)
}

// CopyFilesTree will copy a directory tree of regular files. Other inode
// types are ignored.
func CopyFilesTree(destDir, sourceDir string) error {
	return copyTree(destDir, sourceDir, false, CopyFile)
}

// MakeSparseFile will create (or truncate) a sparse file of the specified
// size in bytes. No blocks are allocated.
func MakeSparseFile(filename string, size uint64, perm os.FileMode) error {
	return makeSparseFile(filename, size, perm)
}

// ReadLines will read lines from a reader. Comment lines (i.e. lines
// beginning with '#') are skipped, as are empty lines. Leading and
// trailing whitespace are removed.
func ReadLines(reader io.Reader) ([]string, error) {
	return readLines(reader)
}

// WaitForBlockAvailable will wait until the specified pathname exists and
// is a block device, or until the timeout is reached. It returns the
// number of iterations and the number of successful opens.
// The device is opened rather than just tested for existence, because an
// open may be needed to trigger dynamic device node creation.
func WaitForBlockAvailable(pathname string, timeout time.Duration) (
	uint, uint, error) {
	return waitForBlockAvailable(pathname, timeout)
}
