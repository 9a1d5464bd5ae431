package fsutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
)

func copyFile(destFilename, sourceFilename string, mode os.FileMode) error {
	if mode == 0 {
		fi, err := os.Stat(sourceFilename)
		if err != nil {
			return errors.New(sourceFilename + ": " + err.Error())
		}
		mode = fi.Mode() & os.ModePerm
	}
	sourceFile, err := os.Open(sourceFilename)
	if err != nil {
		return errors.New(sourceFilename + ": " + err.Error())
	}
	defer sourceFile.Close()
	return copyToFile(destFilename, mode, sourceFile, 0)
}

func copyToFile(destFilename string, perm os.FileMode, reader io.Reader,
	length uint64) error {
	tmpFilename := destFilename + "~"
	destFile, err := os.OpenFile(tmpFilename,
		os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	defer os.Remove(tmpFilename)
	defer destFile.Close()
	if err := copyToWriter(destFile, tmpFilename, reader, length); err != nil {
		return err
	}
	if err := destFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpFilename, destFilename)
}

func copyToWriter(writer io.Writer, filename string, reader io.Reader,
	length uint64) error {
	if length < 1 {
		if _, err := io.Copy(writer, reader); err != nil {
			return fmt.Errorf("error copying: %s", err)
		}
		return nil
	}
	if nCopied, err := io.CopyN(writer, reader, int64(length)); err != nil {
		return fmt.Errorf("error copying: %s", err)
	} else if nCopied != int64(length) {
		return fmt.Errorf("expected length: %d, got: %d for: %s",
			length, nCopied, filename)
	}
	return nil
}

func copyTree(destDir, sourceDir string, allTypes bool,
	copyFunc func(destFilename, sourceFilename string,
		mode os.FileMode) error) error {
	file, err := os.Open(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	names, err := file.Readdirnames(-1)
	file.Close()
	if err != nil {
		return err
	}
	for _, name := range names {
		sourceFilename := path.Join(sourceDir, name)
		destFilename := path.Join(destDir, name)
		fi, err := os.Lstat(sourceFilename)
		if err != nil {
			return errors.New(sourceFilename + ": " + err.Error())
		}
		switch {
		case fi.IsDir():
			if err := os.Mkdir(destFilename, DirPerms); err != nil {
				if !os.IsExist(err) {
					return err
				}
			}
			err := copyTree(destFilename, sourceFilename, allTypes, copyFunc)
			if err != nil {
				return err
			}
		case fi.Mode().IsRegular():
			err := copyFunc(destFilename, sourceFilename,
				fi.Mode()&os.ModePerm)
			if err != nil {
				return err
			}
		case fi.Mode()&os.ModeSymlink != 0:
			if !allTypes {
				continue
			}
			sourceTarget, err := os.Readlink(sourceFilename)
			if err != nil {
				return errors.New(sourceFilename + ": " + err.Error())
			}
			if destTarget, err := os.Readlink(destFilename); err == nil {
				if sourceTarget == destTarget {
					continue
				}
			}
			os.Remove(destFilename)
			if err := os.Symlink(sourceTarget, destFilename); err != nil {
				return err
			}
		default:
			continue // Sockets, FIFOs and device nodes are not copied.
		}
	}
	return nil
}
