//go:build linux

package osutil

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

type runnerType struct {
	params Params
}

func findExecutable(rootDir, file string) error {
	if d, err := os.Stat(filepath.Join(rootDir, file)); err != nil {
		return err
	} else {
		if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
			return nil
		}
		return os.ErrPermission
	}
}

// lookPath searches for an executable the way exec.LookPath does, but
// relative to a chroot directory.
func lookPath(rootDir, file string) (string, error) {
	if strings.Contains(file, "/") {
		if err := findExecutable(rootDir, file); err != nil {
			return "", err
		}
		return file, nil
	}
	path := os.Getenv("PATH")
	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "." // Unix shell semantics: path element "" means "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(rootDir, path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("(chroot=%s) %s not found in PATH", rootDir, file)
}

func (r *runnerType) Output(name string, args ...string) ([]byte, error) {
	if r.params.DryRun {
		r.params.Logger.Debugf(0, "dry run: skipping: %s %s\n",
			name, strings.Join(args, " "))
		return nil, nil
	}
	cmd, err := r.command(name, args)
	if err != nil {
		return nil, err
	}
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("error running: %s: %s", name, err)
	}
	return output, nil
}

func (r *runnerType) Run(name string, args ...string) error {
	if r.params.DryRun {
		r.params.Logger.Debugf(0, "dry run: skipping: %s %s\n",
			name, strings.Join(args, " "))
		return nil
	}
	cmd, err := r.command(name, args)
	if err != nil {
		return err
	}
	if output, err := cmd.CombinedOutput(); err != nil {
		if err == exec.ErrWaitDelay {
			return nil
		}
		return fmt.Errorf("error running: %s: %s, output: %s",
			name, err, output)
	}
	return nil
}

func (r *runnerType) command(name string, args []string) (*exec.Cmd, error) {
	path, err := lookPath(r.params.Chroot, name)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(path, args...)
	cmd.WaitDelay = time.Second
	if r.params.Chroot != "" {
		cmd.Dir = "/"
		cmd.SysProcAttr = &syscall.SysProcAttr{Chroot: r.params.Chroot}
		r.params.Logger.Debugf(0, "running(chroot=%s): %s %s\n",
			r.params.Chroot, name, strings.Join(args, " "))
	} else {
		r.params.Logger.Debugf(0, "running: %s %s\n",
			name, strings.Join(args, " "))
	}
	return cmd, nil
}
