package sshkeys

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"os"
	"path/filepath"

	"github.com/Cloud-Foundations/zfs-installer/lib/fsutil"
	"github.com/Cloud-Foundations/zfs-installer/lib/log"
	"golang.org/x/crypto/ssh"
)

const (
	hostKeyComment = "root@zfs-installer"
	hostKeyName    = "ssh_host_ed25519_key"
)

func generateHostKeys(targetRoot string, logger log.DebugLogger) error {
	sshDir := filepath.Join(targetRoot, "etc", "ssh")
	if err := os.MkdirAll(sshDir, fsutil.DirPerms); err != nil {
		return err
	}
	privateFilename := filepath.Join(sshDir, hostKeyName)
	if _, err := os.Stat(privateFilename); err == nil {
		logger.Debugf(1, "host key already present: %s\n", privateFilename)
		return nil
	}
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}
	pemBlock, err := ssh.MarshalPrivateKey(privateKey, hostKeyComment)
	if err != nil {
		return err
	}
	err = os.WriteFile(privateFilename, pem.EncodeToMemory(pemBlock),
		fsutil.PrivateFilePerms)
	if err != nil {
		return err
	}
	sshPublicKey, err := ssh.NewPublicKey(publicKey)
	if err != nil {
		return err
	}
	err = os.WriteFile(privateFilename+".pub",
		ssh.MarshalAuthorizedKey(sshPublicKey), fsutil.PublicFilePerms)
	if err != nil {
		return err
	}
	logger.Debugf(0, "generated host key: %s\n", privateFilename)
	return nil
}

func installAuthorizedKeys(targetRoot string, logger log.DebugLogger) error {
	source := "/root/.ssh/authorized_keys"
	if _, err := os.Stat(source); err != nil {
		if os.IsNotExist(err) {
			logger.Debugln(1, "no authorized_keys in live environment")
			return nil
		}
		return err
	}
	sshDir := filepath.Join(targetRoot, "root", ".ssh")
	if err := os.MkdirAll(sshDir, fsutil.PrivateDirPerms); err != nil {
		return err
	}
	err := fsutil.CopyFile(filepath.Join(sshDir, "authorized_keys"), source,
		fsutil.PrivateFilePerms)
	if err != nil {
		return err
	}
	logger.Debugln(0, "installed authorized_keys for root")
	return nil
}
