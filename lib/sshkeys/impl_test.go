package sshkeys

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cloud-Foundations/zfs-installer/lib/log/testlogger"
	"golang.org/x/crypto/ssh"
)

func TestGenerateHostKeys(t *testing.T) {
	targetRoot := t.TempDir()
	if err := GenerateHostKeys(targetRoot, testlogger.New(t)); err != nil {
		t.Fatal(err)
	}
	privateFilename := filepath.Join(targetRoot, "etc", "ssh",
		"ssh_host_ed25519_key")
	privatePem, err := os.ReadFile(privateFilename)
	if err != nil {
		t.Fatal(err)
	}
	signer, err := ssh.ParsePrivateKey(privatePem)
	if err != nil {
		t.Fatal(err)
	}
	publicData, err := os.ReadFile(privateFilename + ".pub")
	if err != nil {
		t.Fatal(err)
	}
	publicKey, _, _, _, err := ssh.ParseAuthorizedKey(publicData)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(publicKey.Marshal(), signer.PublicKey().Marshal()) {
		t.Error("public key does not match private key")
	}
	fileInfo, err := os.Stat(privateFilename)
	if err != nil {
		t.Fatal(err)
	}
	if fileInfo.Mode().Perm() != 0o600 {
		t.Errorf("private key permissions: %o", fileInfo.Mode().Perm())
	}
	// A second run must not overwrite the key.
	if err := GenerateHostKeys(targetRoot, testlogger.New(t)); err != nil {
		t.Fatal(err)
	}
	unchanged, err := os.ReadFile(privateFilename)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(privatePem, unchanged) {
		t.Error("host key regenerated on second run")
	}
}
