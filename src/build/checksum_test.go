package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"
)

func TestChecksumsAndManifest(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "linux-x86_64", "libgit_details.so")
	writeFile(t, path, "payload")

	results := []BuildResult{
		{Target: TargetSpec{Key: "linux-x86_64"}, Triple: "x86_64-unknown-linux-gnu", ProducedPath: path, Success: true},
		{Target: TargetSpec{Key: "win-x86_64"}, Triple: "x86_64-pc-windows-gnu", Err: targetErrorf(ErrCompile, "win-x86_64", "exit status 101")},
	}

	if err := Checksums(context.Background(), results, ChecksumSHA256); err != nil {
		t.Fatalf("checksums: %v", err)
	}
	sum := sha256.Sum256([]byte("payload"))
	if results[0].Checksum != hex.EncodeToString(sum[:]) {
		t.Errorf("checksum = %s", results[0].Checksum)
	}
	if results[1].Checksum != "" {
		t.Error("failed target must not get a checksum")
	}

	cfg := Config{Release: true, Command: "cargo", OutputRoot: root}
	if _, err := WriteManifest(root, NewManifest(cfg, results, ChecksumSHA256)); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	m, err := ReadManifest(root)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if ok, total := m.Counts(); ok != 1 || total != 2 {
		t.Errorf("counts = %d/%d, want 1/2", ok, total)
	}
	if m.Targets[0].Output != "linux-x86_64/libgit_details.so" {
		t.Errorf("output = %q", m.Targets[0].Output)
	}
	if m.Profile != "release" || m.Targets[1].Error == "" {
		t.Errorf("manifest = %+v", m)
	}
}

func TestBlake2bChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.dll")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	newHash, err := Hasher(ChecksumBlake2b)
	if err != nil {
		t.Fatal(err)
	}
	sum, err := FileDigest(path, newHash)
	if err != nil {
		t.Fatal(err)
	}
	if len(sum) != 64 {
		t.Errorf("blake2b-256 hex length = %d, want 64", len(sum))
	}
	if _, err := Hasher("md5"); err == nil {
		t.Error("expected error for unknown algorithm")
	}
}
