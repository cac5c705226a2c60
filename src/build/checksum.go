package build

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"runtime"
	"sync"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/sync/semaphore"
)

// Supported checksum algorithms.
const (
	ChecksumSHA256  = "sha256"
	ChecksumBlake2b = "blake2b-256"
)

// Checksums fills BuildResult.Checksum for every collected artifact.
// Artifacts live in the output tree, which only crossforge writes, so
// digests are computed concurrently once the sequential build loop is done.
func Checksums(ctx context.Context, results []BuildResult, algo string) error {
	newHash, err := Hasher(algo)
	if err != nil {
		return err
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	sem := semaphore.NewWeighted(int64(runtime.NumCPU()))

	for i := range results {
		if !results[i].Success || results[i].ProducedPath == "" {
			continue
		}
		if err := sem.Acquire(ctx, 1); err != nil {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
			break
		}
		wg.Add(1)
		go func(r *BuildResult) {
			defer wg.Done()
			defer sem.Release(1)

			sum, err := FileDigest(r.ProducedPath, newHash)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", r.Target.Key, err))
				mu.Unlock()
				return
			}
			r.Checksum = sum
		}(&results[i])
	}

	wg.Wait()
	return errors.Join(errs...)
}

// FileDigest returns the hex digest of a file.
func FileDigest(path string, newHash func() (hash.Hash, error)) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h, err := newHash()
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Hasher returns a hash constructor for the named algorithm.
func Hasher(algo string) (func() (hash.Hash, error), error) {
	switch algo {
	case ChecksumSHA256, "":
		return func() (hash.Hash, error) { return sha256.New(), nil }, nil
	case ChecksumBlake2b:
		return func() (hash.Hash, error) { return blake2b.New256(nil) }, nil
	}
	return nil, fmt.Errorf("build: unknown checksum algorithm %q", algo)
}
