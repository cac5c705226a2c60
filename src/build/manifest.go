package build

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestFile is the manifest name inside the output root.
const ManifestFile = "manifest.json"

// Manifest records the outcome of one run next to its artifacts.
type Manifest struct {
	Version   int              `json:"version"`
	Generated time.Time        `json:"generated"`
	Profile   string           `json:"profile"`
	Toolchain string           `json:"toolchain"`
	Checksum  string           `json:"checksum"`
	Targets   []ManifestTarget `json:"targets"`
}

// ManifestTarget is one target row in the manifest.
type ManifestTarget struct {
	Key      string `json:"key"`
	Triple   string `json:"triple,omitempty"`
	Output   string `json:"output,omitempty"` // path relative to the output root
	Success  bool   `json:"success"`
	Digest   string `json:"digest,omitempty"`
	Error    string `json:"error,omitempty"`
	Duration string `json:"duration"`
}

// NewManifest builds a manifest from run results.
func NewManifest(cfg Config, results []BuildResult, algo string) *Manifest {
	m := &Manifest{
		Version:   1,
		Generated: time.Now().UTC(),
		Profile:   cfg.Profile(),
		Toolchain: cfg.Command,
		Checksum:  algo,
	}
	for _, r := range results {
		row := ManifestTarget{
			Key:      r.Target.Key,
			Triple:   r.Triple,
			Success:  r.Success,
			Digest:   r.Checksum,
			Duration: r.Duration.Round(time.Millisecond).String(),
		}
		if r.ProducedPath != "" {
			if rel, err := filepath.Rel(cfg.OutputRoot, r.ProducedPath); err == nil {
				row.Output = filepath.ToSlash(rel)
			}
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		}
		m.Targets = append(m.Targets, row)
	}
	return m
}

// Counts returns (succeeded, total).
func (m *Manifest) Counts() (int, int) {
	ok := 0
	for _, t := range m.Targets {
		if t.Success {
			ok++
		}
	}
	return ok, len(m.Targets)
}

// WriteManifest writes m to <outputRoot>/manifest.json.
func WriteManifest(outputRoot string, m *Manifest) (string, error) {
	if err := os.MkdirAll(outputRoot, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", outputRoot, err)
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding manifest: %w", err)
	}
	path := filepath.Join(outputRoot, ManifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// ReadManifest loads <outputRoot>/manifest.json.
func ReadManifest(outputRoot string) (*Manifest, error) {
	path := filepath.Join(outputRoot, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}
