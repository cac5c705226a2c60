package build

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Crate is the subset of a Cargo package that determines artifact paths.
type Crate struct {
	Name       string   // [package] name
	LibName    string   // [lib] name, or Name with '-' → '_'
	CrateTypes []string // [lib] crate-type
	TargetDir  string   // resolved cargo target directory
}

// IsSharedLibrary reports whether the crate declares a cdylib or dylib.
func (c *Crate) IsSharedLibrary() bool {
	for _, t := range c.CrateTypes {
		if t == "cdylib" || t == "dylib" {
			return true
		}
	}
	return false
}

type cargoManifest struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Lib struct {
		Name      string   `toml:"name"`
		CrateType []string `toml:"crate-type"`
	} `toml:"lib"`
}

type cargoConfig struct {
	Build struct {
		TargetDir string `toml:"target-dir"`
	} `toml:"build"`
}

// LoadCrate parses <sourceDir>/Cargo.toml and resolves the target directory.
//
// Target directory precedence: CARGO_TARGET_DIR, [build] target-dir in
// <sourceDir>/.cargo/config.toml (or the legacy .cargo/config), then
// <sourceDir>/target. Relative paths resolve against sourceDir, which is
// the working directory the toolchain runs in.
func LoadCrate(sourceDir string) (*Crate, error) {
	manifestPath := filepath.Join(sourceDir, "Cargo.toml")
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", manifestPath, err)
	}

	var m cargoManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestPath, err)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("%s: no [package] name (workspace manifests are not supported)", manifestPath)
	}

	crate := &Crate{
		Name:       m.Package.Name,
		LibName:    m.Lib.Name,
		CrateTypes: m.Lib.CrateType,
	}
	if crate.LibName == "" {
		crate.LibName = strings.ReplaceAll(m.Package.Name, "-", "_")
	}

	targetDir, err := resolveTargetDir(sourceDir)
	if err != nil {
		return nil, err
	}
	crate.TargetDir = targetDir

	return crate, nil
}

func resolveTargetDir(sourceDir string) (string, error) {
	dir := os.Getenv("CARGO_TARGET_DIR")

	if dir == "" {
		for _, name := range []string{"config.toml", "config"} {
			path := filepath.Join(sourceDir, ".cargo", name)
			data, err := os.ReadFile(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return "", fmt.Errorf("reading %s: %w", path, err)
			}
			var cc cargoConfig
			if err := toml.Unmarshal(data, &cc); err != nil {
				return "", fmt.Errorf("parsing %s: %w", path, err)
			}
			dir = cc.Build.TargetDir
			break
		}
	}

	if dir == "" {
		dir = "target"
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(sourceDir, dir)
	}
	return dir, nil
}
