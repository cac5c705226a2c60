package build

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// toolchainVersionRe captures the first x.y.z token of a version banner:
// "cargo 1.80.0 (376290515 2024-07-16)", "cargo 1.82.0-nightly (...)".
var toolchainVersionRe = regexp.MustCompile(`(\d+\.\d+\.\d+)(-[0-9A-Za-z.-]+)?`)

// ParseToolchainVersion extracts the release version from a version banner.
// Pre-release channels (nightly, beta) are reduced to their x.y.z base so
// they compare like the release they precede.
func ParseToolchainVersion(banner string) (*semver.Version, error) {
	m := toolchainVersionRe.FindStringSubmatch(banner)
	if m == nil {
		return nil, fmt.Errorf("no version in %q", banner)
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", m[1], err)
	}
	return semver.New(v.Major(), v.Minor(), v.Patch(), "", ""), nil
}

// CheckVersion verifies a version banner against a semver constraint.
func CheckVersion(banner, constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}
	v, err := ParseToolchainVersion(banner)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("toolchain %s does not satisfy %s", v, constraint)
	}
	return nil
}
