package config

// TargetConfig declares one cross-compilation target.
type TargetConfig struct {
	// Key is the logical platform key, used as the output sub-directory.
	// e.g. "linux-x86_64", "win-x86_64", "macos-aarch64".
	Key string `yaml:"key"`

	// Triple is the compiler target triple. Empty = the host triple.
	Triple string `yaml:"triple,omitempty"`

	// OutputName is the artifact file name under the key directory.
	// Empty = the toolchain's own artifact name for the triple.
	OutputName string `yaml:"output_name,omitempty"`
}

// HostTargetKey is the key of the implicit host target added by
// native.default_target.
const HostTargetKey = "host"

// ExampleTargets is the five-platform target set crossforge was built around.
func ExampleTargets(lib string) []TargetConfig {
	return []TargetConfig{
		{Key: "linux-i686", Triple: "i686-unknown-linux-gnu", OutputName: "lib" + lib + ".so"},
		{Key: "linux-x86_64", Triple: "x86_64-unknown-linux-gnu", OutputName: "lib" + lib + ".so"},
		{Key: "win-x86_64", Triple: "x86_64-pc-windows-gnu", OutputName: lib + ".dll"},
		{Key: "macos-x86_64", Triple: "x86_64-apple-darwin", OutputName: "lib" + lib + ".dylib"},
		{Key: "macos-aarch64", Triple: "aarch64-apple-darwin", OutputName: "lib" + lib + ".dylib"},
	}
}
