package build

import "testing"

func TestParseToolchainVersion(t *testing.T) {
	tests := []struct {
		banner string
		want   string
	}{
		{"cargo 1.80.0 (376290515 2024-07-16)", "1.80.0"},
		{"cargo 1.82.0-nightly (ba8b39413 2024-08-16)", "1.82.0"},
		{"cross 0.2.5\n[cross] note: Falling back to `cargo` on the host.\ncargo 1.79.0", "0.2.5"},
	}
	for _, tt := range tests {
		v, err := ParseToolchainVersion(tt.banner)
		if err != nil {
			t.Errorf("%q: %v", tt.banner, err)
			continue
		}
		if v.String() != tt.want {
			t.Errorf("%q = %s, want %s", tt.banner, v, tt.want)
		}
	}

	if _, err := ParseToolchainVersion("cargo unknown"); err == nil {
		t.Error("expected error for banner without version")
	}
}

func TestCheckVersion(t *testing.T) {
	if err := CheckVersion("cargo 1.82.0-nightly (x)", ">= 1.70.0"); err != nil {
		t.Errorf("nightly should satisfy: %v", err)
	}
	if err := CheckVersion("cargo 1.65.0 (x)", ">= 1.70.0"); err == nil {
		t.Error("1.65.0 should not satisfy >= 1.70.0")
	}
	if err := CheckVersion("cargo 1.80.0", "not a constraint"); err == nil {
		t.Error("expected error for invalid constraint")
	}
}
