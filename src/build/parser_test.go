package build

import "testing"

const sampleStderr = `   Compiling git_details v0.1.0 (/src/native)
warning: unused variable: ` + "`y`" + `
 --> src/lib.rs:9:9
  |
9 |     let y = 1;
  |         ^ help: if this is intentional, prefix it with an underscore
error[E0425]: cannot find value ` + "`x`" + ` in this scope
  --> src/lib.rs:3:5
   |
3  |     x
   |     ^ not found in this scope
warning: ` + "`git_details`" + ` (lib) generated 1 warning
error: could not compile ` + "`git_details`" + ` (lib) due to 1 previous error; 1 warning emitted
`

func TestParseDiagnostics(t *testing.T) {
	diags := ParseDiagnostics(sampleStderr)
	if len(diags) != 2 {
		t.Fatalf("diagnostics = %+v, want 2", diags)
	}
	if diags[0].Level != "warning" || diags[0].Location() != "src/lib.rs:9:9" {
		t.Errorf("first = %+v", diags[0])
	}
	e := diags[1]
	if e.Level != "error" || e.Code != "E0425" || e.Line != 3 || e.Column != 5 {
		t.Errorf("second = %+v", e)
	}
}

func TestHeadline(t *testing.T) {
	got := Headline(sampleStderr)
	want := "error[E0425]: cannot find value `x` in this scope (src/lib.rs:3:5)"
	if got != want {
		t.Errorf("headline = %q, want %q", got, want)
	}

	if got := Headline("\n  linker `cc` not found\n"); got != "linker `cc` not found" {
		t.Errorf("fallback headline = %q", got)
	}
}
