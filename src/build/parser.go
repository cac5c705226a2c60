package build

import (
	"regexp"
	"strconv"
	"strings"
)

// Diagnostic is one compiler message parsed from captured toolchain stderr.
type Diagnostic struct {
	Level   string // "error", "warning"
	Code    string // "E0425", "" when the message has no code
	Message string
	File    string // first "-->" location, if any
	Line    int
	Column  int
}

// Location formats File:Line:Column, or "" when unknown.
func (d Diagnostic) Location() string {
	if d.File == "" {
		return ""
	}
	return d.File + ":" + strconv.Itoa(d.Line) + ":" + strconv.Itoa(d.Column)
}

// Regex patterns for rustc/cargo human-readable output.
var (
	// error[E0425]: cannot find value `x` in this scope
	// warning: unused variable: `y`
	diagHeadRe = regexp.MustCompile(`^(error|warning)(?:\[(\w+)\])?: (.+)$`)
	//   --> src/lib.rs:3:5
	diagLocRe = regexp.MustCompile(`^-->\s+(.+):(\d+):(\d+)$`)
)

// ParseDiagnostics parses captured toolchain stderr into diagnostics.
// Summary lines such as "warning: `foo` (lib) generated 1 warning" are dropped.
func ParseDiagnostics(output string) []Diagnostic {
	var diags []Diagnostic
	var current *Diagnostic

	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := diagHeadRe.FindStringSubmatch(line); m != nil {
			if isSummaryLine(m[3]) {
				current = nil
				continue
			}
			diags = append(diags, Diagnostic{Level: m[1], Code: m[2], Message: m[3]})
			current = &diags[len(diags)-1]
			continue
		}

		if current != nil && current.File == "" {
			if m := diagLocRe.FindStringSubmatch(line); m != nil {
				current.File = m[1]
				current.Line, _ = strconv.Atoi(m[2])
				current.Column, _ = strconv.Atoi(m[3])
			}
		}
	}

	return diags
}

// Headline returns the first error diagnostic as a one-line summary,
// falling back to the first non-empty line of output.
func Headline(output string) string {
	for _, d := range ParseDiagnostics(output) {
		if d.Level != "error" {
			continue
		}
		s := "error"
		if d.Code != "" {
			s += "[" + d.Code + "]"
		}
		s += ": " + d.Message
		if loc := d.Location(); loc != "" {
			s += " (" + loc + ")"
		}
		return truncate(s, 100)
	}
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return truncate(line, 100)
		}
	}
	return ""
}

// isSummaryLine matches cargo's trailing count lines.
func isSummaryLine(msg string) bool {
	return strings.Contains(msg, "generated ") && strings.Contains(msg, "warning") ||
		strings.HasPrefix(msg, "could not compile") ||
		strings.HasPrefix(msg, "aborting due to")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
