package build

import "time"

// BuildResult captures the outcome of one target build.
type BuildResult struct {
	Target       TargetSpec
	Triple       string // resolved triple, empty if host resolution failed
	ProducedPath string // <OutputRoot>/<Key>/<OutputName> on success
	Success      bool
	ErrorMessage string // raw toolchain diagnostics or error text on failure
	Err          error  // *TargetError on failure
	Checksum     string // hex digest of ProducedPath, set by Checksums
	Duration     time.Duration
}

// Status returns "success" or "failed".
func (r BuildResult) Status() string {
	if r.Success {
		return "success"
	}
	return "failed"
}

// Summary aggregates a run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Duration  time.Duration
}

// Summarize counts results.
func Summarize(results []BuildResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
		s.Duration += r.Duration
	}
	return s
}

// OK reports whether every target succeeded.
func (s Summary) OK() bool {
	return s.Failed == 0
}
