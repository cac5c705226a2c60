package output

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sofmeright/crossforge/src/build"
)

// BuildReport renders the final per-target report. Failed targets get their
// headline and the raw toolchain diagnostics, indented inside the frame.
func BuildReport(w io.Writer, results []build.BuildResult, elapsed time.Duration, color bool) {
	sec := NewSection(w, "Native", elapsed, color)

	for _, r := range results {
		detail := r.Triple
		if detail == "" {
			detail = "-"
		}
		detail = fmt.Sprintf("%-28s %8s", detail, formatElapsed(r.Duration))
		sec.Target(r.Target.Key, detail, r.Status())
		if r.Success {
			if r.ProducedPath != "" {
				sec.Row("  %s", Dimmed(r.ProducedPath, color))
			}
			continue
		}
		sec.Row("  %s", colorize(failureHeadline(r), colorRed, color))
	}

	var failed []build.BuildResult
	for _, r := range results {
		if !r.Success && diagnostics(r) != "" {
			failed = append(failed, r)
		}
	}
	if len(failed) > 0 {
		SectionStartCollapsed(w, "cf_diagnostics", "Diagnostics")
		for _, r := range failed {
			sec.Separator()
			sec.Row("%s", colorize(r.Target.Key+" diagnostics", colorBold, color))
			for _, line := range strings.Split(diagnostics(r), "\n") {
				sec.Row("  %s", line)
			}
		}
		SectionEnd(w, "cf_diagnostics")
	}

	s := build.Summarize(results)
	sec.Separator()
	status := "success"
	if !s.OK() {
		status = "failed"
	}
	sec.Row("%s succeeded, %d failed %s", plural(s.Succeeded, "target"), s.Failed, StatusIcon(status, color))
	sec.Close()
}

// failureHeadline is the one-line reason shown under a failed target.
func failureHeadline(r build.BuildResult) string {
	var te *build.TargetError
	if errors.As(r.Err, &te) && te.Diagnostics != "" {
		if h := build.Headline(te.Diagnostics); h != "" {
			return te.Kind.Error() + ": " + h
		}
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return build.Headline(r.ErrorMessage)
}

// diagnostics returns the raw toolchain output recorded for a failed target.
func diagnostics(r build.BuildResult) string {
	var te *build.TargetError
	if errors.As(r.Err, &te) {
		return te.Diagnostics
	}
	return ""
}

// PlanReport renders a dry-run plan.
func PlanReport(w io.Writer, profile string, plan []build.PlannedTarget, color bool) {
	sec := NewSection(w, "Plan ("+profile+")", 0, color)
	for _, p := range plan {
		if p.Err != nil {
			sec.Target(p.Target.Key, p.Err.Error(), "failed")
			continue
		}
		sec.Row("%-16s %s", p.Target.Key, p.Triple)
		sec.Row("  %s", Dimmed(p.Source, color))
		sec.Row("  → %s", p.Destination)
	}
	sec.Close()
}
