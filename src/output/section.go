package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const frameWidth = 61

// Section is a framed block of report lines:
//
//	── Native ─────────────────────────────── 3.5s ──
//	│ linux-x86_64     x86_64-unknown-linux-gnu  1.5s ✓
//	└──────────────────────────────────────────────────
type Section struct {
	w     io.Writer
	color bool
}

// NewSection writes the header of a section named name. A non-zero elapsed
// is shown at the right edge of the header.
func NewSection(w io.Writer, name string, elapsed time.Duration, color bool) *Section {
	s := &Section{w: w, color: color}

	var b strings.Builder
	b.WriteString("── " + name + " ")
	tail := "──"
	if elapsed > 0 {
		tail = " " + formatElapsed(elapsed) + " ──"
	}
	fill := frameWidth + 4 - b.Len() - len(tail)
	b.WriteString(strings.Repeat("─", max(fill, 1)))
	b.WriteString(tail)

	header := b.String()
	if color {
		header = "\033[2;36m" + header + colorReset
	}
	fmt.Fprintf(w, "\n    %s\n", header)
	return s
}

// Row writes one framed line.
func (s *Section) Row(format string, args ...any) {
	fmt.Fprintf(s.w, "    │ %s\n", fmt.Sprintf(format, args...))
}

// Target writes a per-target line: key, detail, and the status icon.
func (s *Section) Target(key, detail, status string) {
	if detail == "" {
		s.Row("%-16s %s", key, StatusIcon(status, s.color))
		return
	}
	s.Row("%-16s %s %s", key, detail, StatusIcon(status, s.color))
}

// Separator writes a divider inside the frame.
func (s *Section) Separator() { s.rule("├") }

// Close writes the footer.
func (s *Section) Close() { s.rule("└") }

func (s *Section) rule(corner string) {
	fmt.Fprintf(s.w, "    %s%s\n", corner, strings.Repeat("─", frameWidth))
}

type icon struct {
	glyph string
	color string
}

var statusIcons = map[string]icon{
	"success": {"✓", "\033[32m"},
	"failed":  {"✗", colorRed},
}

var skippedIcon = icon{"⊘", colorYellow}

// StatusIcon returns the icon for "success", "failed", or anything else
// (skipped).
func StatusIcon(status string, color bool) string {
	ic, ok := statusIcons[status]
	if !ok {
		ic = skippedIcon
	}
	return colorize(ic.glyph, ic.color, color)
}

// Dimmed returns gray text if color is enabled.
func Dimmed(text string, color bool) string {
	return colorize(text, colorGray, color)
}

// KV is a key-value pair for ContextBlock.
type KV struct {
	Key   string
	Value string
}

// ContextBlock prints the run context, two pairs per line.
func ContextBlock(w io.Writer, kv []KV) {
	if len(kv) == 0 {
		return
	}
	fmt.Fprintln(w)
	for i := 0; i < len(kv); i += 2 {
		line := fmt.Sprintf("%-12s%-28s", kv[i].Key, kv[i].Value)
		if i+1 < len(kv) {
			line += fmt.Sprintf("%-11s%s", kv[i+1].Key, kv[i+1].Value)
		}
		fmt.Fprintf(w, "    %s\n", strings.TrimRight(line, " "))
	}
}

// formatElapsed renders durations as "<1ms", "850ms", "3.5s", "2m4.0s".
func formatElapsed(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return "<1ms"
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := d / time.Minute
	return fmt.Sprintf("%dm%.1fs", int(m), (d - m*time.Minute).Seconds())
}
