package badge

import (
	"fmt"
	"os"
	"path/filepath"
)

// Engine generates SVG badges using a specific font.
type Engine struct {
	metrics *FontMetrics

	// EmbedFont inlines the font as a base64 @font-face rule so the badge
	// renders identically without the font installed.
	EmbedFont bool
}

// New creates a badge engine with the given font metrics.
func New(metrics *FontMetrics) *Engine {
	return &Engine{metrics: metrics, EmbedFont: true}
}

// Badge defines the content and appearance of a single badge.
type Badge struct {
	Label string // left side text
	Value string // right side text
	Color string // hex color for right side (e.g. "#4c1")
}

// Generate produces a shields.io-compatible SVG badge string.
func (e *Engine) Generate(b Badge) string {
	return e.renderSVG(b)
}

// WriteFile renders b to path, creating parent directories.
func (e *Engine) WriteFile(path string, b Badge) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(e.Generate(b)), 0o644); err != nil {
		return fmt.Errorf("writing badge %s: %w", path, err)
	}
	return nil
}

// RunBadge summarizes a run as "native | 4/5 passing".
func RunBadge(succeeded, total int) Badge {
	status := "success"
	switch {
	case total == 0:
		status = "unknown"
	case succeeded == 0:
		status = "failed"
	case succeeded < total:
		status = "warning"
	}
	return Badge{
		Label: "native",
		Value: fmt.Sprintf("%d/%d passing", succeeded, total),
		Color: StatusColor(status),
	}
}

// StatusColor maps a status keyword to a badge hex color.
func StatusColor(status string) string {
	switch status {
	case "passed", "success":
		return "#4c1"
	case "warning":
		return "#dfb317"
	case "critical", "failed":
		return "#e05d44"
	default:
		return "#9f9f9f"
	}
}
