package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// BannerInfo holds the identity fields printed at the start of a run.
type BannerInfo struct {
	Version string
	SHA     string
	Branch  string
	Dirty   bool
	Date    string
}

// NewBannerInfo creates a BannerInfo with today's date. The SHA is shortened
// to 8 characters.
func NewBannerInfo(version, sha, branch string, dirty bool) BannerInfo {
	if len(sha) > 8 {
		sha = sha[:8]
	}
	return BannerInfo{
		Version: version,
		SHA:     sha,
		Branch:  branch,
		Dirty:   dirty,
		Date:    time.Now().UTC().Format("2006-01-02"),
	}
}

// Banner prints a one-line identity header:
//
//	crossforge 0.3.1 · 1a2b3c4d · main* · 2024-06-01
func Banner(w io.Writer, info BannerInfo, color bool) {
	items := []string{"crossforge"}
	if color {
		items[0] = "\033[1;36mcrossforge\033[0m"
	}
	if info.Version != "" {
		items = append(items, info.Version)
	}
	if info.SHA != "" {
		items = append(items, info.SHA)
	}
	if info.Branch != "" {
		b := info.Branch
		if info.Dirty {
			b += "*"
		}
		items = append(items, b)
	}
	if info.Date != "" {
		items = append(items, info.Date)
	}

	sep := " · "
	if color {
		sep = Dimmed(sep, true)
	}
	fmt.Fprintf(w, "\n  %s\n", strings.Join(items, sep))
}
