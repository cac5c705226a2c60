// Package gitprops records git build metadata as a Java-style properties
// file that ships next to the native artifacts.
package gitprops

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
)

// ErrBrokenState is returned when the repository cannot be opened, HEAD does
// not resolve to a commit, or the working tree status cannot be read.
var ErrBrokenState = errors.New("A fundamental assumption of git state was broken!")

// Date layouts always write a numeric offset, "+00:00" rather than "Z".
const (
	dateLayout      = "2006-01-02T15:04:05-07:00"
	buildDateLayout = "2006-01-02T15:04:05.999999999-07:00"
)

const compatComment = "# The following two values are identical; prior is deprecated and kept for gversion compatability"

// Details is the git state captured for a build.
type Details struct {
	SHA        string    // full commit hash
	CommitTime time.Time // committer time in the committer's offset
	Dirty      bool      // tracked changes or untracked, non-ignored files
	Branch     string    // "" when HEAD is detached
}

// Options control the rendered keys.
type Options struct {
	// GVersionCompat writes git_date and dirty=1|0 instead of
	// commit_date and has_uncommited_changes=true|false.
	GVersionCompat bool
	// BuildDate adds build_date with the current local time.
	BuildDate bool
	// Now overrides the build clock. Defaults to time.Now.
	Now func() time.Time
}

// Collect reads the git state of the repository containing path.
func Collect(path string) (*Details, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w (open %s: %v)", ErrBrokenState, path, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w (HEAD: %v)", ErrBrokenState, err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("%w (HEAD commit: %v)", ErrBrokenState, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w (worktree: %v)", ErrBrokenState, err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("%w (status: %v)", ErrBrokenState, err)
	}

	d := &Details{
		SHA:        commit.Hash.String(),
		CommitTime: commit.Committer.When,
		Dirty:      !status.IsClean(),
	}
	if head.Name().IsBranch() {
		d.Branch = head.Name().Short()
	}
	return d, nil
}

// Render formats the details as properties lines.
func (d *Details) Render(opts Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "git_sha=%s\n", d.SHA)

	if !d.CommitTime.IsZero() {
		key := "commit_date"
		if opts.GVersionCompat {
			key = "git_date"
		}
		fmt.Fprintf(&b, "%s=%s\n", key, d.CommitTime.Format(dateLayout))
	}

	if opts.BuildDate {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		fmt.Fprintf(&b, "build_date=%s\n", now().Format(buildDateLayout))
	}

	b.WriteString(compatComment + "\n")
	if opts.GVersionCompat {
		dirty := 0
		if d.Dirty {
			dirty = 1
		}
		fmt.Fprintf(&b, "dirty=%d\n", dirty)
	} else {
		fmt.Fprintf(&b, "has_uncommited_changes=%s\n", strconv.FormatBool(d.Dirty))
	}

	if d.Branch != "" {
		fmt.Fprintf(&b, "branch_name=%s\n", d.Branch)
	}
	return b.String()
}

// Write collects the git state of repoPath and writes it to dest, creating
// parent directories. Nothing is written when the git state is unusable.
func Write(repoPath, dest string, opts Options) (*Details, error) {
	d, err := Collect(repoPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
	}
	if err := os.WriteFile(dest, []byte(d.Render(opts)), 0o644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", dest, err)
	}
	return d, nil
}
