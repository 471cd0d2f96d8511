// Package history keeps a journal of recent hook runs per repository.
// The journal lives at <git-dir>/githooks/history.json so it is never
// committed. Linked worktrees have their own git dir and so their own journal.
package history

import (
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/palotasb/githooks/internal/hooks"
	"github.com/palotasb/githooks/internal/storage"
)

// EntryRecord is the outcome of one entry within a run.
type EntryRecord struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	ExitCode   int    `json:"exit_code"`
	DurationMS int64  `json:"duration_ms"`
	Fatal      bool   `json:"fatal"`
}

// Record is one hook run.
type Record struct {
	ID         string        `json:"id"`
	Hook       string        `json:"hook"`
	Args       []string      `json:"args,omitempty"`
	Started    time.Time     `json:"started"`
	DurationMS int64         `json:"duration_ms"`
	Verdict    string        `json:"verdict"`
	Entries    []EntryRecord `json:"entries,omitempty"`
	Disabled   []string      `json:"disabled,omitempty"`
}

// Duration returns the run duration.
func (r Record) Duration() time.Duration {
	return time.Duration(r.DurationMS) * time.Millisecond
}

// History holds records, oldest first.
type History struct {
	Records []Record `json:"records"`
}

// Path returns the journal location for a git directory.
func Path(gitDir string) string {
	return filepath.Join(storage.StateDir(gitDir), "history.json")
}

// FromResult converts a finished run into a Record with a fresh ID.
func FromResult(res hooks.RunResult, args []string) Record {
	rec := Record{
		ID:         uuid.NewString(),
		Hook:       res.Hook,
		Args:       args,
		Started:    res.Started.UTC(),
		DurationMS: res.Duration.Milliseconds(),
		Verdict:    string(res.Verdict),
	}
	for _, o := range res.Outcomes {
		rec.Entries = append(rec.Entries, EntryRecord{
			Name:       o.Entry.Name,
			Status:     string(o.Status),
			ExitCode:   o.ExitCode,
			DurationMS: o.Duration.Milliseconds(),
			Fatal:      o.Entry.Policy.Fatal,
		})
	}
	for _, e := range res.Disabled {
		rec.Disabled = append(rec.Disabled, e.Name)
	}
	return rec
}

// Load reads the journal at path. A missing or corrupted file yields an
// empty history.
func Load(path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(path, &h); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &History{}, nil
		}
		var perr *fs.PathError
		if errors.As(err, &perr) {
			return nil, err
		}
		// Corrupted - start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Append adds rec to the journal at path, keeping at most limit records.
// A limit of zero or less disables the journal.
func Append(path string, rec Record, limit int) error {
	if limit <= 0 {
		return nil
	}
	return storage.Update(path, func(h *History) error {
		h.Records = append(h.Records, rec)
		if n := len(h.Records); n > limit {
			h.Records = slices.Clone(h.Records[n-limit:])
		}
		return nil
	})
}

// Recent returns up to n records, newest first, optionally limited to one
// hook type. n <= 0 returns all matching records.
func (h *History) Recent(n int, hook string) []Record {
	var out []Record
	for i := len(h.Records) - 1; i >= 0; i-- {
		r := h.Records[i]
		if hook != "" && r.Hook != hook {
			continue
		}
		out = append(out, r)
		if n > 0 && len(out) == n {
			break
		}
	}
	return out
}
