package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"hanzireel/internal/episode"
	"hanzireel/internal/services"
	"hanzireel/internal/textutil"
)

// Action records what Apply did with an entry.
type Action string

const (
	ActionCreated     Action = "created"
	ActionExists      Action = "exists"
	ActionOverwritten Action = "overwritten"
	ActionWritten     Action = "written"
)

// Outcome pairs an entry with the action taken.
type Outcome struct {
	Entry  Entry
	Action Action
}

// Result lists the outcome of each applied entry, in order.
type Result struct {
	Outcomes []Outcome
}

// Count returns how many entries ended with action.
func (r Result) Count(action Action) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == action {
			n++
		}
	}
	return n
}

// Apply materializes entries in order. On failure the partial result is
// returned together with the error.
func Apply(ctx context.Context, entries []Entry) (Result, error) {
	var res Result
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		action, err := applyEntry(entry)
		if err != nil {
			return res, err
		}
		res.Outcomes = append(res.Outcomes, Outcome{Entry: entry, Action: action})
	}
	return res, nil
}

func applyEntry(entry Entry) (Action, error) {
	switch entry.Kind {
	case KindDir:
		if info, err := os.Stat(entry.Path); err == nil && info.IsDir() {
			return ActionExists, nil
		}
		if err := os.MkdirAll(entry.Path, 0o755); err != nil {
			return "", fmt.Errorf("create directory %s: %w", entry.Path, err)
		}
		return ActionCreated, nil
	case KindFile, KindJSON:
		action := ActionWritten
		if _, err := os.Stat(entry.Path); err == nil {
			action = ActionOverwritten
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat %s: %w", entry.Path, err)
		}
		if err := os.WriteFile(entry.Path, entry.Content, 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", entry.Path, err)
		}
		return action, nil
	default:
		return "", fmt.Errorf("entry %s: unknown kind %q", entry.Path, entry.Kind)
	}
}

// Run creates the full lesson tree under base.
func Run(ctx context.Context, base string) (Result, error) {
	entries, err := Plan(base)
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, entries)
}

// AddLesson creates lesson id under root, a chinese_lessons directory, with
// the section folders and a config.json for lesson.
func AddLesson(ctx context.Context, root, id string, lesson episode.LessonConfig) (Result, error) {
	if !textutil.IsLessonID(id) {
		return Result{}, services.Wrap(services.ErrValidation, "scaffold", "add lesson",
			fmt.Sprintf("lesson id %q must be lowercase letters, digits, '-' or '_'", id), nil)
	}
	lesson.Normalize()
	if err := lesson.Validate(); err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "scaffold", "add lesson", "", err)
	}
	entries, err := lessonEntries(filepath.Join(root, id), lesson)
	if err != nil {
		return Result{}, err
	}
	return Apply(ctx, entries)
}
