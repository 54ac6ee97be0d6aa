package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"hanzireel/internal/services"
)

// MediaLock is the advisory lock a render holds while it owns the media
// directory.
type MediaLock struct {
	path string
	lock *flock.Flock
}

// AcquireMediaLock takes the lock at path without blocking. A lock held by
// another process yields an error marked services.ErrBusy.
func AcquireMediaLock(path string) (*MediaLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrBusy, "render", "lock", "another render is already writing to the media directory", nil)
	}
	return &MediaLock{path: path, lock: fl}, nil
}

// Path returns the lock file location.
func (l *MediaLock) Path() string { return l.path }

// Release unlocks. It is safe to call more than once.
func (l *MediaLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}
