package run

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Lock guards the data directory against concurrent runs. Conversion output
// is idempotent per bill, but two interleaved runs racing the same temp
// files are not worth reasoning about.
type Lock struct {
	path string
	lock *flock.Flock
}

// AcquireLock takes the run lock under logDir, failing immediately when
// another run holds it.
func AcquireLock(logDir string) (*Lock, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}
	path := filepath.Join(logDir, "statutes.lock")
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("another statutes run is already active (lock %s)", path)
	}
	return &Lock{path: path, lock: lock}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}

// Release drops the lock.
func (l *Lock) Release() error {
	return l.lock.Unlock()
}
