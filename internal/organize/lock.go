package organize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockedError reports that another process holds the directory lock.
type LockedError struct {
	Root string
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("directory %s is locked by another sortforge process", e.Root)
}

// Lock is an exclusive advisory lock on one target directory. The lock file
// lives in the OS temp directory so it never shows up in the listing.
type Lock struct {
	root string
	fl   *flock.Flock
}

// LockPath returns the lock file used for root.
func LockPath(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(os.TempDir(), "sortforge-"+hex.EncodeToString(sum[:8])+".lock")
}

// Acquire takes the lock for root without blocking.
func Acquire(root string) (*Lock, error) {
	fl := flock.New(LockPath(root))
	ok, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", root, err)
	}
	if !ok {
		_ = fl.Close()
		return nil, &LockedError{Root: root}
	}
	slog.Debug("acquired directory lock", "root", root, "lock", fl.Path())
	return &Lock{root: root, fl: fl}, nil
}

// Release drops the lock. It is idempotent.
func (l *Lock) Release() {
	if l == nil || l.fl == nil {
		return
	}
	if err := l.fl.Unlock(); err != nil {
		slog.Warn("failed to release lock", "root", l.root, "error", err)
	}
}
