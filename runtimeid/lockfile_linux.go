//go:build linux

package runtimeid

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// FileLock backs a Token with an OS-level advisory lock, extending the
// in-process registry's "one open socket per board" guarantee across
// separate host processes. A real HID transport is typically exclusive per
// OS handle anyway, but embedders that want the invariant enforced across
// process boundaries can opt into this.
type FileLock struct {
	fd int
}

// LockFile takes an exclusive, non-blocking advisory lock on path,
// creating it if necessary. It fails immediately (rather than blocking) if
// another process already holds the lock, mirroring Acquire's "fail fast"
// contract for an in-use identifier.
func LockFile(path string) (*FileLock, error) {
	fd, err := unix.Open(path, unix.O_CREAT|unix.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("runtimeid: open lock file %s: %w", path, err)
	}
	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("runtimeid: lock file %s already held: %w", path, err)
	}
	return &FileLock{fd: fd}, nil
}

// Unlock releases the advisory lock and closes the underlying fd.
func (l *FileLock) Unlock() error {
	if l == nil || l.fd < 0 {
		return nil
	}
	err := unix.Flock(l.fd, unix.LOCK_UN)
	_ = unix.Close(l.fd)
	l.fd = -1
	return err
}
