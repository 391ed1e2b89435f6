//go:build linux

// Package hidtransport provides a best-effort transport.Transport backed by
// a Linux hidraw character device. Real board discovery (finding which
// /dev/hidrawN node belongs to an Iotzio board) is out of scope here, the
// same way it is out of scope for the socket core — callers resolve a path
// themselves (e.g. by walking /sys/class/hidraw and matching the USB
// vendor/product IDs exported by the root package) and pass it to Open.
package hidtransport

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/iotzio-project/iotzio-go/internal/logging"
)

// Device is a transport.Transport backed by a hidraw character device.
type Device struct {
	fd     int
	mu     sync.Mutex
	closed bool
	logger *logging.Logger
}

// Open opens the hidraw node at path for read/write. It retries briefly on
// ENOENT, since udev can create the hidraw node a beat after USB
// enumeration completes.
func Open(path string) (*Device, error) {
	const maxRetries = 20
	retryDelay := unix.NsecToTimespec((50 * time.Millisecond).Nanoseconds())

	var fd int
	var err error
	for i := 0; i < maxRetries; i++ {
		fd, err = unix.Open(path, unix.O_RDWR, 0)
		if err == nil {
			break
		}
		if err != unix.ENOENT {
			return nil, fmt.Errorf("hidtransport: open %s: %w", path, err)
		}
		_ = unix.Nanosleep(&retryDelay, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("hidtransport: %s did not appear: %w", path, err)
	}

	return &Device{fd: fd, logger: logging.Default()}, nil
}

func (d *Device) ReadReport(buf []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, fmt.Errorf("hidtransport: read: %w", transportErrClosed)
	}
	n, err := unix.Read(d.fd, buf)
	if err != nil {
		return 0, fmt.Errorf("hidtransport: read: %w", err)
	}
	d.logger.Debugf("hidtransport: read %d bytes", n)
	return n, nil
}

func (d *Device) WriteReport(buf []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return fmt.Errorf("hidtransport: write: %w", transportErrClosed)
	}
	n, err := unix.Write(d.fd, buf)
	if err != nil {
		return fmt.Errorf("hidtransport: write: %w", err)
	}
	if n != len(buf) {
		return fmt.Errorf("hidtransport: short write: wrote %d of %d bytes", n, len(buf))
	}
	return nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true
	return unix.Close(d.fd)
}
