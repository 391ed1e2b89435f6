//go:build !linux

package hidtransport

import "errors"

// ErrUnsupportedPlatform is returned by Open on platforms without a native
// hidraw backend in this module. Real cross-platform HID access is out of
// scope here; embedders on other platforms supply their own
// transport.Transport.
var ErrUnsupportedPlatform = errors.New("hidtransport: unsupported platform")

type Device struct{}

func Open(path string) (*Device, error) {
	return nil, ErrUnsupportedPlatform
}

func (d *Device) ReadReport(buf []byte) (int, error) { return 0, ErrUnsupportedPlatform }
func (d *Device) WriteReport(buf []byte) error       { return ErrUnsupportedPlatform }
func (d *Device) Close() error                       { return nil }
