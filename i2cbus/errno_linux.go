//go:build linux && !baremetal

package i2cbus

import (
	"errors"
	"syscall"
)

// errnoKind maps the errnos of Linux i2c-dev, as returned through periph's
// sysfs-i2c, to a kind.
func errnoKind(err error) (Kind, bool) {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return 0, false
	}
	switch errno {
	case syscall.ENXIO, syscall.EREMOTEIO:
		return KindNack, true
	case syscall.ETIMEDOUT:
		return KindTimeout, true
	}
	return 0, false
}
