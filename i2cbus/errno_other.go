//go:build !linux || baremetal

package i2cbus

func errnoKind(err error) (Kind, bool) {
	return 0, false
}
