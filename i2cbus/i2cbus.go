// Package i2cbus is the blocking, write-only I²C master used to reach the
// panel.
//
// A Bus owns nothing but the wire: it does not retry, it does not split
// writes and it is not safe for concurrent use. Every failure is reported as
// an *Error carrying one of three kinds (NACK, bus error, timeout) so callers
// can match them with errors.Is against ErrNack, ErrBusError and ErrTimeout.
package i2cbus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"tinygo.org/x/drivers"
)

// StandardMode is the bus speed the panel is driven at.
const StandardMode = 100 * physic.KiloHertz

// Bus writes bytes to a 7-bit addressed slave.
//
// Write returns once the slave acknowledged every byte or the controller
// reported a failure.
type Bus interface {
	Write(addr uint16, p []byte) error
}

// BusFunc adapts a function to the Bus interface.
type BusFunc func(addr uint16, p []byte) error

// Write calls f(addr, p).
func (f BusFunc) Write(addr uint16, p []byte) error {
	return f(addr, p)
}

// Kind classifies a transport failure.
type Kind uint8

// Transport failure kinds.
const (
	KindBus Kind = iota
	KindNack
	KindTimeout
)

func (k Kind) String() string {
	switch k {
	case KindNack:
		return "nack"
	case KindTimeout:
		return "timeout"
	default:
		return "bus"
	}
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrNack     = errors.New("i2cbus: nack")
	ErrBusError = errors.New("i2cbus: bus error")
	ErrTimeout  = errors.New("i2cbus: timeout")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNack:
		return ErrNack
	case KindTimeout:
		return ErrTimeout
	default:
		return ErrBusError
	}
}

// Error is a failed write.
type Error struct {
	Addr uint16
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("i2cbus: write to 0x%02X: %s", e.Addr, e.Kind)
	}
	return fmt.Sprintf("i2cbus: write to 0x%02X: %s: %v", e.Addr, e.Kind, e.Err)
}

// Unwrap returns the controller error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of e's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// Classify wraps a controller error into an *Error.
//
// Controllers do not agree on error types, so the kind is inferred from the
// error chain: deadline and Timeout() errors are timeouts, Linux errnos and
// the messages of known controllers are mapped to their kind, anything else
// is a bus error.
// A nil err returns nil.
func Classify(addr uint16, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Addr: addr, Kind: kindOf(err), Err: err}
}

// controllerMessages maps error texts of known controllers to a kind. The
// match is on the lowercased message and must be specific enough not to
// catch unrelated errors.
var controllerMessages = []struct {
	text string
	kind Kind
}{
	// TinyGo machine errI2CWriteTimeout, errI2CReadTimeout, errI2CBusReadyTimeout
	// and the errI2CSignal*Timeout family.
	{"i2c timeout", KindTimeout},
	// ETIMEDOUT as printed by periph's sysfs-i2c and Linux i2c-dev.
	{"connection timed out", KindTimeout},
	// TinyGo machine errI2CAckExpected.
	{"expected ack not nack", KindNack},
	// EREMOTEIO: Linux i2c-dev adapters report a data byte NACK with it.
	{"remote i/o error", KindNack},
	// ENXIO: Linux i2c-dev adapters report an address NACK with it.
	{"no such device or address", KindNack},
}

func kindOf(err error) Kind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var t interface{ Timeout() bool }
	if errors.As(err, &t) && t.Timeout() {
		return KindTimeout
	}
	if k, ok := errnoKind(err); ok {
		return k
	}
	msg := strings.ToLower(err.Error())
	for _, m := range controllerMessages {
		if strings.Contains(msg, m.text) {
			return m.kind
		}
	}
	return KindBus
}

func checkAddr(addr uint16) error {
	if addr > 0x7F {
		return &Error{Addr: addr, Kind: KindBus, Err: fmt.Errorf("invalid 7-bit address 0x%X", addr)}
	}
	return nil
}

// Close releases b if it holds a closable resource.
func Close(b Bus) error {
	if c, ok := b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// FromPeriph returns a Bus writing through a periph.io I²C bus.
//
// Closing the returned Bus closes b when b is an i2c.BusCloser.
func FromPeriph(b i2c.Bus) Bus {
	return &periphBus{b: b}
}

// Open opens the periph.io I²C bus called name ("" for the first one) and
// sets its clock to speed. host.Init() must have been called.
func Open(name string, speed physic.Frequency) (Bus, error) {
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, fmt.Errorf("i2cbus: open %q: %w", name, err)
	}
	if speed != 0 {
		if err := b.SetSpeed(speed); err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("i2cbus: set speed %s: %w", speed, err)
		}
	}
	return FromPeriph(b), nil
}

type periphBus struct {
	b i2c.Bus
}

func (p *periphBus) Write(addr uint16, w []byte) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	return Classify(addr, p.b.Tx(addr, w, nil))
}

func (p *periphBus) Close() error {
	if c, ok := p.b.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (p *periphBus) String() string {
	return p.b.String()
}

// FromTinyGo returns a Bus writing through a TinyGo I²C peripheral such as
// machine.I2C0. The peripheral must already be configured.
func FromTinyGo(b drivers.I2C) Bus {
	return &tinygoBus{b: b}
}

type tinygoBus struct {
	b drivers.I2C
}

func (t *tinygoBus) Write(addr uint16, w []byte) error {
	if err := checkAddr(addr); err != nil {
		return err
	}
	return Classify(addr, t.b.Tx(addr, w, nil))
}

func (t *tinygoBus) String() string {
	return "tinygo-i2c"
}
