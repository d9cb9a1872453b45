package i2cbus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"periph.io/x/conn/v3/i2c/i2ctest"
)

type timeoutErr struct{}

func (timeoutErr) Error() string { return "controller busy" }
func (timeoutErr) Timeout() bool { return true }

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
		kind Kind
	}{
		{"deadline", context.DeadlineExceeded, ErrTimeout, KindTimeout},
		{"wrapped deadline", fmt.Errorf("tx: %w", context.DeadlineExceeded), ErrTimeout, KindTimeout},
		{"timeout interface", timeoutErr{}, ErrTimeout, KindTimeout},
		{"timeout message", errors.New("I2C timeout during write"), ErrTimeout, KindTimeout},
		{"nack message", errors.New("sysfs-i2c: remote I/O error (NACK)"), ErrNack, KindNack},
		{"expected ack", errors.New("I2C error: expected ACK not NACK"), ErrNack, KindNack},
		{"signal timeout", errors.New("I2C timeout on signal stop"), ErrTimeout, KindTimeout},
		{"address nack message", errors.New("ioctl: no such device or address"), ErrNack, KindNack},
		{"other", errors.New("arbitration lost"), ErrBusError, KindBus},
		{"nack inside a word", errors.New("i2c: unexpected snack byte"), ErrBusError, KindBus},
		{"ack inside a word", errors.New("i2c: stack overflow, no acknowledgement buffer"), ErrBusError, KindBus},
		{"bare timeout word", errors.New("i2c: timeout register misconfigured"), ErrBusError, KindBus},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Classify(0x3C, tt.err)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Classify(%v) = %v, want kind %v", tt.err, err, tt.want)
			}
			var e *Error
			if !errors.As(err, &e) {
				t.Fatalf("Classify(%v) returned %T, want *Error", tt.err, err)
			}
			if e.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", e.Kind, tt.kind)
			}
			if e.Addr != 0x3C {
				t.Errorf("Addr = 0x%X, want 0x3C", e.Addr)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("Classify() lost the controller error %v", tt.err)
			}
		})
	}
}

func TestClassifyNil(t *testing.T) {
	if err := Classify(0x3C, nil); err != nil {
		t.Errorf("Classify(nil) = %v, want nil", err)
	}
}

func TestClassifyKeepsError(t *testing.T) {
	orig := &Error{Addr: 0x10, Kind: KindNack}
	err := Classify(0x3C, fmt.Errorf("outer: %w", orig))
	var e *Error
	if !errors.As(err, &e) || e != orig {
		t.Errorf("Classify() = %v, want the existing *Error", err)
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	err := &Error{Addr: 0x3C, Kind: KindTimeout}
	if errors.Is(err, ErrNack) || errors.Is(err, ErrBusError) {
		t.Errorf("%v matches a foreign kind", err)
	}
	if want := "i2cbus: write to 0x3C: timeout"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestFromPeriphRecordsWrites(t *testing.T) {
	rec := &i2ctest.Record{}
	b := FromPeriph(rec)
	payload := []byte{0x00, 0xAE, 0xAF}
	if err := b.Write(0x3C, payload); err != nil {
		t.Fatal(err)
	}
	payload[1] = 0xFF // the bus must not keep a reference
	if len(rec.Ops) != 1 {
		t.Fatalf("recorded %d ops, want 1", len(rec.Ops))
	}
	op := rec.Ops[0]
	if op.Addr != 0x3C {
		t.Errorf("Addr = 0x%X, want 0x3C", op.Addr)
	}
	if !bytes.Equal(op.W, []byte{0x00, 0xAE, 0xAF}) {
		t.Errorf("W = % X, want 00 AE AF", op.W)
	}
	if len(op.R) != 0 {
		t.Errorf("R = % X, want empty", op.R)
	}
}

func TestFromPeriphPlayback(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x3C, W: []byte{0x40, 0x01, 0x02}},
		},
	}
	b := FromPeriph(pb)
	if err := b.Write(0x3C, []byte{0x40, 0x01, 0x02}); err != nil {
		t.Fatal(err)
	}
	if err := Close(b); err != nil {
		t.Fatal(err)
	}
}

func TestFromPeriphMismatchIsBusError(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: 0x3C, W: []byte{0x00}}},
		DontPanic: true,
	}
	b := FromPeriph(pb)
	err := b.Write(0x3D, []byte{0x00})
	if err == nil {
		t.Fatal("expected an error for an unexpected address")
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("Write() returned %T, want *Error", err)
	}
}

func TestInvalidAddress(t *testing.T) {
	rec := &i2ctest.Record{}
	b := FromPeriph(rec)
	err := b.Write(0x80, []byte{0x00})
	if !errors.Is(err, ErrBusError) {
		t.Fatalf("Write(0x80) = %v, want bus error", err)
	}
	if len(rec.Ops) != 0 {
		t.Errorf("recorded %d ops for an invalid address", len(rec.Ops))
	}
}

type fakeTinyGo struct {
	addr uint16
	w    []byte
	err  error
}

func (f *fakeTinyGo) Tx(addr uint16, w, r []byte) error {
	f.addr = addr
	f.w = append([]byte(nil), w...)
	return f.err
}

func TestFromTinyGo(t *testing.T) {
	f := &fakeTinyGo{}
	b := FromTinyGo(f)
	if err := b.Write(0x3C, []byte{0x00, 0xA6}); err != nil {
		t.Fatal(err)
	}
	if f.addr != 0x3C || !bytes.Equal(f.w, []byte{0x00, 0xA6}) {
		t.Errorf("Tx(0x%X, % X), want Tx(0x3C, 00 A6)", f.addr, f.w)
	}

	f.err = errors.New("I2C timeout during write")
	if err := b.Write(0x3C, []byte{0x00}); !errors.Is(err, ErrTimeout) {
		t.Errorf("Write() = %v, want timeout", err)
	}
	if err := Close(b); err != nil {
		t.Errorf("Close() = %v, want nil for a bus without resources", err)
	}
}

func TestBusFunc(t *testing.T) {
	var got []byte
	b := BusFunc(func(addr uint16, p []byte) error {
		got = append(got, p...)
		return nil
	})
	if err := b.Write(0x3C, []byte{1, 2}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, []byte{1, 2}) {
		t.Errorf("got % X, want 01 02", got)
	}
}
