package clock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/flavioheleno/ssd1306"
	"github.com/flavioheleno/ssd1306/i2cbus"
)

// Interval is the pause between frames, about 60 frames per second.
const Interval = (1000 / 60) * time.Millisecond

// Source is a monotonic millisecond counter with an unspecified epoch.
type Source interface {
	Millis() uint64
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func() uint64

// Millis calls f.
func (f SourceFunc) Millis() uint64 {
	return f()
}

// SinceBoot returns a Source counting from now on the monotonic clock.
func SinceBoot() Source {
	return &bootSource{start: time.Now()}
}

type bootSource struct {
	start time.Time
}

func (b *bootSource) Millis() uint64 {
	return uint64(time.Since(b.start).Milliseconds())
}

// Shower is a two-line display, such as *oled.Display.
type Shower interface {
	Show(lineA, lineB string) error
}

// DefaultLabel is the second line shown for a panel at addr.
func DefaultLabel(addr uint16) string {
	return fmt.Sprintf("addr=0x%02X", addr)
}

// Loop samples Source, formats it and shows it with Label, then sleeps
// Interval. Show errors end the loop; they are never retried.
type Loop struct {
	Display Shower
	Source  Source // default: SinceBoot()
	Label   string // default: DefaultLabel(0x3C)

	Interval time.Duration // default: Interval
	Frames   int           // frames to render, 0 for no limit

	// Sleep waits between frames. The default returns early with ctx.Err()
	// when ctx is done.
	Sleep  func(ctx context.Context, d time.Duration) error
	Logger *slog.Logger // default: slog.Default()
}

// Run renders frames until Show fails, ctx is done or Frames frames were
// shown. The firmware passes a context that is never canceled.
func (l *Loop) Run(ctx context.Context) error {
	if l.Display == nil {
		return errors.New("clock: nil display")
	}
	src := l.Source
	if src == nil {
		src = SinceBoot()
	}
	label := l.Label
	if label == "" {
		label = DefaultLabel(ssd1306.DefaultAddr)
	}
	interval := l.Interval
	if interval <= 0 {
		interval = Interval
	}
	sleep := l.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("render loop started", "interval", interval, "label", label)
	buf := make([]byte, 0, Len)
	for n := 0; l.Frames == 0 || n < l.Frames; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		buf = Append(buf[:0], src.Millis())
		if err := l.Display.Show(string(buf), label); err != nil {
			logger.Error("render failed", "kind", Kind(err), "frame", n, "err", err)
			return err
		}
		if err := sleep(ctx, interval); err != nil {
			return err
		}
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Kind names the kind of a display pipeline error for logs: "nack", "bus",
// "timeout", "uninitialized", "io" or "unknown".
func Kind(err error) string {
	var busErr *i2cbus.Error
	var ioErr *ssd1306.IOError
	switch {
	case errors.Is(err, ssd1306.ErrUninitialized):
		return "uninitialized"
	case errors.As(err, &busErr):
		return busErr.Kind.String()
	case errors.As(err, &ioErr):
		return "io"
	default:
		return "unknown"
	}
}
