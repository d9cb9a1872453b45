package clock

import (
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		ms   uint64
		want string
	}{
		{0, "00:00.00"},
		{9, "00:00.00"},
		{10, "00:00.01"},
		{999, "00:00.99"},
		{1_000, "00:01.00"},
		{59_999, "00:59.99"},
		{60_000, "01:00.00"},
		{754_560, "12:34.56"},
		{3_600_000, "60:00.00"},
		{5_999_999, "99:59.99"},
		{6_000_000, "00:00.00"},
		{6_061_010, "01:01.01"},
		{^uint64(0), "25:51.61"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.ms), func(t *testing.T) {
			if got := Format(tt.ms); got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

// Format agrees with the arithmetic it is defined by.
func TestFormatMatchesDefinition(t *testing.T) {
	for ms := uint64(0); ms < 7_000_000; ms += 997 {
		c := ms / 10
		s := c / 100
		want := fmt.Sprintf("%02d:%02d.%02d", (s/60)%100, s%60, c%100)
		if got := Format(ms); got != want {
			t.Fatalf("Format(%d) = %q, want %q", ms, got, want)
		}
	}
}

func TestAppend(t *testing.T) {
	buf := make([]byte, 0, 16)
	buf = append(buf, "t="...)
	got := Append(buf, 61_230)
	if string(got) != "t=01:01.23" {
		t.Errorf("Append() = %q, want %q", got, "t=01:01.23")
	}
	if &got[0] != &buf[0] {
		t.Error("Append() reallocated a buffer with enough room")
	}
}

func TestAppendAllocs(t *testing.T) {
	buf := make([]byte, 0, Len)
	allocs := testing.AllocsPerRun(100, func() {
		buf = Append(buf[:0], 123_456)
	})
	if allocs != 0 {
		t.Errorf("Append() allocated %v times per run", allocs)
	}
}
