package board

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"periph.io/x/conn/v3/physic"

	"github.com/flavioheleno/ssd1306/clock"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "board.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Addr != 0x3C || c.SpeedHz != 100000 || c.FPS != 60 || c.MaxTxLen != 32 {
		t.Errorf("Default() = %+v", c)
	}
	if c.Speed() != 100*physic.KiloHertz {
		t.Errorf("Speed() = %s, want 100kHz", c.Speed())
	}
	if err := c.Validate(); err != nil {
		t.Error(err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Config
	}{
		{
			"full",
			"bus: /dev/i2c-1\naddr: 0x3D\nspeed_hz: 400000\nfps: 30\nlabel: kitchen\nmax_tx_len: 64\nsimulate: true\n",
			Config{Bus: "/dev/i2c-1", Addr: 0x3D, SpeedHz: 400000, FPS: 30, Label: "kitchen", MaxTxLen: 64, Simulate: true},
		},
		{
			"partial",
			"bus: \"1\"\n",
			Config{Bus: "1", Addr: 0x3C, SpeedHz: 100000, FPS: 60, MaxTxLen: 32},
		},
		{
			"empty",
			"",
			Config{Addr: 0x3C, SpeedHz: 100000, FPS: 60, MaxTxLen: 32},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeFile(t, tt.content))
			if err != nil {
				t.Fatal(err)
			}
			if *c != tt.want {
				t.Errorf("Load() = %+v, want %+v", *c, tt.want)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "nope.yaml")} {
		c, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) = %v", path, err)
		}
		if *c != *Default() {
			t.Errorf("Load(%q) = %+v, want defaults", path, *c)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "addr: [\n"},
		{"type", "fps: fast\n"},
		{"wide address", "addr: 0x80\n"},
		{"tiny transactions", "max_tx_len: 1\n"},
		{"init does not fit", "max_tx_len: 25\n"},
		{"window does not fit", "max_tx_len: 2\n"},
		{"too fast", "fps: 5000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tt.content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestOpts(t *testing.T) {
	c := &Config{Addr: 0x3D, MaxTxLen: 40}
	o := c.Opts()
	if o.Addr != 0x3D || o.MaxTxLen != 40 {
		t.Errorf("Opts() = %+v", o)
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		fps  int
		want time.Duration
	}{
		{60, 16 * time.Millisecond},
		{30, 33 * time.Millisecond},
		{7, 142 * time.Millisecond},
		{1000, time.Millisecond},
	}
	for _, tt := range tests {
		c := &Config{FPS: tt.fps}
		if got := c.Interval(); got != tt.want {
			t.Errorf("Interval() at %d fps = %v, want %v", tt.fps, got, tt.want)
		}
	}
	if got := Default().Interval(); got != clock.Interval {
		t.Errorf("default Interval() = %v, want the render loop default %v", got, clock.Interval)
	}
}
