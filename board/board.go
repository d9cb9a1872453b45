// Package board loads the YAML board file of the host clock.
package board

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"github.com/flavioheleno/ssd1306"
	"github.com/flavioheleno/ssd1306/i2cbus"
)

// Config describes how the panel is wired.
type Config struct {
	// Bus is the I²C bus name passed to i2creg.Open. Empty selects the first
	// registered bus.
	Bus string `yaml:"bus"`

	// Addr is the 7-bit panel address.
	Addr uint16 `yaml:"addr"`

	// SpeedHz is the bus clock.
	SpeedHz int64 `yaml:"speed_hz"`

	// FPS is the target frame rate of the render loop.
	FPS int `yaml:"fps"`

	// Label is the second line. Empty shows the panel address.
	Label string `yaml:"label"`

	// MaxTxLen is the longest I²C write, control byte included.
	MaxTxLen int `yaml:"max_tx_len"`

	// Simulate draws on a simulated panel instead of the bus.
	Simulate bool `yaml:"simulate"`
}

// Default returns the configuration of the reference board.
func Default() *Config {
	return &Config{
		Addr:     ssd1306.DefaultAddr,
		SpeedHz:  int64(i2cbus.StandardMode / physic.Hertz),
		FPS:      60,
		MaxTxLen: ssd1306.DefaultMaxTxLen,
	}
}

// Normalize fills in zero values with the defaults.
func (c *Config) Normalize() {
	d := Default()
	if c.Addr == 0 {
		c.Addr = d.Addr
	}
	if c.SpeedHz <= 0 {
		c.SpeedHz = d.SpeedHz
	}
	if c.FPS <= 0 {
		c.FPS = d.FPS
	}
	if c.MaxTxLen == 0 {
		c.MaxTxLen = d.MaxTxLen
	}
}

// Validate reports values the panel cannot use.
func (c *Config) Validate() error {
	if c.Addr > 0x7F {
		return fmt.Errorf("board: address 0x%X is not a 7-bit address", c.Addr)
	}
	if c.MaxTxLen < ssd1306.MinTxLen {
		return fmt.Errorf("board: max_tx_len %d is below %d", c.MaxTxLen, ssd1306.MinTxLen)
	}
	if c.FPS > 1000 {
		return fmt.Errorf("board: fps %d is above 1000", c.FPS)
	}
	return nil
}

// Speed returns SpeedHz as a physic.Frequency.
func (c *Config) Speed() physic.Frequency {
	return physic.Frequency(c.SpeedHz) * physic.Hertz
}

// Interval is the pause between frames: 1000/FPS whole milliseconds, 16 ms
// at 60 fps.
func (c *Config) Interval() time.Duration {
	return time.Duration(1000/c.FPS) * time.Millisecond
}

// Opts returns the driver options.
func (c *Config) Opts() *ssd1306.Opts {
	return &ssd1306.Opts{Addr: c.Addr, MaxTxLen: c.MaxTxLen}
}

// Load reads the board file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("board: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("board: %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
