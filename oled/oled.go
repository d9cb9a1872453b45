// Package oled shows two lines of text on a 128x32 SSD1306 panel.
//
// Display is the only owner of the panel and its bus. Each Show rebuilds the
// whole frame and flushes it, so a failed Show leaves nothing half drawn
// for the next successful one to inherit.
package oled

import (
	"github.com/flavioheleno/ssd1306"
	"github.com/flavioheleno/ssd1306/text"
)

// Baselines of the two text rows.
const (
	BaselineA = 15
	BaselineB = 30
)

// Display wraps an SSD1306 and its frame.
type Display struct {
	dev *ssd1306.Dev
}

// New returns a Display drawing on dev. dev is owned by the Display from
// now on.
func New(dev *ssd1306.Dev) *Display {
	return &Display{dev: dev}
}

// Init initializes the panel.
func (d *Display) Init() error {
	return d.dev.Init()
}

// Show draws lineA and lineB left aligned on the two rows and flushes the
// frame. Lines longer than 16 characters are cut at the right edge.
func (d *Display) Show(lineA, lineB string) error {
	img := d.dev.Buffer()
	img.Clear()
	text.DrawText(img, 0, BaselineA, lineA)
	text.DrawText(img, 0, BaselineB, lineB)
	return d.dev.Flush()
}

// Clear blanks the panel. Flush errors are dropped.
func (d *Display) Clear() {
	d.dev.Buffer().Clear()
	_ = d.dev.Flush()
}

// Dev returns the underlying driver.
func (d *Display) Dev() *ssd1306.Dev {
	return d.dev
}

// Close releases the panel's bus.
func (d *Display) Close() error {
	return d.dev.Close()
}
