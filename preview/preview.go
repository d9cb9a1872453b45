// Package preview renders a monochrome frame on a terminal using ANSI color
// codes, or to a PNG file.
//
// Useful to watch the clock without a panel attached, together with
// package sim.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/fogleman/gg"
	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"

	"github.com/flavioheleno/ssd1306"
	"github.com/flavioheleno/ssd1306/image1bit"
)

// Opts represents the options available for the terminal preview.
type Opts struct {
	W       io.Writer // default: colorable stdout
	Palette *ansi256.Palette
	On      color.NRGBA // color of lit pixels, default: cyan
	Off     color.NRGBA // color of dark pixels, default: black

	_ struct{}
}

// Dev is a 128x32 panel emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	on, off string

	frame  *image1bit.VerticalLSB
	frames int
	buf    bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	on, off := opts.On, opts.Off
	if on == (color.NRGBA{}) {
		on = color.NRGBA{0, 255, 255, 255}
	}
	if off == (color.NRGBA{}) {
		off = color.NRGBA{0, 0, 0, 255}
	}
	return &Dev{
		w:     w,
		on:    p.Block(on),
		off:   p.Block(off),
		frame: image1bit.NewVerticalLSB(image.Rect(0, 0, ssd1306.Width, ssd1306.Height)),
	}
}

func (d *Dev) String() string {
	return "preview.Dev"
}

// Halt implements conn.Resource.
//
// It resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.frame.Bounds()
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.frame, r, src, sp, draw.Src)
	return d.refresh()
}

// Frames returns the number of frames written so far.
func (d *Dev) Frames() int {
	return d.frames
}

func (d *Dev) refresh() error {
	d.buf.Reset()
	if d.frames != 0 {
		// Redraw in place.
		fmt.Fprintf(&d.buf, "\033[%dA", ssd1306.Height)
	}
	for y := 0; y < ssd1306.Height; y++ {
		_, _ = d.buf.WriteString("\r\033[0m")
		for x := 0; x < ssd1306.Width; x++ {
			if d.frame.BitAt(x, y) {
				_, _ = d.buf.WriteString(d.on)
			} else {
				_, _ = d.buf.WriteString(d.off)
			}
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.frames++
	_, err := d.buf.WriteTo(d.w)
	return err
}

// Scale returns img enlarged by scale, with lit pixels drawn in on over a
// black background.
func Scale(img image.Image, scale int, on color.Color) image.Image {
	if scale < 1 {
		scale = 1
	}
	r := img.Bounds()
	dc := gg.NewContext(r.Dx()*scale, r.Dy()*scale)
	dc.SetColor(color.Black)
	dc.Clear()
	dc.SetColor(on)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if image1bit.BitModel.Convert(img.At(x, y)) != image1bit.On {
				continue
			}
			dc.DrawRectangle(float64((x-r.Min.X)*scale), float64((y-r.Min.Y)*scale), float64(scale), float64(scale))
		}
	}
	dc.Fill()
	return dc.Image()
}

// SavePNG writes img enlarged by scale to path.
func SavePNG(path string, img image.Image, scale int) error {
	if err := gg.SavePNG(path, Scale(img, scale, color.White)); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	return nil
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
