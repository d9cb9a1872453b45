// Package ssd1306 controls a 128x32 monochrome SSD1306 OLED display via I²C.
//
// The driver keeps a full frame in memory and writes all of it on every
// Flush.
package ssd1306

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"
	"tinygo.org/x/drivers"

	"github.com/flavioheleno/ssd1306/i2cbus"
	"github.com/flavioheleno/ssd1306/image1bit"
)

// Panel geometry.
const (
	Width     = 128
	Height    = 32
	Pages     = Height / 8
	FrameSize = Width * Height / 8
)

const (
	// DefaultAddr is the 7-bit I²C address of most 0.91" modules.
	DefaultAddr = 0x3C
	// DefaultMaxTxLen bounds a single I²C transaction, control byte included.
	DefaultMaxTxLen = 32
	// MinTxLen is the smallest accepted MaxTxLen: the init block and its
	// control byte in one transaction.
	MinTxLen = 26
)

const (
	_CHARGEPUMP          = 0x8D
	_COLUMNADDR          = 0x21
	_COMSCANDEC          = 0xC8
	_DISPLAYALLON_RESUME = 0xA4
	_DISPLAYOFF          = 0xAE
	_DISPLAYON           = 0xAF
	_INVERTDISPLAY       = 0xA7
	_MEMORYMODE          = 0x20
	_NORMALDISPLAY       = 0xA6
	_PAGEADDR            = 0x22
	_SETCOMPINS          = 0xDA
	_SETCONTRAST         = 0x81
	_SETDISPLAYCLOCKDIV  = 0xD5
	_SETDISPLAYOFFSET    = 0xD3
	_SETMULTIPLEX        = 0xA8
	_SETPRECHARGE        = 0xD9
	_SETSEGMENTREMAP     = 0xA1
	_SETSTARTLINE        = 0x40
	_SETVCOMDETECT       = 0xDB
)

const (
	i2cCmd  = 0x00 // I²C transaction has stream of command bytes
	i2cData = 0x40 // I²C transaction has stream of data bytes
)

// initCmds is the power-up sequence of a 128x32 0.91" module.
var initCmds = []byte{
	_DISPLAYOFF,               // Display OFF
	_SETDISPLAYCLOCKDIV, 0x80, // Clock divide ratio / oscillator frequency
	_SETMULTIPLEX, Height - 1, // Multiplex ratio, 32 rows
	_SETDISPLAYOFFSET, 0x00, // Display offset
	_SETSTARTLINE,     // Start line 0
	_CHARGEPUMP, 0x14, // Enable charge pump regulator
	_MEMORYMODE, 0x00, // Horizontal addressing mode
	_SETSEGMENTREMAP,     // Column 127 mapped to SEG0
	_COMSCANDEC,          // Scan COM[N-1] to COM0
	_SETCOMPINS, 0x02,    // Sequential COM pins, 32 rows
	_SETCONTRAST, 0x8F,   // Contrast
	_SETPRECHARGE, 0xF1,  // Pre-charge period
	_SETVCOMDETECT, 0x40, // VCOMH deselect level
	_DISPLAYALLON_RESUME, // Display follows RAM content
	_NORMALDISPLAY,       // Non-inverted
	_DISPLAYON,           // Display ON
}

// windowCmds selects the whole panel as the RAM write window.
var windowCmds = []byte{
	_COLUMNADDR, 0x00, Width - 1,
	_PAGEADDR, 0x00, Pages - 1,
}

// ErrUninitialized is returned when the panel is used before Init.
var ErrUninitialized = errors.New("ssd1306: display not initialized")

// IOError is a transport failure while talking to the panel.
type IOError struct {
	Op  string // "init", "flush", ...
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("ssd1306: %s: %v", e.Op, e.Err)
}

// Unwrap returns the transport error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Opts is the configuration for the SSD1306 display.
type Opts struct {
	// Addr is the 7-bit I²C address (default: 0x3C).
	Addr uint16
	// MaxTxLen is the largest I²C transaction, control byte included
	// (default: 32, minimum: MinTxLen). Longer data runs are split; command
	// runs always fit in one transaction.
	MaxTxLen int
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Addr:     DefaultAddr,
	MaxTxLen: DefaultMaxTxLen,
}

// Dev is the device handle for the SSD1306 display.
type Dev struct {
	// Communication
	bus   i2cbus.Bus
	addr  uint16
	maxTx int
	tx    []byte // Scratch transaction, control byte first

	// Display geometry
	rect image.Rectangle

	// Frame, flushed whole
	buffer *image1bit.VerticalLSB

	// State
	initialized bool
	halted      bool
}

// New returns an uninitialized Dev writing to bus. Call Init before
// flushing.
//
// opts can be nil to use DefaultOpts.
func New(bus i2cbus.Bus, opts *Opts) (*Dev, error) {
	if bus == nil {
		return nil, errors.New("ssd1306: nil bus")
	}
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0 {
		o.Addr = DefaultAddr
	}
	if o.MaxTxLen == 0 {
		o.MaxTxLen = DefaultMaxTxLen
	}
	if o.Addr > 0x7F {
		return nil, fmt.Errorf("ssd1306: invalid 7-bit address 0x%X", o.Addr)
	}
	if o.MaxTxLen < MinTxLen {
		return nil, fmt.Errorf("ssd1306: max transaction length %d is below %d", o.MaxTxLen, MinTxLen)
	}
	rect := image.Rect(0, 0, Width, Height)
	return &Dev{
		bus:    bus,
		addr:   o.Addr,
		maxTx:  o.MaxTxLen,
		tx:     make([]byte, o.MaxTxLen),
		rect:   rect,
		buffer: image1bit.NewVerticalLSB(rect),
	}, nil
}

// Init sends the initialization sequence as one command run and marks the
// display ready. It can be called again to recover a panel that lost power.
func (d *Dev) Init() error {
	d.initialized = false
	d.halted = false
	if err := d.sendCommands(initCmds); err != nil {
		return &IOError{Op: "init", Err: err}
	}
	d.initialized = true
	return nil
}

// Initialized reports whether Init succeeded.
func (d *Dev) Initialized() bool {
	return d.initialized
}

// Addr returns the I²C address of the panel.
func (d *Dev) Addr() uint16 {
	return d.addr
}

// Buffer returns the frame that the next Flush writes. Callers draw into
// it directly.
func (d *Dev) Buffer() *image1bit.VerticalLSB {
	return d.buffer
}

// Flush writes the whole frame: one command run selecting every column and
// page, then the 512 frame bytes as data runs.
func (d *Dev) Flush() error {
	if !d.initialized {
		return ErrUninitialized
	}
	if err := d.sendCommands(windowCmds); err != nil {
		return &IOError{Op: "flush", Err: err}
	}
	if err := d.sendData(d.buffer.Pix); err != nil {
		return &IOError{Op: "flush", Err: err}
	}
	return nil
}

// ColorModel implements display.Drawer.
//
// It is a one bit color model, as implemented by image1bit.Bit.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Draw implements display.Drawer.
//
// It copies src into the frame and flushes it. Pixels of the frame outside r
// keep their value.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if !d.initialized {
		return ErrUninitialized
	}
	if img, ok := src.(*image1bit.VerticalLSB); ok && r == d.rect && img.Rect == d.rect && sp == (image.Point{}) {
		// Exact size, full frame, image1bit encoding: fast path!
		copy(d.buffer.Pix, img.Pix)
	} else {
		draw.Src.Draw(d.buffer, r.Intersect(d.rect), src, sp)
	}
	return d.Flush()
}

// Write replaces the frame with pixels and flushes it.
//
// The format is the one of image1bit.VerticalLSB.Pix: horizontal bands of 8
// pixels high, one byte per column.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != FrameSize {
		return 0, fmt.Errorf("ssd1306: invalid pixel stream length; expected %d bytes, got %d bytes", FrameSize, len(pixels))
	}
	if !d.initialized {
		return 0, ErrUninitialized
	}
	copy(d.buffer.Pix, pixels)
	if err := d.Flush(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// SetContrast changes the screen contrast.
func (d *Dev) SetContrast(level byte) error {
	return d.command("contrast", _SETCONTRAST, level)
}

// Invert the display (black on white vs white on black).
func (d *Dev) Invert(blackOnWhite bool) error {
	mode := byte(_NORMALDISPLAY)
	if blackOnWhite {
		mode = _INVERTDISPLAY
	}
	return d.command("invert", mode)
}

// Halt turns off the display.
//
// Sending any other command afterward reenables the display.
func (d *Dev) Halt() error {
	if err := d.command("halt", _DISPLAYOFF); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// Close releases the bus. The Dev must be initialized again before use.
func (d *Dev) Close() error {
	d.initialized = false
	return i2cbus.Close(d.bus)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{0x%02X, %dx%d}", d.addr, d.rect.Dx(), d.rect.Dy())
}

// Size implements drivers.Displayer.
func (d *Dev) Size() (x, y int16) {
	return Width, Height
}

// SetPixel implements drivers.Displayer. Any non-black color lights the
// pixel.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	d.buffer.SetBit(int(x), int(y), image1bit.Bit(c.R|c.G|c.B != 0))
}

// Display implements drivers.Displayer. It is Flush.
func (d *Dev) Display() error {
	return d.Flush()
}

func (d *Dev) command(op string, cmds ...byte) error {
	if !d.initialized {
		return ErrUninitialized
	}
	if err := d.sendCommands(cmds); err != nil {
		return &IOError{Op: op, Err: err}
	}
	return nil
}

// sendCommands sends a command run in one transaction. A halted display is
// switched back on by the same run.
func (d *Dev) sendCommands(cmds []byte) error {
	if d.halted {
		cmds = append([]byte{_DISPLAYON}, cmds...)
	}
	if err := d.send(i2cCmd, cmds); err != nil {
		return err
	}
	d.halted = false
	return nil
}

// sendData sends a data run.
func (d *Dev) sendData(data []byte) error {
	return d.send(i2cData, data)
}

// send splits p into transactions of at most maxTx bytes, each one starting
// with the control byte ctrl.
func (d *Dev) send(ctrl byte, p []byte) error {
	d.tx[0] = ctrl
	for len(p) > 0 {
		n := copy(d.tx[1:], p)
		if err := d.bus.Write(d.addr, d.tx[:1+n]); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

var (
	_ display.Drawer    = &Dev{}
	_ drivers.Displayer = &Dev{}
)
