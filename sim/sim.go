// Package sim emulates an SSD1306 panel on the I²C bus.
//
// A Panel decodes the byte stream a driver writes (control bytes, command
// runs and data runs) and keeps its own display RAM. It stands in for the
// hardware on a host without a panel and lets tests check what would have
// been displayed rather than which bytes were sent.
package sim

import (
	"errors"
	"fmt"
	"image"

	"github.com/flavioheleno/ssd1306/i2cbus"
	"github.com/flavioheleno/ssd1306/image1bit"
)

const (
	ramWidth = 128
	ramPages = 8
)

// Addressing modes, as set by command 0x20.
const (
	Horizontal = 0
	Vertical   = 1
	Page       = 2
)

// argCount is the number of parameter bytes following each multi-byte
// command. Commands missing from the table take no parameter.
var argCount = map[byte]int{
	0x20: 1, // memory addressing mode
	0x21: 2, // column address
	0x22: 2, // page address
	0x26: 6, // right horizontal scroll
	0x27: 6, // left horizontal scroll
	0x29: 5, // vertical and right horizontal scroll
	0x2A: 5, // vertical and left horizontal scroll
	0x81: 1, // contrast
	0x8D: 1, // charge pump
	0xA3: 2, // vertical scroll area
	0xA8: 1, // multiplex ratio
	0xD3: 1, // display offset
	0xD5: 1, // clock divide
	0xD9: 1, // pre-charge
	0xDA: 1, // COM pins
	0xDB: 1, // VCOMH
}

// Panel is a simulated SSD1306 answering on Addr.
//
// It is not safe for concurrent use.
type Panel struct {
	addr uint16
	h    int

	ram [ramWidth * ramPages]byte

	// Fail, when set, makes every Write fail with it without touching the
	// panel state.
	Fail error

	mode               int
	colStart, colEnd   int
	pageStart, pageEnd int
	col, page          int

	on         bool
	inverted   bool
	allOn      bool
	chargePump bool
	contrast   byte
	mux        int

	pending  []byte // command being assembled, opcode first
	commands [][]byte
	txCount  int
}

// New returns a powered-off panel of height h (32 or 64) at addr.
func New(addr uint16, h int) *Panel {
	if h <= 0 || h > ramPages*8 || h%8 != 0 {
		panic(fmt.Sprintf("sim: invalid height %d", h))
	}
	return &Panel{
		addr:     addr,
		h:        h,
		colEnd:   ramWidth - 1,
		pageEnd:  ramPages - 1,
		mode:     Page,
		contrast: 0x7F,
		mux:      ramPages * 8,
	}
}

// Write implements i2cbus.Bus.
func (p *Panel) Write(addr uint16, b []byte) error {
	if addr != p.addr {
		return &i2cbus.Error{Addr: addr, Kind: i2cbus.KindNack, Err: errors.New("sim: no device")}
	}
	if p.Fail != nil {
		return i2cbus.Classify(addr, p.Fail)
	}
	p.txCount++
	for len(b) > 0 {
		ctrl := b[0]
		b = b[1:]
		if len(b) == 0 {
			break
		}
		n := len(b)
		if ctrl&0x80 != 0 {
			// Continuation bit: a single byte follows, then another control byte.
			n = 1
		}
		if ctrl&0x40 != 0 {
			for _, v := range b[:n] {
				p.data(v)
			}
		} else {
			for _, v := range b[:n] {
				p.command(v)
			}
		}
		b = b[n:]
	}
	return nil
}

func (p *Panel) String() string {
	return fmt.Sprintf("sim.Panel{0x%02X, %dx%d}", p.addr, ramWidth, p.h)
}

func (p *Panel) command(v byte) {
	p.pending = append(p.pending, v)
	if len(p.pending)-1 < argCount[p.pending[0]] {
		return
	}
	cmd := append([]byte(nil), p.pending...)
	p.pending = p.pending[:0]
	p.commands = append(p.commands, cmd)
	p.apply(cmd)
}

func (p *Panel) apply(cmd []byte) {
	op := cmd[0]
	switch {
	case op == 0xAE:
		p.on = false
	case op == 0xAF:
		p.on = true
	case op == 0xA6:
		p.inverted = false
	case op == 0xA7:
		p.inverted = true
	case op == 0xA4:
		p.allOn = false
	case op == 0xA5:
		p.allOn = true
	case op == 0x81:
		p.contrast = cmd[1]
	case op == 0x8D:
		p.chargePump = cmd[1]&0x04 != 0
	case op == 0xA8:
		p.mux = int(cmd[1]&0x3F) + 1
	case op == 0x20:
		p.mode = int(cmd[1] & 0x03)
	case op == 0x21:
		p.colStart = int(cmd[1] & 0x7F)
		p.colEnd = int(cmd[2] & 0x7F)
		p.col = p.colStart
	case op == 0x22:
		p.pageStart = int(cmd[1] & 0x07)
		p.pageEnd = int(cmd[2] & 0x07)
		p.page = p.pageStart
	case op >= 0xB0 && op <= 0xB7:
		p.page = int(op & 0x07)
	case op <= 0x0F:
		p.col = p.col&0xF0 | int(op&0x0F)
	case op >= 0x10 && op <= 0x1F:
		p.col = p.col&0x0F | int(op&0x0F)<<4
	}
}

func (p *Panel) data(v byte) {
	if p.page < ramPages && p.col < ramWidth {
		p.ram[p.page*ramWidth+p.col] = v
	}
	switch p.mode {
	case Horizontal:
		p.col++
		if p.col > p.colEnd {
			p.col = p.colStart
			p.page++
			if p.page > p.pageEnd {
				p.page = p.pageStart
			}
		}
	case Vertical:
		p.page++
		if p.page > p.pageEnd {
			p.page = p.pageStart
			p.col++
			if p.col > p.colEnd {
				p.col = p.colStart
			}
		}
	default:
		if p.col < ramWidth-1 {
			p.col++
		}
	}
}

// Frame returns a copy of the visible display RAM: the first h/8 pages.
func (p *Panel) Frame() *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, ramWidth, p.h))
	copy(img.Pix, p.ram[:])
	return img
}

// Visible returns what the panel shows: the frame with inversion, entire
// display ON and power state applied.
func (p *Panel) Visible() *image1bit.VerticalLSB {
	img := p.Frame()
	for i := range img.Pix {
		switch {
		case !p.on:
			img.Pix[i] = 0
		case p.allOn:
			img.Pix[i] = 0xFF
		case p.inverted:
			img.Pix[i] = ^img.Pix[i]
		}
	}
	return img
}

// On reports whether the display is switched on.
func (p *Panel) On() bool { return p.on }

// Inverted reports whether the display is inverted.
func (p *Panel) Inverted() bool { return p.inverted }

// Contrast returns the current contrast level.
func (p *Panel) Contrast() byte { return p.contrast }

// ChargePump reports whether the charge pump is enabled.
func (p *Panel) ChargePump() bool { return p.chargePump }

// Multiplex returns the number of driven rows.
func (p *Panel) Multiplex() int { return p.mux }

// Mode returns the memory addressing mode.
func (p *Panel) Mode() int { return p.mode }

// Commands returns every decoded command, opcode first, in arrival order.
func (p *Panel) Commands() [][]byte { return p.commands }

// Transactions returns the number of accepted I²C writes.
func (p *Panel) Transactions() int { return p.txCount }

// Reset clears the command log and transaction count, keeping the panel
// state.
func (p *Panel) Reset() {
	p.commands = nil
	p.txCount = 0
}

var _ i2cbus.Bus = (*Panel)(nil)
