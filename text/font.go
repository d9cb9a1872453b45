package text

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Glyph cell geometry of the bundled font.
const (
	GlyphWidth  = 8
	GlyphHeight = 13

	firstRune = 0x20
	lastRune  = 0x7E
)

// Glyph is one 8x13 character cell. Each row is a byte, the most significant
// bit being the leftmost column. Row 12 sits on the baseline.
type Glyph [GlyphHeight]byte

// Font is an immutable table of glyphs for printable ASCII.
type Font struct {
	glyphs [lastRune - firstRune + 1]Glyph
}

// Glyph returns the cell for r. Runes outside 0x20-0x7E are blank.
func (f *Font) Glyph(r rune) *Glyph {
	if r < firstRune || r > lastRune {
		return &blank
	}
	return &f.glyphs[r-firstRune]
}

var blank Glyph

// Default is the bundled 8x13 font, rasterized once from the fixed
// 7x13 X11 bitmap face shipped with golang.org/x/image.
var Default = NewFont(basicfont.Face7x13)

// NewFont rasterizes the printable ASCII glyphs of face into 8x13 cells.
//
// The face is positioned so that its descent ends on the bottom row of the
// cell. Mask pixels with alpha of at least one half are lit; anything falling
// outside the cell is dropped.
func NewFont(face font.Face) *Font {
	f := &Font{}
	descent := face.Metrics().Descent.Ceil()
	dot := fixed.P(0, GlyphHeight-descent)
	cell := image.Rect(0, 0, GlyphWidth, GlyphHeight)
	for r := rune(firstRune); r <= lastRune; r++ {
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		g := &f.glyphs[r-firstRune]
		area := dr.Intersect(cell)
		for y := area.Min.Y; y < area.Max.Y; y++ {
			for x := area.Min.X; x < area.Max.X; x++ {
				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				if a >= 0x8000 {
					g[y] |= 0x80 >> uint(x)
				}
			}
		}
	}
	return f
}
