// Package text rasterizes fixed-width strings onto a monochrome framebuffer.
//
// Characters are 8x13 cells from a bundled font. The y coordinate passed to
// DrawText is the baseline: the bottom row of every cell, so a glyph covers
// rows y-12 through y. Each character advances x by 8 pixels; anything
// falling outside the framebuffer is clipped pixel by pixel.
package text

import (
	"github.com/flavioheleno/ssd1306/image1bit"
)

// DrawText draws s with its baseline on row y, starting at column x, using
// the Default font. Only lit glyph pixels are written; the background is left
// untouched.
func DrawText(dst *image1bit.VerticalLSB, x, y int, s string) {
	Default.DrawText(dst, x, y, s)
}

// DrawText draws s with f. See the package level DrawText.
func (f *Font) DrawText(dst *image1bit.VerticalLSB, x, y int, s string) {
	top := y - (GlyphHeight - 1)
	b := dst.Rect
	if top >= b.Max.Y || y < b.Min.Y {
		return
	}
	for _, r := range s {
		if x >= b.Max.X {
			// Truncated at the right edge.
			return
		}
		if x+GlyphWidth > b.Min.X {
			f.blit(dst, x, top, f.Glyph(r))
		}
		x += GlyphWidth
	}
}

func (f *Font) blit(dst *image1bit.VerticalLSB, x, top int, g *Glyph) {
	for row, bits := range g {
		if bits == 0 {
			continue
		}
		for col := 0; col < GlyphWidth; col++ {
			if bits&(0x80>>uint(col)) != 0 {
				dst.SetBit(x+col, top+row, image1bit.On)
			}
		}
	}
}

// Width returns the width in pixels of s drawn with the bundled font.
func Width(s string) int {
	n := 0
	for range s {
		n++
	}
	return n * GlyphWidth
}
