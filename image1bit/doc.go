// Package image1bit provides the 1-bit monochrome image format used by the
// SSD1306 display controller.
//
// The SSD1306 organizes its display RAM in pages: horizontal bands 8 pixels
// tall. Each byte holds one column of a page, least significant bit on top.
//
// Memory layout for a 128x32 panel (4 pages of 128 bytes):
//
//	byte index = x + (y/8)*128
//	bit        = 1 << (y%8)
//
//	         x=0   x=1   ...  x=127
//	page 0   B0    B1    ...  B127    (rows 0-7)
//	page 1   B128  B129  ...  B255    (rows 8-15)
//	page 2   B256  B257  ...  B383    (rows 16-23)
//	page 3   B384  B385  ...  B511    (rows 24-31)
//
// This package provides:
//
// - Bit: a color type, On (lit) or Off
// - BitModel: a color model converting standard Go colors to Bit
// - VerticalLSB: an image.Image and draw.Image in the layout above
//
// Example usage:
//
//	img := image1bit.NewVerticalLSB(image.Rect(0, 0, 128, 32))
//	img.SetBit(10, 20, image1bit.On)
//	lit := img.BitAt(10, 20) // On
//	img.Clear()
//
// Writes outside the image bounds are silently ignored.
package image1bit
