// Package ssd1306 controls a SSD1306 OLED display via I²C.
//
// The SSD1306 is a monochrome OLED controller carrying its own display RAM.
// This driver targets the 128×32 0.91" modules and implements the
// display.Drawer interface from periph.io as well as the drivers.Displayer
// interface from TinyGo.
//
// # Display Characteristics
//
// - 1-bit monochrome, 128×32 pixels
// - Display RAM organized in 4 pages of 8 rows, one byte per column
// - Adjustable contrast (0-255)
// - Display inversion
//
// # Hardware Connection
//
// Connect the display to your board's I²C pins:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C clock
//	SDA         → I²C data
//
// The module answers on address 0x3C. The bus is driven at 100kHz.
//
// # Wire Protocol
//
// Every I²C write starts with a control byte: 0x00 when the rest of the
// transaction is commands, 0x40 when it is display data. Data runs longer
// than Opts.MaxTxLen (32 bytes by default, control byte included) are split
// into several transactions, each starting with the control byte again.
// Command runs are never split: MaxTxLen must be at least MinTxLen, the init
// sequence plus its control byte.
//
// Init sends the power-up sequence as one command run:
//
//	AE          display OFF
//	D5 80       clock divide
//	A8 1F       multiplex ratio, 32 rows
//	D3 00       display offset
//	40          start line
//	8D 14       charge pump ON
//	20 00       horizontal addressing
//	A1          segment remap
//	C8          COM scan decrement
//	DA 02       COM pins, 32 rows
//	81 8F       contrast
//	D9 F1       pre-charge
//	DB 40       VCOMH
//	A4          display follows RAM
//	A6          normal (non-inverted)
//	AF          display ON
//
// Flush selects the whole RAM window (21 00 7F, 22 00 03) in one command run
// then streams the 512 frame bytes as data runs.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"periph.io/x/host/v3"
//
//		"github.com/flavioheleno/ssd1306"
//		"github.com/flavioheleno/ssd1306/i2cbus"
//		"github.com/flavioheleno/ssd1306/image1bit"
//	)
//
//	func main() {
//		// Initialize periph.io
//		host.Init()
//
//		// Open the first I²C bus at 100kHz
//		bus, _ := i2cbus.Open("", i2cbus.StandardMode)
//
//		// Create and initialize the device
//		dev, _ := ssd1306.New(bus, nil)
//		defer dev.Close()
//		dev.Init()
//
//		// Draw into the frame and send it
//		dev.Buffer().SetBit(0, 0, image1bit.On)
//		dev.Flush()
//	}
//
// Text is drawn with package text and the two-line clock layout lives in
// package oled.
//
// # Datasheet
//
// https://cdn-shop.adafruit.com/datasheets/SSD1306.pdf
package ssd1306
