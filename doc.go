// Package st7789 controls ST7789 and ST7735 class TFT LCD controllers via SPI.
//
// The controllers drive small color panels, from 80×160 up to 240×320 pixels,
// in 16-bit RGB565. This driver exposes a pixel oriented drawing API and also
// implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 16-bit RGB565 color, sent big-endian on the wire
// - Four orientations per panel, with per-orientation RAM offsets
// - Display inversion, sleep mode and hardware vertical scrolling
// - Optional backlight, reset and chip select pins
//
// # Hardware Connection
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → Optional: GPIO, or tie low when the bus is dedicated
//	RES         → Optional: GPIO for hardware reset
//	BLK         → Optional: GPIO for backlight control
//
// Chip select is driven by the driver itself, so open the SPI port without
// relying on its hardware chip select when several devices share the bus.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/devices/v3/st7789"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//		p, err := spireg.Open("")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer p.Close()
//
//		opts := st7789.DefaultOpts
//		opts.RST = gpioreg.ByName("GPIO27")
//		opts.Backlight = gpioreg.ByName("GPIO18")
//		dev, err := st7789.NewSPI(p, gpioreg.ByName("GPIO25"), &opts)
//		if err != nil {
//			log.Fatal(err)
//		}
//		if err := dev.Init(); err != nil {
//			log.Fatal(err)
//		}
//		dev.FillRect(10, 10, 100, 50, st7789.Red)
//		dev.Line(0, 0, dev.Width()-1, dev.Height()-1, st7789.Color565(255, 128, 0))
//	}
//
// # Coordinates and Clipping
//
// All drawing calls use the active area of the current rotation. Anything
// outside it is clipped, and a call that would program an address window
// outside the active area is dropped without touching the bus. With WrapH or
// WrapV set in Opts.Options, pixels and lines wrap around the edges instead.
//
// # Rotations
//
// Built-in rotation tables exist for 240×320, 240×280, 170×320, 240×240,
// 135×240, 128×160, 80×160 and 128×128 panels. Other sizes get a table
// without offsets. A custom table can be given in Opts.Rotations, and
// RotationsFromTuples accepts the (madctl, width, height, colstart, rowstart)
// form used by other drivers.
//
// # Dirty Box
//
// With SetBounding(true), every address window the driver programs grows a
// bounding box. Callers maintaining their own frame buffer use it to flush
// only what changed:
//
//	dev.SetBounding(true)
//	dev.Pixel(5, 6, st7789.White)
//	dev.Pixel(9, 4, st7789.White)
//	x, y, w, h := dev.Bounding().Size() // 5, 4, 5, 3
//
// # Drawing Images
//
// Draw renders any image.Image. Once the whole panel has been written through
// Draw or Write, only the region that changed since the previous frame is
// sent. Sources of type *image565.Image covering the full panel are sent
// without conversion:
//
//	img := image565.NewImage(dev.Bounds())
//	// ... draw into img ...
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// # Custom Initialization
//
// Panels needing vendor specific gamma or power settings take a custom
// sequence, run instead of the built-in one:
//
//	opts.InitCmds = []st7789.InitCmd{
//		{Data: []byte{st7789.SWRESET}, Delay: 150 * time.Millisecond},
//		{Data: []byte{st7789.SLPOUT}},
//		{Data: []byte{st7789.COLMOD, 0x55}},
//		{Data: []byte{st7789.DISPON}, Delay: 100 * time.Millisecond},
//	}
//
// # Testing
//
// Package st7789test provides a Panel that decodes the command stream into an
// in-memory frame buffer, so drawing code can be tested without hardware.
package st7789
