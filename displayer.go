package st7789

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// Size implements drivers.Displayer. It returns the active area.
func (d *Dev) Size() (x, y int16) {
	return int16(d.width), int16(d.height)
}

// SetPixel implements drivers.Displayer.
//
// Pixels are written immediately. The first failure is kept and returned by
// the next call to Display.
func (d *Dev) SetPixel(x, y int16, c color.RGBA) {
	if err := d.Pixel(int(x), int(y), Color565(c.R, c.G, c.B)); err != nil && d.err == nil {
		d.err = err
	}
}

// FillRectangle fills a rectangle with c, for callers written against
// tinygo display drivers.
func (d *Dev) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	return d.FillRect(int(x), int(y), int(width), int(height), Color565(c.R, c.G, c.B))
}

// Display implements drivers.Displayer. The panel has no frame buffer to
// flush, so it only reports and clears the error kept by SetPixel.
func (d *Dev) Display() error {
	err := d.err
	d.err = nil
	return err
}

var _ drivers.Displayer = (*Dev)(nil)
