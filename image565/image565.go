// Package image565 provides a 16-bit RGB565 image format for ST7789 class displays.
//
// Pixels are stored big-endian, two bytes per pixel, so that Pix rows can be sent
// to the controller without conversion.
package image565

import (
	"image"
	"image/color"
)

// RGB565 is a packed 16-bit color: 5 bits red, 6 bits green, 5 bits blue.
type RGB565 uint16

// FromRGB packs 8-bit channels into RGB565 by truncating the low bits.
func FromRGB(r, g, b uint8) RGB565 {
	return RGB565(uint16(r&0xF8)<<8 | uint16(g&0xFC)<<3 | uint16(b&0xF8)>>3)
}

// Components returns the 5-bit red, 6-bit green and 5-bit blue fields.
func (c RGB565) Components() (r5, g6, b5 uint8) {
	return uint8(c>>11) & 0x1F, uint8(c>>5) & 0x3F, uint8(c) & 0x1F
}

// RGB8 expands the color back to 8-bit channels by bit replication.
func (c RGB565) RGB8() (r, g, b uint8) {
	r5, g6, b5 := c.Components()
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// RGBA implements color.Color.
func (c RGB565) RGBA() (r, g, b, a uint32) {
	r8, g8, b8 := c.RGB8()
	r = uint32(r8) * 0x101
	g = uint32(g8) * 0x101
	b = uint32(b8) * 0x101
	return r, g, b, 0xFFFF
}

// Bytes returns the big-endian wire encoding of the color.
func (c RGB565) Bytes() (hi, lo byte) {
	return byte(c >> 8), byte(c)
}

func toRGB565(c color.Color) color.Color {
	if v, ok := c.(RGB565); ok {
		return v
	}
	r, g, b, _ := c.RGBA()
	return FromRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

// RGB565Model converts colors to RGB565. Alpha is ignored.
var RGB565Model = color.ModelFunc(toRGB565)

// Image is an RGB565 image with big-endian pixel storage.
type Image struct {
	Pix    []byte          // 2 bytes per pixel, high byte first
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewImage returns a new Image with the given bounds.
func NewImage(r image.Rectangle) *Image {
	w, h := r.Dx(), r.Dy()
	if w <= 0 || h <= 0 {
		return &Image{Rect: r}
	}
	return &Image{
		Pix:    make([]byte, 2*w*h),
		Stride: 2 * w,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *Image) ColorModel() color.Model {
	return RGB565Model
}

// Bounds returns the image bounds.
func (p *Image) Bounds() image.Rectangle {
	return p.Rect
}

// At implements image.Image.
func (p *Image) At(x, y int) color.Color {
	return p.RGB565At(x, y)
}

// RGB565At returns the color of the pixel at (x, y).
func (p *Image) RGB565At(x, y int) RGB565 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	i := p.PixOffset(x, y)
	return RGB565(p.Pix[i])<<8 | RGB565(p.Pix[i+1])
}

// Set implements draw.Image.
func (p *Image) Set(x, y int, c color.Color) {
	p.SetRGB565(x, y, RGB565Model.Convert(c).(RGB565))
}

// SetRGB565 sets the pixel at (x, y) without color conversion.
func (p *Image) SetRGB565(x, y int, c RGB565) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	p.Pix[i], p.Pix[i+1] = c.Bytes()
}

// PixOffset returns the index of the high byte of the pixel at (x, y).
func (p *Image) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*2
}

// Fill sets every pixel in r (clipped to the image) to c.
func (p *Image) Fill(r image.Rectangle, c RGB565) {
	r = r.Intersect(p.Rect)
	hi, lo := c.Bytes()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := p.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			p.Pix[i], p.Pix[i+1] = hi, lo
			i += 2
		}
	}
}

// SubImage returns an image sharing pixels with p, restricted to r.
func (p *Image) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &Image{}
	}
	i := p.PixOffset(r.Min.X, r.Min.Y)
	return &Image{
		Pix:    p.Pix[i:],
		Stride: p.Stride,
		Rect:   r,
	}
}

// AppendRect appends the rows of r to dst, tightly packed, and returns the result.
func (p *Image) AppendRect(dst []byte, r image.Rectangle) []byte {
	r = r.Intersect(p.Rect)
	n := 2 * r.Dx()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := p.PixOffset(r.Min.X, y)
		dst = append(dst, p.Pix[i:i+n]...)
	}
	return dst
}

var _ image.Image = (*Image)(nil)
