package st7789

import (
	"bytes"
	"errors"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"
	"periph.io/x/devices/v3/st7789/image565"
)

// ColorModel implements display.Drawer.
//
// It returns image565.RGB565Model.
func (d *Dev) ColorModel() color.Model {
	return image565.RGB565Model
}

// Bounds implements display.Drawer. It reflects the current rotation.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Write writes a full frame of big-endian RGB565 pixels. The data must be
// exactly Width() * Height() * 2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if d.halted {
		return 0, errHalted
	}
	if len(pixels) != d.width*d.height*2 {
		return 0, errors.New("st7789: invalid buffer size")
	}
	if err := d.writeRect(d.Bounds(), pixels); err != nil {
		return 0, err
	}
	d.syncShadow(pixels)
	return len(pixels), nil
}

// Draw implements display.Drawer.
//
// Once the whole panel has been written through Draw or Write, only the
// region that changed since the previous frame is sent. Any primitive drawing
// call in between makes the next Draw send the whole dst rectangle again.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if d.halted {
		return errHalted
	}
	bounds := d.Bounds()
	dst = dst.Intersect(bounds)
	if dst.Empty() {
		return nil
	}

	// Fast path: the source is already a full frame in the wire format.
	if img, ok := src.(*image565.Image); ok {
		if dst == bounds && sp == (image.Point{}) && img.Rect == bounds && img.Stride == 2*bounds.Dx() {
			if err := d.writeRect(bounds, img.Pix); err != nil {
				return err
			}
			d.syncShadow(img.Pix)
			return nil
		}
	}

	d.ensureShadow()
	xdraw.Draw(d.next, dst, src, sp, xdraw.Src)

	known := d.known
	r := dst
	if known {
		r = d.calculateDiff(dst)
		if r.Empty() {
			return nil
		}
	}
	d.region = d.next.AppendRect(d.region[:0], r)
	if err := d.writeRect(r, d.region); err != nil {
		return err
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := d.next.PixOffset(r.Min.X, y)
		j := d.next.PixOffset(r.Max.X, y)
		copy(d.last.Pix[i:j], d.next.Pix[i:j])
	}
	d.known = known || r == bounds
	return nil
}

// ensureShadow allocates the frame buffers used by Draw.
func (d *Dev) ensureShadow() {
	if d.next != nil && d.next.Rect == d.Bounds() {
		return
	}
	d.next = image565.NewImage(d.Bounds())
	d.last = image565.NewImage(d.Bounds())
	d.known = false
}

// syncShadow records that the panel now shows pixels in full.
func (d *Dev) syncShadow(pixels []byte) {
	d.ensureShadow()
	copy(d.next.Pix, pixels)
	copy(d.last.Pix, pixels)
	d.known = true
}

// calculateDiff returns the smallest rectangle within r where the next frame
// differs from the last one, or an empty rectangle if nothing changed.
func (d *Dev) calculateDiff(r image.Rectangle) image.Rectangle {
	minX, minY := r.Max.X, r.Max.Y
	maxX, maxY := r.Min.X-1, r.Min.Y-1
	for y := r.Min.Y; y < r.Max.Y; y++ {
		start := d.next.PixOffset(r.Min.X, y)
		end := d.next.PixOffset(r.Max.X, y)
		if bytes.Equal(d.last.Pix[start:end], d.next.Pix[start:end]) {
			continue
		}
		minY = min(minY, y)
		maxY = y
		for x := r.Min.X; x < r.Max.X; x++ {
			i := d.next.PixOffset(x, y)
			if d.last.Pix[i] != d.next.Pix[i] || d.last.Pix[i+1] != d.next.Pix[i+1] {
				minX = min(minX, x)
				maxX = max(maxX, x)
			}
		}
	}
	if maxY < minY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}

// writeRect sends pixels into the window r.
func (d *Dev) writeRect(r image.Rectangle, pixels []byte) error {
	ok, err := d.setWindow(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1)
	if !ok || err != nil {
		return err
	}
	if err := d.beginData(); err != nil {
		return d.release(err)
	}
	return d.release(d.blit(pixels))
}

var _ display.Drawer = &Dev{}
