package st7789

import "image"

// Box is the dirty bounding box, in active-area coordinates, inclusive.
type Box struct {
	MinX, MinY int
	MaxX, MaxY int
}

// Empty reports whether no window was programmed since the last reset.
func (b Box) Empty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Size returns the box as origin and size.
func (b Box) Size() (x, y, w, h int) {
	return b.MinX, b.MinY, b.MaxX - b.MinX + 1, b.MaxY - b.MinY + 1
}

// Rect returns the box as a half-open image.Rectangle.
func (b Box) Rect() image.Rectangle {
	if b.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(b.MinX, b.MinY, b.MaxX+1, b.MaxY+1)
}

// Bounding returns the dirty box.
func (d *Dev) Bounding() Box {
	return d.box
}

// SetBounding enables or disables dirty box tracking, resets the box and
// returns it as it was before the reset.
func (d *Dev) SetBounding(enable bool) Box {
	b := d.box
	d.bounding = enable
	d.resetBox()
	return b
}

func (d *Dev) resetBox() {
	d.box = Box{MinX: d.width, MinY: d.height}
}

// SetWindow programs the address window (x0, y0)-(x1, y1), inclusive, and
// primes the controller for pixel data.
//
// Windows outside the active area are dropped without any I/O.
func (d *Dev) SetWindow(x0, y0, x1, y1 int) error {
	_, err := d.setWindow(x0, y0, x1, y1)
	return err
}

// setWindow reports whether the window was programmed.
func (d *Dev) setWindow(x0, y0, x1, y1 int) (bool, error) {
	if x0 < 0 || x0 > x1 || x1 >= d.width {
		return false, nil
	}
	if y0 < 0 || y0 > y1 || y1 >= d.height {
		return false, nil
	}

	if d.bounding {
		d.box.MinX = min(d.box.MinX, x0)
		d.box.MinY = min(d.box.MinY, y0)
		d.box.MaxX = max(d.box.MaxX, x1)
		d.box.MaxY = max(d.box.MaxY, y1)
	}
	// Panel content diverges from the Draw shadow.
	d.known = false

	if err := d.WriteCmd(CASET, d.addr(x0+d.colStart, x1+d.colStart)); err != nil {
		return false, err
	}
	if err := d.WriteCmd(RASET, d.addr(y0+d.rowStart, y1+d.rowStart)); err != nil {
		return false, err
	}
	if err := d.WriteCmd(RAMWR, nil); err != nil {
		return false, err
	}
	return true, nil
}

func (d *Dev) addr(start, end int) []byte {
	d.winBuf = [4]byte{byte(start >> 8), byte(start), byte(end >> 8), byte(end)}
	return d.winBuf[:]
}
