package st7789

// blitChunk is the largest transfer issued by BlitBuffer.
const blitChunk = 256

// mod returns x modulo m in [0, m).
func mod(x, m int) int {
	r := x % m
	if r < 0 {
		r += m
	}
	return r
}

// Pixel draws a single pixel.
//
// With WrapH or WrapV set, coordinates outside the active area wrap around.
// Otherwise they are dropped.
func (d *Dev) Pixel(x, y int, c Color) error {
	if d.options&WrapH != 0 && (x < 0 || x >= d.width) {
		x = mod(x, d.width)
	}
	if d.options&WrapV != 0 && (y < 0 || y >= d.height) {
		y = mod(y, d.height)
	}
	if x < 0 || y < 0 || x >= d.width || y >= d.height {
		return nil
	}
	ok, err := d.setWindow(x, y, x, y)
	if !ok || err != nil {
		return err
	}
	if err := d.beginData(); err != nil {
		return d.release(err)
	}
	d.pixBuf[0], d.pixBuf[1] = c.Bytes()
	return d.release(d.c.Tx(d.pixBuf[:], nil))
}

// HLine draws a horizontal line of w pixels starting at (x, y).
func (d *Dev) HLine(x, y, w int, c Color) error {
	if d.options&Wrap != 0 {
		for i := 0; i < w; i++ {
			if err := d.Pixel(x+i, y, c); err != nil {
				return err
			}
		}
		return nil
	}
	if y < 0 || y >= d.height || x >= d.width {
		return nil
	}
	if x < 0 {
		w += x
		x = 0
	}
	if x+w > d.width {
		w = d.width - x
	}
	if w <= 0 {
		return nil
	}
	return d.fillWindow(x, y, x+w-1, y, c, w)
}

// VLine draws a vertical line of h pixels starting at (x, y).
func (d *Dev) VLine(x, y, h int, c Color) error {
	if d.options&Wrap != 0 {
		for i := 0; i < h; i++ {
			if err := d.Pixel(x, y+i, c); err != nil {
				return err
			}
		}
		return nil
	}
	if x < 0 || x >= d.width || y >= d.height {
		return nil
	}
	if y < 0 {
		h += y
		y = 0
	}
	if y+h > d.height {
		h = d.height - y
	}
	if h <= 0 {
		return nil
	}
	return d.fillWindow(x, y, x, y+h-1, c, h)
}

// Rect draws the outline of a w x h rectangle.
func (d *Dev) Rect(x, y, w, h int, c Color) error {
	if err := d.HLine(x, y, w, c); err != nil {
		return err
	}
	if err := d.VLine(x, y, h, c); err != nil {
		return err
	}
	if err := d.HLine(x, y+h-1, w, c); err != nil {
		return err
	}
	return d.VLine(x+w-1, y, h, c)
}

// FillRect fills a w x h rectangle, clipped to the active area.
func (d *Dev) FillRect(x, y, w, h int, c Color) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w-1, d.width-1), min(y+h-1, d.height-1)
	if x0 > x1 || y0 > y1 {
		return nil
	}
	return d.fillWindow(x0, y0, x1, y1, c, (x1-x0+1)*(y1-y0+1))
}

// Fill fills the whole active area.
func (d *Dev) Fill(c Color) error {
	return d.fillWindow(0, 0, d.width-1, d.height-1, c, d.width*d.height)
}

// Line draws a line from (x0, y0) to (x1, y1), both inclusive.
//
// The Bresenham pixel set is emitted as runs of horizontal or vertical lines.
func (d *Dev) Line(x0, y0, x1, y1 int, c Color) error {
	steep := abs(y1-y0) > abs(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx, dy := x1-x0, abs(y1-y0)
	e := dx >> 1
	ystep := -1
	if y0 < y1 {
		ystep = 1
	}

	// run draws dlen pixels along the major axis from xs.
	run := func(xs, y, dlen int) error {
		if steep {
			if dlen == 1 {
				return d.Pixel(y, xs, c)
			}
			return d.VLine(y, xs, dlen, c)
		}
		if dlen == 1 {
			return d.Pixel(xs, y, c)
		}
		return d.HLine(xs, y, dlen, c)
	}

	xs, dlen := x0, 0
	for ; x0 <= x1; x0++ {
		dlen++
		e -= dy
		if e < 0 {
			e += dx
			if err := run(xs, y0, dlen); err != nil {
				return err
			}
			dlen = 0
			y0 += ystep
			xs = x0 + 1
		}
	}
	if dlen != 0 {
		return run(xs, y0, dlen)
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// BlitBuffer copies raw pixel bytes into the w x h window at (x, y).
//
// The bytes are sent as-is, so they must already be big-endian RGB565. At most
// w*h*2 bytes are sent. Nothing is sent if the window does not fit the active
// area.
func (d *Dev) BlitBuffer(buf []byte, x, y, w, h int) error {
	if w <= 0 || h <= 0 {
		return nil
	}
	ok, err := d.setWindow(x, y, x+w-1, y+h-1)
	if !ok || err != nil {
		return err
	}
	if err := d.beginData(); err != nil {
		return d.release(err)
	}
	return d.release(d.blit(buf[:min(len(buf), w*h*2)]))
}

func (d *Dev) blit(buf []byte) error {
	for len(buf) > 0 {
		n := min(len(buf), blitChunk)
		if err := d.c.Tx(buf[:n], nil); err != nil {
			return err
		}
		buf = buf[n:]
	}
	return nil
}
