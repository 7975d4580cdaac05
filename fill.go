package st7789

// fillPixels is the size of the staging buffer, in pixels.
const fillPixels = 128

// fillColor sends n pixels of color c. The window must already be programmed
// and the controller selected for data.
func (d *Dev) fillColor(c Color, n int) error {
	hi, lo := c.Bytes()
	for i := 0; i < n && i < fillPixels; i++ {
		d.fillBuf[2*i] = hi
		d.fillBuf[2*i+1] = lo
	}
	for j := 0; j < n/fillPixels; j++ {
		if err := d.c.Tx(d.fillBuf[:], nil); err != nil {
			return err
		}
	}
	if rest := n % fillPixels; rest != 0 {
		return d.c.Tx(d.fillBuf[:2*rest], nil)
	}
	return nil
}

// fillWindow programs the window and streams n pixels of color c into it.
func (d *Dev) fillWindow(x0, y0, x1, y1 int, c Color, n int) error {
	ok, err := d.setWindow(x0, y0, x1, y1)
	if !ok || err != nil {
		return err
	}
	if err := d.beginData(); err != nil {
		return d.release(err)
	}
	return d.release(d.fillColor(c, n))
}
