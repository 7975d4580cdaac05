package st7789

// MapBitArrayToRGB565 expands an MSB-first bitmap into big-endian RGB565
// pixels, fg for set bits and bg for clear bits.
//
// Rows are byte aligned in bits: once width pixels were produced, the rest of
// the current byte is skipped. It returns the number of pixels written, which
// is limited by the size of out.
func MapBitArrayToRGB565(bits, out []byte, width int, fg, bg Color) int {
	if width <= 0 {
		return 0
	}
	n, row := 0, 0
	for _, b := range bits {
		for bit := 7; bit >= 0; bit-- {
			if 2*n+2 > len(out) {
				return n
			}
			c := bg
			if b&(1<<bit) != 0 {
				c = fg
			}
			out[2*n], out[2*n+1] = c.Bytes()
			n++

			row++
			if row >= width {
				row = 0
				break
			}
		}
	}
	return n
}
