package st7789

import "periph.io/x/devices/v3/st7789/image565"

// Color is a 16-bit RGB565 color in native byte order.
type Color = image565.RGB565

// Named colors.
const (
	Black   Color = 0x0000
	Blue    Color = 0x001F
	Red     Color = 0xF800
	Green   Color = 0x07E0
	Cyan    Color = 0x07FF
	Magenta Color = 0xF81F
	Yellow  Color = 0xFFE0
	White   Color = 0xFFFF
)

// Color565 packs 8-bit red, green and blue channels into RGB565.
func Color565(r, g, b uint8) Color {
	return image565.FromRGB(r, g, b)
}
