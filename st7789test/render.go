package st7789test

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
)

// Render writes img to w as ANSI 256 color blocks, one block per sampled
// pixel, at most cols blocks per line.
//
// cols <= 0 renders every pixel.
func Render(w io.Writer, img image.Image, cols int) error {
	return RenderPalette(w, img, cols, ansi256.Default)
}

// RenderPalette is Render with a custom palette.
func RenderPalette(w io.Writer, img image.Image, cols int, p *ansi256.Palette) error {
	b := img.Bounds()
	step := 1
	if cols > 0 && b.Dx() > cols {
		step = (b.Dx() + cols - 1) / cols
	}
	var buf bytes.Buffer
	for y := b.Min.Y; y < b.Max.Y; y += step {
		_, _ = buf.WriteString("\033[0m")
		for x := b.Min.X; x < b.Max.X; x += step {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			_, _ = io.WriteString(&buf, p.Block(c))
		}
		_, _ = buf.WriteString("\033[0m\n")
	}
	_, err := buf.WriteTo(w)
	return err
}
