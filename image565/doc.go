// Package image565 provides a 16-bit RGB565 image format for ST7789/ST7735 class controllers.
//
// The controllers store each pixel as 5 bits of red, 6 bits of green and 5 bits of
// blue. On the SPI wire every pixel is two bytes, high byte first.
//
// Memory layout example for a 2-pixel row:
//
//	Pixels: 0       1
//	Values: 0xF800  0x07E0
//	Bytes:  F8 00   07 E0
//
// This package provides:
//
// - RGB565: A color type holding a packed 16-bit pixel
// - RGB565Model: A color model for converting standard Go colors to RGB565
// - Image: An image.Image implementation whose Pix can be streamed to the panel as-is
//
// Example usage:
//
//	// Create a 240x320 image
//	img := image565.NewImage(image.Rect(0, 0, 240, 320))
//
//	// Set a pixel to red
//	img.SetRGB565(10, 20, image565.RGB565(0xF800))
//
//	// Use with standard Go image operations
//	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
package image565
