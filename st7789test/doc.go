// Package st7789test implements an in-memory ST7789 controller for testing.
//
// Panel is an spi.Port that decodes the command stream it receives into a
// frame buffer and a log of commands, so drawing code can be verified without
// hardware and without asserting on raw bytes.
package st7789test
