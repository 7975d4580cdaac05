package st7789

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
)

// Controller commands.
const (
	SWRESET byte = 0x01 // Software reset
	SLPIN   byte = 0x10 // Sleep in
	SLPOUT  byte = 0x11 // Sleep out
	NORON   byte = 0x13 // Normal display mode on
	INVOFF  byte = 0x20 // Display inversion off
	INVON   byte = 0x21 // Display inversion on
	DISPOFF byte = 0x28 // Display off
	DISPON  byte = 0x29 // Display on
	CASET   byte = 0x2A // Column address set
	RASET   byte = 0x2B // Row address set
	RAMWR   byte = 0x2C // Memory write
	VSCRDEF byte = 0x33 // Vertical scrolling definition
	MADCTL  byte = 0x36 // Memory data access control
	VSCSAD  byte = 0x37 // Vertical scroll start address of RAM
	COLMOD  byte = 0x3A // Interface pixel format
)

// MADCTL bits.
const (
	MadctlMY byte = 0x80 // Page address order
	MadctlMX byte = 0x40 // Column address order
	MadctlMV byte = 0x20 // Page/column order exchange
	MadctlML byte = 0x10 // Line address order
	MadctlMH byte = 0x04 // Display data latch order
)

// ColorOrder selects the RGB/BGR bit of MADCTL.
type ColorOrder byte

// Possible color orders.
const (
	RGB ColorOrder = 0x00
	BGR ColorOrder = 0x08
)

// colorMode65K16 is the COLMOD value for 65K colors at 16 bits per pixel.
const colorMode65K16 byte = 0x55

// WriteCmd sends cmd followed by data as a single transaction.
//
// A cmd of 0 sends only data. Chip select, when connected, is held low for the
// whole transaction and released even if the transfer fails.
func (d *Dev) WriteCmd(cmd byte, data []byte) error {
	if err := d.csOut(gpio.Low); err != nil {
		return err
	}
	err := d.sendCmd(cmd, data)
	return d.release(err)
}

func (d *Dev) sendCmd(cmd byte, data []byte) error {
	if cmd != 0 {
		if err := d.dc.Out(gpio.Low); err != nil {
			return err
		}
		d.cmdBuf[0] = cmd
		if err := d.c.Tx(d.cmdBuf[:], nil); err != nil {
			return err
		}
	}
	if len(data) != 0 {
		if err := d.dc.Out(gpio.High); err != nil {
			return err
		}
		return d.c.Tx(data, nil)
	}
	return nil
}

// beginData selects the controller for a stream of pixel bytes following RAMWR.
func (d *Dev) beginData() error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.csOut(gpio.Low)
}

// release drives chip select high and merges its error with err.
func (d *Dev) release(err error) error {
	if cerr := d.csOut(gpio.High); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

func (d *Dev) csOut(l gpio.Level) error {
	if d.cs == nil {
		return nil
	}
	return d.cs.Out(l)
}
