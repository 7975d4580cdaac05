package st7789

import (
	"errors"
	"fmt"
)

// Rotation describes the panel geometry for one orientation.
type Rotation struct {
	MADCTL   byte // Orientation bits, combined with the color order
	Width    int  // Active width in pixels
	Height   int  // Active height in pixels
	ColStart int  // Column offset added to every CASET argument
	RowStart int  // Row offset added to every RASET argument
}

// Orientation indices of the built-in tables.
const (
	Portrait          = 0
	Landscape         = 1
	PortraitInverted  = 2
	LandscapeInverted = 3
)

type panelSize struct{ w, h int }

// rotations holds the built-in tables, keyed by native panel size.
var rotations = map[panelSize][]Rotation{
	{240, 320}: {
		{0x00, 240, 320, 0, 0},
		{0x60, 320, 240, 0, 0},
		{0xC0, 240, 320, 0, 0},
		{0xA0, 320, 240, 0, 0},
	},
	{240, 280}: {
		{0x00, 240, 280, 0, 20},
		{0x60, 280, 240, 20, 0},
		{0xC0, 240, 280, 0, 20},
		{0xA0, 280, 240, 20, 0},
	},
	{170, 320}: {
		{0x00, 170, 320, 35, 0},
		{0x60, 320, 170, 0, 35},
		{0xC0, 170, 320, 35, 0},
		{0xA0, 320, 170, 0, 35},
	},
	{240, 240}: {
		{0x00, 240, 240, 0, 0},
		{0x60, 240, 240, 0, 0},
		{0xC0, 240, 240, 0, 80},
		{0xA0, 240, 240, 80, 0},
	},
	{135, 240}: {
		{0x00, 135, 240, 52, 40},
		{0x60, 240, 135, 40, 53},
		{0xC0, 135, 240, 53, 40},
		{0xA0, 240, 135, 40, 52},
	},
	{128, 160}: {
		{0x00, 128, 160, 0, 0},
		{0x60, 160, 128, 0, 0},
		{0xC0, 128, 160, 0, 0},
		{0xA0, 160, 128, 0, 0},
	},
	{80, 160}: {
		{0x00, 80, 160, 26, 1},
		{0x60, 160, 80, 1, 26},
		{0xC0, 80, 160, 26, 1},
		{0xA0, 160, 80, 1, 26},
	},
	{128, 128}: {
		{0x00, 128, 128, 2, 1},
		{0x60, 128, 128, 1, 2},
		{0xC0, 128, 128, 2, 3},
		{0xA0, 128, 128, 3, 2},
	},
}

// BuiltinRotations returns a copy of the built-in table for a w x h panel, or
// nil if the size is not known.
func BuiltinRotations(w, h int) []Rotation {
	r, ok := rotations[panelSize{w, h}]
	if !ok {
		return nil
	}
	return append([]Rotation(nil), r...)
}

// RotationsFromTuples converts (madctl, width, height, colstart, rowstart)
// tuples into a rotation table.
func RotationsFromTuples(tuples [][]int) ([]Rotation, error) {
	if len(tuples) == 0 {
		return nil, errors.New("st7789: rotations table is empty")
	}
	out := make([]Rotation, len(tuples))
	for i, t := range tuples {
		if len(t) != 5 {
			return nil, fmt.Errorf("st7789: rotation %d must have 5 elements, got %d", i, len(t))
		}
		out[i] = Rotation{
			MADCTL:   byte(t[0]),
			Width:    t[1],
			Height:   t[2],
			ColStart: t[3],
			RowStart: t[4],
		}
	}
	return out, nil
}

// Rotation returns the active rotation index.
func (d *Dev) Rotation() int {
	return d.rotation
}

// SetRotation selects rotation r of the table, modulo its length, and
// programs MADCTL. The dirty box is reset.
func (d *Dev) SetRotation(r int) error {
	n := len(d.rotations)
	if n == 0 {
		return errors.New("st7789: no rotation table")
	}
	d.rotation = ((r % n) + n) % n
	return d.applyRotation()
}

// applyRotation programs the geometry of d.rotation, which callers keep
// within the table.
func (d *Dev) applyRotation() error {
	rot := d.rotations[d.rotation]
	d.madctl = byte(d.colorOrder) | rot.MADCTL
	d.width = rot.Width
	d.height = rot.Height
	d.colStart = rot.ColStart
	d.rowStart = rot.RowStart
	d.resetBox()
	d.next, d.last = nil, nil
	d.known = false
	d.madBuf[0] = d.madctl
	return d.WriteCmd(MADCTL, d.madBuf[:])
}
