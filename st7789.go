package st7789

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/st7789/image565"
)

// Options is a set of drawing flags.
type Options uint8

// Possible options. Exact values are shared with existing callers.
const (
	WrapH Options = 0x01 // Wrap pixels horizontally
	WrapV Options = 0x02 // Wrap pixels vertically
	Wrap          = WrapH | WrapV
)

// InitCmd is one step of a custom initialization sequence.
type InitCmd struct {
	// Data holds the command opcode followed by its parameters. An opcode of 0
	// sends the parameters only.
	Data []byte
	// Delay is waited after the mandatory 10ms settling time.
	Delay time.Duration
}

// Opts is the configuration for the ST7789 display.
type Opts struct {
	// Native panel dimensions in pixels, in portrait orientation.
	W int
	H int

	// Optional pins, nil if not connected.
	RST       gpio.PinOut // Reset, active low
	CS        gpio.PinOut // Chip select, active low; nil when the bus is dedicated
	Backlight gpio.PinOut // Backlight enable, active high

	// Rotation is the initial index into the rotation table.
	Rotation int
	// Rotations replaces the built-in table selected by W and H.
	Rotations []Rotation
	// InitCmds replaces the built-in initialization sequence.
	InitCmds []InitCmd

	ColorOrder ColorOrder
	Inversion  bool
	Options    Options

	// Hz is the SPI clock. Defaults to 40MHz.
	Hz physic.Frequency
}

// DefaultOpts is the configuration of a 240x320 panel in portrait orientation.
var DefaultOpts = Opts{
	W:          240,
	H:          320,
	ColorOrder: RGB,
	Inversion:  true,
}

var errHalted = errors.New("st7789: halted")

// Dev is the device handle for the ST7789 display.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection, not owned
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinOut
	cs  gpio.PinOut
	bl  gpio.PinOut

	// Panel geometry
	displayWidth, displayHeight int
	width, height               int
	colStart, rowStart          int
	rotation                    int
	rotations                   []Rotation

	// Controller state
	colorOrder ColorOrder
	madctl     byte
	inversion  bool
	options    Options
	initCmds   []InitCmd
	halted     bool

	// Dirty box
	bounding bool
	box      Box

	// Shadow frame for Draw, lazily allocated
	next   *image565.Image
	last   *image565.Image
	known  bool // last mirrors the whole panel
	region []byte

	// Sticky error of SetPixel, returned by Display
	err error

	// Scratch buffers, so the drawing path does not allocate
	fillBuf [2 * fillPixels]byte
	cmdBuf  [1]byte
	madBuf  [1]byte
	winBuf  [4]byte
	pixBuf  [2]byte

	sleep func(time.Duration)
}

// NewSPI returns a Dev that communicates over SPI to an ST7789 controller.
//
// The SPI port is configured for Mode0, 8-bit transfers at opts.Hz. The dc
// (Data/Command) pin is required. opts can be nil to use DefaultOpts.
//
// The display is not initialized; call Init before drawing.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("st7789: must specify dc pin")
	}
	hz := opts.Hz
	if hz == 0 {
		hz = 40 * physic.MegaHertz
	}
	c, err := p.Connect(hz, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return New(c, dc, opts)
}

// New returns a Dev on an already connected bus. The bus is not owned by the
// Dev and is never closed by it.
func New(c conn.Conn, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	if dc == nil || dc == gpio.INVALID {
		return nil, errors.New("st7789: must specify dc pin")
	}
	if opts.W <= 0 || opts.H <= 0 {
		return nil, fmt.Errorf("st7789: invalid panel size %dx%d", opts.W, opts.H)
	}

	rots := opts.Rotations
	if len(rots) == 0 {
		rots = BuiltinRotations(opts.W, opts.H)
		if rots == nil {
			rots = genericRotations(opts.W, opts.H)
		}
	} else {
		rots = append([]Rotation(nil), rots...)
	}
	for i, r := range rots {
		if r.Width <= 0 || r.Height <= 0 {
			return nil, fmt.Errorf("st7789: rotation %d has invalid size %dx%d", i, r.Width, r.Height)
		}
	}

	for i, ic := range opts.InitCmds {
		if len(ic.Data) == 0 {
			return nil, fmt.Errorf("st7789: init command %d is empty", i)
		}
		if ic.Delay < 0 {
			return nil, fmt.Errorf("st7789: init command %d has negative delay", i)
		}
	}

	d := &Dev{
		c:             c,
		dc:            dc,
		rst:           pinOrNil(opts.RST),
		cs:            pinOrNil(opts.CS),
		bl:            pinOrNil(opts.Backlight),
		displayWidth:  opts.W,
		displayHeight: opts.H,
		width:         opts.W,
		height:        opts.H,
		rotations:     rots,
		rotation:      ((opts.Rotation % len(rots)) + len(rots)) % len(rots),
		colorOrder:    opts.ColorOrder,
		inversion:     opts.Inversion,
		options:       opts.Options,
		initCmds:      append([]InitCmd(nil), opts.InitCmds...),
		sleep:         time.Sleep,
	}
	d.resetBox()
	return d, nil
}

// genericRotations is used for panel sizes without a built-in table.
func genericRotations(w, h int) []Rotation {
	return []Rotation{
		{0x00, w, h, 0, 0},
		{0x60, h, w, 0, 0},
		{0xC0, w, h, 0, 0},
		{0xA0, h, w, 0, 0},
	}
}

func pinOrNil(p gpio.PinOut) gpio.PinOut {
	if p == gpio.INVALID {
		return nil
	}
	return p
}

// Init resets the controller, runs the initialization sequence, applies the
// rotation, clears the screen to black and turns the backlight on.
func (d *Dev) Init() error {
	if err := d.HardReset(); err != nil {
		return err
	}
	if len(d.initCmds) == 0 {
		if err := d.defaultInit(); err != nil {
			return err
		}
	} else if err := d.customInit(); err != nil {
		return err
	}
	if err := d.applyRotation(); err != nil {
		return err
	}
	d.sleep(10 * time.Millisecond)
	if err := d.FillRect(0, 0, d.width, d.height, Black); err != nil {
		return err
	}
	d.halted = false
	if d.bl != nil {
		return d.bl.Out(gpio.High)
	}
	return nil
}

func (d *Dev) defaultInit() error {
	if err := d.SoftReset(); err != nil {
		return err
	}
	if err := d.WriteCmd(SLPOUT, nil); err != nil {
		return err
	}
	if err := d.WriteCmd(COLMOD, []byte{colorMode65K16}); err != nil {
		return err
	}
	d.sleep(10 * time.Millisecond)
	if err := d.InversionMode(d.inversion); err != nil {
		return err
	}
	if err := d.WriteCmd(NORON, nil); err != nil {
		return err
	}
	d.sleep(10 * time.Millisecond)
	if err := d.WriteCmd(DISPON, nil); err != nil {
		return err
	}
	d.sleep(150 * time.Millisecond)
	return nil
}

func (d *Dev) customInit() error {
	for _, ic := range d.initCmds {
		if err := d.WriteCmd(ic.Data[0], ic.Data[1:]); err != nil {
			return err
		}
		d.sleep(10 * time.Millisecond)
		if ic.Delay > 0 {
			d.sleep(ic.Delay)
		}
	}
	return nil
}

// HardReset pulses the reset pin. Chip select is held low during the pulse.
//
// The delays are honored even when the reset pin is not connected.
func (d *Dev) HardReset() error {
	if err := d.csOut(gpio.Low); err != nil {
		return err
	}
	err := d.pulseReset()
	return d.release(err)
}

func (d *Dev) pulseReset() error {
	for _, step := range []struct {
		l     gpio.Level
		delay time.Duration
	}{
		{gpio.High, 50 * time.Millisecond},
		{gpio.Low, 50 * time.Millisecond},
		{gpio.High, 150 * time.Millisecond},
	} {
		if d.rst != nil {
			if err := d.rst.Out(step.l); err != nil {
				return fmt.Errorf("st7789: reset pin: %w", err)
			}
		}
		d.sleep(step.delay)
	}
	return nil
}

// SoftReset sends SWRESET and waits for the controller to restart.
func (d *Dev) SoftReset() error {
	if err := d.WriteCmd(SWRESET, nil); err != nil {
		return err
	}
	d.sleep(150 * time.Millisecond)
	return nil
}

// SleepMode enters (true) or leaves (false) sleep mode.
func (d *Dev) SleepMode(on bool) error {
	if on {
		return d.WriteCmd(SLPIN, nil)
	}
	return d.WriteCmd(SLPOUT, nil)
}

// InversionMode turns display inversion on or off.
func (d *Dev) InversionMode(on bool) error {
	d.inversion = on
	if on {
		return d.WriteCmd(INVON, nil)
	}
	return d.WriteCmd(INVOFF, nil)
}

// On turns the backlight on. It is a no-op without a backlight pin.
func (d *Dev) On() error {
	return d.backlight(gpio.High)
}

// Off turns the backlight off. It is a no-op without a backlight pin.
func (d *Dev) Off() error {
	return d.backlight(gpio.Low)
}

func (d *Dev) backlight(l gpio.Level) error {
	if d.bl == nil {
		return nil
	}
	if err := d.bl.Out(l); err != nil {
		return err
	}
	d.sleep(10 * time.Millisecond)
	return nil
}

// VScrollDef defines the vertical scrolling area: top fixed area, scroll area
// and bottom fixed area, in lines.
func (d *Dev) VScrollDef(tfa, vsa, bfa uint16) error {
	return d.WriteCmd(VSCRDEF, []byte{
		byte(tfa >> 8), byte(tfa),
		byte(vsa >> 8), byte(vsa),
		byte(bfa >> 8), byte(bfa),
	})
}

// VScrollStart sets the line of RAM shown at the top of the scroll area.
func (d *Dev) VScrollStart(vssa uint16) error {
	return d.WriteCmd(VSCSAD, []byte{byte(vssa >> 8), byte(vssa)})
}

// Madctl returns the last value written to the MADCTL register.
func (d *Dev) Madctl() byte {
	return d.madctl
}

// SetMadctl writes v to the MADCTL register as-is.
//
// The active width and height are not changed.
func (d *Dev) SetMadctl(v byte) error {
	d.madBuf[0] = v
	if err := d.WriteCmd(MADCTL, d.madBuf[:]); err != nil {
		return err
	}
	d.madctl = v
	return nil
}

// Offset overrides the column and row offsets of the current rotation.
func (d *Dev) Offset(col, row int) {
	d.colStart = col
	d.rowStart = row
}

// Options returns the drawing options.
func (d *Dev) Options() Options {
	return d.options
}

// SetOptions replaces the drawing options.
func (d *Dev) SetOptions(o Options) {
	d.options = o
}

// Width returns the active width for the current rotation.
func (d *Dev) Width() int {
	return d.width
}

// Height returns the active height for the current rotation.
func (d *Dev) Height() int {
	return d.height
}

// DisplayOn sends DISPON, undoing Halt.
func (d *Dev) DisplayOn() error {
	if err := d.WriteCmd(DISPON, nil); err != nil {
		return err
	}
	d.halted = false
	return nil
}

// Halt turns the display off. The backlight is left as is.
//
// Draw and Write fail until DisplayOn or Init is called.
func (d *Dev) Halt() error {
	if err := d.WriteCmd(DISPOFF, nil); err != nil {
		return err
	}
	d.halted = true
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7789.Dev{%s, %s, %dx%d}", d.c, d.dc, d.width, d.height)
}
