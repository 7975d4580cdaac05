package st7789test

import (
	"fmt"
	"image"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/st7789/image565"
)

// Controller commands decoded by Panel.
const (
	swreset byte = 0x01
	slpin   byte = 0x10
	slpout  byte = 0x11
	invoff  byte = 0x20
	invon   byte = 0x21
	dispoff byte = 0x28
	dispon  byte = 0x29
	caset   byte = 0x2A
	raset   byte = 0x2B
	ramwr   byte = 0x2C
	vscrdef byte = 0x33
	madctl  byte = 0x36
	vscsad  byte = 0x37
	colmod  byte = 0x3A
)

// paramLen is the number of parameter bytes applied by each command.
var paramLen = map[byte]int{
	caset:   4,
	raset:   4,
	vscrdef: 6,
	madctl:  1,
	vscsad:  2,
	colmod:  1,
}

// Op is one command received by the Panel.
type Op struct {
	Cmd byte
	// Data holds the parameters sent after Cmd. Pixel data following RAMWR is
	// not kept; see Pixels.
	Data []byte
	// Pixels is the number of pixels received after RAMWR.
	Pixels int
}

// Panel emulates the ST7789 command set on top of a frame buffer.
//
// Frame is indexed by the column and row addresses sent with CASET and
// RASET, so it must be sized to cover the address space in use, offsets
// included. MADCTL is recorded but does not transform addresses. Pixels
// addressed outside Frame are counted in Dropped.
//
// The level of DC tells commands from data. When CS is set, transfers made
// while it is high are ignored.
type Panel struct {
	sync.Mutex
	DC gpio.PinIn
	CS gpio.PinIn

	Frame *image565.Image
	Ops   []Op

	MADCTL      byte
	COLMOD      byte
	Inverted    bool
	Sleeping    bool
	DisplayOn   bool
	ScrollDef   [3]uint16
	ScrollStart uint16
	Resets      int
	Dropped     int
	Ignored     int

	xs, xe, ys, ye int
	cx, cy         int
	half           bool
	hi             byte
}

// NewPanel returns a Panel with a w x h frame buffer, fresh out of power-on
// reset.
func NewPanel(w, h int, dc, cs gpio.PinIn) *Panel {
	p := &Panel{
		DC:    dc,
		CS:    cs,
		Frame: image565.NewImage(image.Rect(0, 0, w, h)),
	}
	p.reset()
	return p
}

func (p *Panel) String() string {
	return "st7789test.Panel"
}

// Connect implements spi.Port.
func (p *Panel) Connect(f physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	if bits != 8 {
		return nil, fmt.Errorf("st7789test: unsupported %d bits per word", bits)
	}
	return p, nil
}

// LimitSpeed implements spi.Port.
func (p *Panel) LimitSpeed(f physic.Frequency) error {
	return nil
}

// Duplex implements conn.Conn.
func (p *Panel) Duplex() conn.Duplex {
	return conn.Half
}

// TxPackets implements spi.Conn.
func (p *Panel) TxPackets(pkts []spi.Packet) error {
	for _, pkt := range pkts {
		if err := p.Tx(pkt.W, pkt.R); err != nil {
			return err
		}
	}
	return nil
}

// Tx implements conn.Conn. The controller is write only, so r is zeroed.
func (p *Panel) Tx(w, r []byte) error {
	p.Lock()
	defer p.Unlock()
	clear(r)
	if p.CS != nil && p.CS.Read() == gpio.High {
		p.Ignored += len(w)
		return nil
	}
	if p.DC.Read() == gpio.Low {
		for _, b := range w {
			p.command(b)
		}
		return nil
	}
	if len(p.Ops) == 0 {
		p.Ignored += len(w)
		return nil
	}
	if op := &p.Ops[len(p.Ops)-1]; op.Cmd == ramwr {
		p.pixels(op, w)
		return nil
	}
	for _, b := range w {
		p.param(b)
	}
	return nil
}

// Pixel returns the color stored at (x, y).
func (p *Panel) Pixel(x, y int) image565.RGB565 {
	p.Lock()
	defer p.Unlock()
	return p.Frame.RGB565At(x, y)
}

// Commands returns the opcodes received so far, in order.
func (p *Panel) Commands() []byte {
	p.Lock()
	defer p.Unlock()
	out := make([]byte, len(p.Ops))
	for i, op := range p.Ops {
		out[i] = op.Cmd
	}
	return out
}

func (p *Panel) reset() {
	p.MADCTL = 0
	p.COLMOD = 0x66
	p.Inverted = false
	p.Sleeping = true
	p.DisplayOn = false
	p.ScrollDef = [3]uint16{}
	p.ScrollStart = 0
	b := p.Frame.Bounds()
	p.xs, p.xe = 0, b.Dx()-1
	p.ys, p.ye = 0, b.Dy()-1
	p.cx, p.cy = 0, 0
	p.half = false
}

func (p *Panel) command(b byte) {
	p.Ops = append(p.Ops, Op{Cmd: b})
	p.half = false
	switch b {
	case swreset:
		p.Resets++
		p.reset()
	case slpin:
		p.Sleeping = true
	case slpout:
		p.Sleeping = false
	case invoff:
		p.Inverted = false
	case invon:
		p.Inverted = true
	case dispoff:
		p.DisplayOn = false
	case dispon:
		p.DisplayOn = true
	case ramwr:
		p.cx, p.cy = p.xs, p.ys
	}
}

func (p *Panel) param(b byte) {
	op := &p.Ops[len(p.Ops)-1]
	op.Data = append(op.Data, b)
	if n, ok := paramLen[op.Cmd]; !ok || len(op.Data) != n {
		return
	}
	d := op.Data
	be := func(i int) int { return int(d[i])<<8 | int(d[i+1]) }
	switch op.Cmd {
	case caset:
		p.xs, p.xe = be(0), be(2)
	case raset:
		p.ys, p.ye = be(0), be(2)
	case madctl:
		p.MADCTL = d[0]
	case colmod:
		p.COLMOD = d[0]
	case vscrdef:
		p.ScrollDef = [3]uint16{uint16(be(0)), uint16(be(2)), uint16(be(4))}
	case vscsad:
		p.ScrollStart = uint16(be(0))
	}
}

// pixels writes big-endian RGB565 data at the cursor. A byte left over from
// one transfer pairs with the first byte of the next.
func (p *Panel) pixels(op *Op, w []byte) {
	for _, b := range w {
		if !p.half {
			p.hi = b
			p.half = true
			continue
		}
		p.half = false
		op.Pixels++
		if image.Pt(p.cx, p.cy).In(p.Frame.Rect) {
			p.Frame.SetRGB565(p.cx, p.cy, image565.RGB565(p.hi)<<8|image565.RGB565(b))
		} else {
			p.Dropped++
		}
		if p.cx++; p.cx > p.xe {
			p.cx = p.xs
			if p.cy++; p.cy > p.ye {
				p.cy = p.ys
			}
		}
	}
}

var _ spi.Port = &Panel{}
var _ spi.Conn = &Panel{}
