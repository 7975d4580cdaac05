package st7789test

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/devices/v3/st7789/image565"
)

type bus struct {
	t  *testing.T
	p  *Panel
	dc *gpiotest.Pin
	cs *gpiotest.Pin
}

func newBus(t *testing.T, w, h int) *bus {
	dc := &gpiotest.Pin{N: "DC"}
	cs := &gpiotest.Pin{N: "CS", L: gpio.High}
	return &bus{t: t, p: NewPanel(w, h, dc, cs), dc: dc, cs: cs}
}

func (b *bus) send(l gpio.Level, w ...byte) {
	b.t.Helper()
	if err := b.dc.Out(l); err != nil {
		b.t.Fatal(err)
	}
	if err := b.p.Tx(w, nil); err != nil {
		b.t.Fatal(err)
	}
}

func (b *bus) cmd(c byte, data ...byte) {
	b.t.Helper()
	_ = b.cs.Out(gpio.Low)
	b.send(gpio.Low, c)
	if len(data) != 0 {
		b.send(gpio.High, data...)
	}
	_ = b.cs.Out(gpio.High)
}

func TestPanelConnect(t *testing.T) {
	p := NewPanel(4, 4, &gpiotest.Pin{}, nil)
	c, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		t.Fatal(err)
	}
	if c != spi.Conn(p) {
		t.Fatal("Connect should return the panel")
	}
	if _, err := p.Connect(10*physic.MegaHertz, spi.Mode0, 9); err == nil {
		t.Fatal("expected error for 9 bits")
	}
	if s := p.String(); s != "st7789test.Panel" {
		t.Fatalf("String() = %q", s)
	}
}

func TestPanelState(t *testing.T) {
	b := newBus(t, 4, 4)
	b.cmd(swreset)
	b.cmd(slpout)
	b.cmd(colmod, 0x55)
	b.cmd(invon)
	b.cmd(dispon)
	b.cmd(madctl, 0x60)
	b.cmd(vscrdef, 0x00, 0x10, 0x01, 0x20, 0x00, 0x10)
	b.cmd(vscsad, 0x00, 0x20)

	p := b.p
	if p.Resets != 1 {
		t.Errorf("Resets = %d, want 1", p.Resets)
	}
	if p.Sleeping || !p.Inverted || !p.DisplayOn {
		t.Errorf("sleeping=%t inverted=%t on=%t", p.Sleeping, p.Inverted, p.DisplayOn)
	}
	if p.COLMOD != 0x55 || p.MADCTL != 0x60 {
		t.Errorf("COLMOD=%#x MADCTL=%#x", p.COLMOD, p.MADCTL)
	}
	if want := [3]uint16{0x10, 0x120, 0x10}; p.ScrollDef != want {
		t.Errorf("ScrollDef = %v, want %v", p.ScrollDef, want)
	}
	if p.ScrollStart != 0x20 {
		t.Errorf("ScrollStart = %#x", p.ScrollStart)
	}

	b.cmd(invoff)
	b.cmd(dispoff)
	b.cmd(slpin)
	if !p.Sleeping || p.Inverted || p.DisplayOn {
		t.Errorf("sleeping=%t inverted=%t on=%t", p.Sleeping, p.Inverted, p.DisplayOn)
	}

	want := []byte{swreset, slpout, colmod, invon, dispon, madctl, vscrdef, vscsad, invoff, dispoff, slpin}
	if diff := cmp.Diff(want, p.Commands()); diff != "" {
		t.Errorf("Commands() mismatch (-want +got):\n%s", diff)
	}
}

func TestPanelWindow(t *testing.T) {
	b := newBus(t, 4, 3)
	b.cmd(caset, 0, 1, 0, 2)
	b.cmd(raset, 0, 1, 0, 2)
	// The odd byte count splits a pixel across two transfers.
	_ = b.cs.Out(gpio.Low)
	b.send(gpio.Low, ramwr)
	b.send(gpio.High, 0xF8, 0x00, 0x07)
	b.send(gpio.High, 0xE0, 0x00, 0x1F, 0xFF, 0xFF, 0x12, 0x34)
	_ = b.cs.Out(gpio.High)

	want := map[image.Point]image565.RGB565{
		{1, 1}: 0xF800,
		{2, 1}: 0x07E0,
		{1, 2}: 0x001F,
		{2, 2}: 0xFFFF,
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			w := want[image.Pt(x, y)]
			// The fifth pixel wrapped around to the start of the window.
			if x == 1 && y == 1 {
				w = 0x1234
			}
			if got := b.p.Pixel(x, y); got != w {
				t.Errorf("Pixel(%d, %d) = %#04x, want %#04x", x, y, got, w)
			}
		}
	}
	ops := b.p.Ops
	if last := ops[len(ops)-1]; last.Cmd != ramwr || last.Pixels != 5 || len(last.Data) != 0 {
		t.Errorf("last op = %+v", last)
	}
}

func TestPanelDropped(t *testing.T) {
	b := newBus(t, 2, 2)
	b.cmd(caset, 0, 1, 0, 3)
	b.cmd(raset, 0, 0, 0, 0)
	b.cmd(ramwr, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	if b.p.Dropped != 2 {
		t.Errorf("Dropped = %d, want 2", b.p.Dropped)
	}
	if got := b.p.Pixel(1, 0); got != 0xFFFF {
		t.Errorf("Pixel(1, 0) = %#04x", got)
	}
}

func TestPanelChipSelect(t *testing.T) {
	b := newBus(t, 2, 2)
	b.send(gpio.Low, swreset)
	if len(b.p.Ops) != 0 || b.p.Ignored != 1 {
		t.Errorf("ops=%v ignored=%d", b.p.Ops, b.p.Ignored)
	}
}

func TestPanelOps(t *testing.T) {
	b := newBus(t, 2, 2)
	b.cmd(caset, 0, 0, 0, 1)
	b.cmd(0xB2, 0x0C, 0x0C)
	want := []Op{
		{Cmd: caset, Data: []byte{0, 0, 0, 1}},
		{Cmd: 0xB2, Data: []byte{0x0C, 0x0C}},
	}
	if diff := cmp.Diff(want, b.p.Ops, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Ops mismatch (-want +got):\n%s", diff)
	}
}

func TestRender(t *testing.T) {
	img := image565.NewImage(image.Rect(0, 0, 8, 4))
	img.Fill(img.Bounds(), 0xF800)

	var buf bytes.Buffer
	if err := Render(&buf, img, 0); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 4 {
		t.Errorf("got %d lines, want 4", n)
	}

	buf.Reset()
	if err := Render(&buf, img, 4); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 2 {
		t.Errorf("got %d lines, want 2", n)
	}
}
