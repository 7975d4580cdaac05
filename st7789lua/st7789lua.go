// Package st7789lua exposes an st7789.Dev to Lua scripts.
//
// Open installs two globals. The st7789 table holds the color and flag
// constants, color565 and map_bitarray_to_rgb565. The tft table holds the
// device functions, called with a dot:
//
//	tft.fill(st7789.BLACK)
//	tft.line(0, 0, tft.width() - 1, tft.height() - 1, st7789.color565(255, 128, 0))
//	local x, y, w, h = tft.bounding(nil, true)
//
// Byte buffers are passed as Lua strings.
package st7789lua

import (
	"periph.io/x/devices/v3/st7789"

	lua "github.com/yuin/gopher-lua"
)

// Open registers the st7789 and tft globals in L, bound to d.
func Open(L *lua.LState, d *st7789.Dev) {
	L.SetGlobal("st7789", moduleTable(L))
	L.SetGlobal("tft", deviceTable(L, d))
}

func moduleTable(L *lua.LState) *lua.LTable {
	t := L.NewTable()
	for name, v := range map[string]int{
		"BLACK":     int(st7789.Black),
		"BLUE":      int(st7789.Blue),
		"RED":       int(st7789.Red),
		"GREEN":     int(st7789.Green),
		"CYAN":      int(st7789.Cyan),
		"MAGENTA":   int(st7789.Magenta),
		"YELLOW":    int(st7789.Yellow),
		"WHITE":     int(st7789.White),
		"MADCTL_MY": int(st7789.MadctlMY),
		"MADCTL_MX": int(st7789.MadctlMX),
		"MADCTL_MV": int(st7789.MadctlMV),
		"MADCTL_ML": int(st7789.MadctlML),
		"MADCTL_MH": int(st7789.MadctlMH),
		"RGB":       int(st7789.RGB),
		"BGR":       int(st7789.BGR),
		"WRAP":      int(st7789.Wrap),
		"WRAP_H":    int(st7789.WrapH),
		"WRAP_V":    int(st7789.WrapV),
	} {
		L.SetField(t, name, lua.LNumber(v))
	}
	L.SetFuncs(t, map[string]lua.LGFunction{
		"color565": func(L *lua.LState) int {
			c := st7789.Color565(uint8(L.CheckInt(1)), uint8(L.CheckInt(2)), uint8(L.CheckInt(3)))
			L.Push(lua.LNumber(c))
			return 1
		},
		"map_bitarray_to_rgb565": func(L *lua.LState) int {
			bits := []byte(L.CheckString(1))
			width := L.CheckInt(2)
			fg := st7789.Color(L.OptInt(3, int(st7789.White)))
			bg := st7789.Color(L.OptInt(4, int(st7789.Black)))
			out := make([]byte, 16*len(bits))
			n := st7789.MapBitArrayToRGB565(bits, out, width, fg, bg)
			L.Push(lua.LString(out[:2*n]))
			return 1
		},
	})
	return t
}

// binding adapts the device calls to the Lua calling convention.
type binding struct {
	d *st7789.Dev
}

// check raises err as a Lua error.
func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%v", err)
	}
}

func color(L *lua.LState, n int) st7789.Color {
	return st7789.Color(L.CheckInt(n))
}

func deviceTable(L *lua.LState, d *st7789.Dev) *lua.LTable {
	b := &binding{d: d}
	t := L.NewTable()
	L.SetFuncs(t, map[string]lua.LGFunction{
		"init":           void(d.Init),
		"on":             void(d.On),
		"off":            void(d.Off),
		"hard_reset":     void(d.HardReset),
		"soft_reset":     void(d.SoftReset),
		"sleep_mode":     b.sleepMode,
		"inversion_mode": b.inversionMode,
		"write":          b.write,
		"set_window":     b.setWindow,
		"pixel":          b.pixel,
		"hline":          b.hline,
		"vline":          b.vline,
		"rect":           b.rect,
		"fill_rect":      b.fillRect,
		"fill":           b.fill,
		"line":           b.line,
		"blit_buffer":    b.blitBuffer,
		"rotation":       b.rotation,
		"width":          b.width,
		"height":         b.height,
		"vscrdef":        b.vscrdef,
		"vscsad":         b.vscsad,
		"madctl":         b.madctl,
		"offset":         b.offset,
		"options":        b.options,
		"bounding":       b.bounding,
	})
	return t
}

func void(f func() error) lua.LGFunction {
	return func(L *lua.LState) int {
		check(L, f())
		return 0
	}
}

func (b *binding) sleepMode(L *lua.LState) int {
	check(L, b.d.SleepMode(L.ToBool(1)))
	return 0
}

func (b *binding) inversionMode(L *lua.LState) int {
	check(L, b.d.InversionMode(L.ToBool(1)))
	return 0
}

func (b *binding) write(L *lua.LState) int {
	check(L, b.d.WriteCmd(byte(L.CheckInt(1)), []byte(L.OptString(2, ""))))
	return 0
}

func (b *binding) setWindow(L *lua.LState) int {
	check(L, b.d.SetWindow(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4)))
	return 0
}

func (b *binding) pixel(L *lua.LState) int {
	check(L, b.d.Pixel(L.CheckInt(1), L.CheckInt(2), color(L, 3)))
	return 0
}

func (b *binding) hline(L *lua.LState) int {
	check(L, b.d.HLine(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), color(L, 4)))
	return 0
}

func (b *binding) vline(L *lua.LState) int {
	check(L, b.d.VLine(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), color(L, 4)))
	return 0
}

func (b *binding) rect(L *lua.LState) int {
	check(L, b.d.Rect(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), color(L, 5)))
	return 0
}

func (b *binding) fillRect(L *lua.LState) int {
	check(L, b.d.FillRect(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), color(L, 5)))
	return 0
}

func (b *binding) fill(L *lua.LState) int {
	check(L, b.d.Fill(color(L, 1)))
	return 0
}

func (b *binding) line(L *lua.LState) int {
	check(L, b.d.Line(L.CheckInt(1), L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), color(L, 5)))
	return 0
}

func (b *binding) blitBuffer(L *lua.LState) int {
	buf := []byte(L.CheckString(1))
	check(L, b.d.BlitBuffer(buf, L.CheckInt(2), L.CheckInt(3), L.CheckInt(4), L.CheckInt(5)))
	return 0
}

// rotation sets the rotation when given an argument and returns the current
// one.
func (b *binding) rotation(L *lua.LState) int {
	if L.GetTop() >= 1 {
		check(L, b.d.SetRotation(L.CheckInt(1)))
	}
	L.Push(lua.LNumber(b.d.Rotation()))
	return 1
}

func (b *binding) width(L *lua.LState) int {
	L.Push(lua.LNumber(b.d.Width()))
	return 1
}

func (b *binding) height(L *lua.LState) int {
	L.Push(lua.LNumber(b.d.Height()))
	return 1
}

func (b *binding) vscrdef(L *lua.LState) int {
	check(L, b.d.VScrollDef(uint16(L.CheckInt(1)), uint16(L.CheckInt(2)), uint16(L.CheckInt(3))))
	return 0
}

func (b *binding) vscsad(L *lua.LState) int {
	check(L, b.d.VScrollStart(uint16(L.CheckInt(1))))
	return 0
}

func (b *binding) madctl(L *lua.LState) int {
	if L.GetTop() >= 1 {
		check(L, b.d.SetMadctl(byte(L.CheckInt(1))))
	}
	L.Push(lua.LNumber(b.d.Madctl()))
	return 1
}

func (b *binding) offset(L *lua.LState) int {
	b.d.Offset(L.CheckInt(1), L.CheckInt(2))
	return 0
}

func (b *binding) options(L *lua.LState) int {
	if L.GetTop() >= 1 {
		b.d.SetOptions(st7789.Options(L.CheckInt(1)))
	}
	L.Push(lua.LNumber(b.d.Options()))
	return 1
}

// bounding returns the dirty box. A non-nil first argument enables or
// disables tracking and resets the box; a true second argument returns the
// box as origin and size.
func (b *binding) bounding(L *lua.LState) int {
	box := b.d.Bounding()
	if L.GetTop() >= 1 && L.Get(1) != lua.LNil {
		box = b.d.SetBounding(L.ToBool(1))
	}
	if L.ToBool(2) {
		x, y, w, h := box.Size()
		pushInts(L, x, y, w, h)
	} else {
		pushInts(L, box.MinX, box.MinY, box.MaxX, box.MaxY)
	}
	return 4
}

func pushInts(L *lua.LState, v ...int) {
	for _, n := range v {
		L.Push(lua.LNumber(n))
	}
}
