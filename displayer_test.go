package st7789

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDisplayer(t *testing.T) {
	d, p := newPanelDev(t, Opts{W: 16, H: 12})
	if x, y := d.Size(); x != 16 || y != 12 {
		t.Errorf("Size() = (%d, %d)", x, y)
	}
	d.SetPixel(3, 4, color.RGBA{255, 0, 0, 255})
	d.SetPixel(-1, 4, color.RGBA{255, 0, 0, 255})
	if err := d.FillRectangle(10, 10, 2, 2, color.RGBA{0, 255, 0, 255}); err != nil {
		t.Fatal(err)
	}
	if err := d.Display(); err != nil {
		t.Fatal(err)
	}
	want := map[image.Point]bool{
		{3, 4}: true, {10, 10}: true, {11, 10}: true, {10, 11}: true, {11, 11}: true,
	}
	if diff := cmp.Diff(want, lit(p)); diff != "" {
		t.Errorf("lit pixels mismatch (-want +got):\n%s", diff)
	}
	if got := p.Pixel(3, 4); got != Red {
		t.Errorf("Pixel(3, 4) = %#04x", got)
	}
}

func TestDisplayerError(t *testing.T) {
	d, rec := initTestDev(t, DefaultOpts)
	busErr := errors.New("bus failure")
	rec.err = busErr
	d.SetPixel(1, 1, color.RGBA{})
	rec.err = nil
	d.SetPixel(2, 2, color.RGBA{})
	if err := d.Display(); !errors.Is(err, busErr) {
		t.Errorf("Display() = %v, want %v", err, busErr)
	}
	if err := d.Display(); err != nil {
		t.Errorf("Display() = %v, the error should be cleared", err)
	}
}
