package upscale

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/Skryldev/image-upscaler/core"
)

func solid(w, h int, r, g, b uint8) *core.RawImage {
	img := core.NewRawImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, r, g, b, 255)
		}
	}
	return img
}

func textured(w, h int) *core.RawImage {
	img := core.NewRawImage(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, uint8((x*31+y*17)%256), uint8((x*7+y*43)%256), uint8((x+y)%256), 255)
		}
	}
	return img
}

func near(got, want uint8) bool {
	d := int(got) - int(want)
	return d >= -1 && d <= 1
}

func TestAllStrategies_CeilingDimensions(t *testing.T) {
	src := textured(5, 3)
	cases := []struct {
		scale float64
		w, h  int
	}{
		{2, 10, 6},
		{1.5, 8, 5},   // ceil(7.5), ceil(4.5)
		{2.3, 12, 7},   // ceil(11.5), ceil(6.9)
		{3.01, 16, 10}, // ceil(15.05), ceil(9.03)
	}
	for _, u := range All() {
		for _, c := range cases {
			t.Run(fmt.Sprintf("%s_%.2fx", u.Name(), c.scale), func(t *testing.T) {
				out := u.Upscale(src, c.scale)
				if out.Width != c.w || out.Height != c.h {
					t.Errorf("dims: got %dx%d, want %dx%d", out.Width, out.Height, c.w, c.h)
				}
			})
		}
	}
}

func TestAllStrategies_Deterministic(t *testing.T) {
	src := textured(16, 12)
	for _, u := range All() {
		t.Run(u.Name(), func(t *testing.T) {
			a := u.Upscale(src, 2.5)
			b := u.Upscale(src.Clone(), 2.5)
			if !bytes.Equal(a.Pix, b.Pix) {
				t.Error("identical inputs produced different outputs")
			}
		})
	}
}

func TestAllStrategies_PreserveSolidColor(t *testing.T) {
	src := solid(8, 8, 120, 60, 200)
	for _, u := range All() {
		t.Run(u.Name(), func(t *testing.T) {
			out := u.Upscale(src, 2)
			// Interior pixel, away from any boundary handling.  Float
			// resampling may truncate one step below the exact value.
			r, g, b, a := out.RGBAAt(out.Width/2, out.Height/2)
			if !near(r, 120) || !near(g, 60) || !near(b, 200) || a != 255 {
				t.Errorf("interior pixel: got %d,%d,%d,%d", r, g, b, a)
			}
		})
	}
}

func TestNearest_ExactBlockReplication(t *testing.T) {
	src := core.NewRawImage(2, 2)
	src.SetRGBA(0, 0, 255, 0, 0, 255)
	src.SetRGBA(1, 0, 0, 255, 0, 255)
	src.SetRGBA(0, 1, 0, 0, 255, 255)
	src.SetRGBA(1, 1, 255, 255, 255, 255)

	out := NearestNeighbor{}.Upscale(src, 2)
	// Each source pixel becomes a 2x2 block.
	for _, tc := range []struct{ x, y int; r, g, b uint8 }{
		{0, 0, 255, 0, 0}, {1, 1, 255, 0, 0},
		{2, 0, 0, 255, 0}, {3, 1, 0, 255, 0},
		{0, 2, 0, 0, 255}, {1, 3, 0, 0, 255},
		{2, 2, 255, 255, 255}, {3, 3, 255, 255, 255},
	} {
		r, g, b, _ := out.RGBAAt(tc.x, tc.y)
		if r != tc.r || g != tc.g || b != tc.b {
			t.Errorf("(%d,%d): got %d,%d,%d, want %d,%d,%d", tc.x, tc.y, r, g, b, tc.r, tc.g, tc.b)
		}
	}
}

func TestRegistry_Builtin(t *testing.T) {
	reg := Builtin()
	for _, u := range All() {
		got, err := reg.Resolve(u.Name())
		if err != nil {
			t.Errorf("Resolve(%q): %v", u.Name(), err)
			continue
		}
		if got.Name() != u.Name() {
			t.Errorf("Resolve(%q) returned %q", u.Name(), got.Name())
		}
	}
	if _, err := reg.Resolve("nope"); err == nil {
		t.Error("unknown strategy must error")
	}
	if _, err := reg.Resolve(DefaultAlgorithm); err != nil {
		t.Errorf("default algorithm must be registered: %v", err)
	}
}

func TestByTier_CoversAllStrategies(t *testing.T) {
	total := 0
	for _, tier := range []core.Tier{core.TierInstant, core.TierFast, core.TierMedium, core.TierSlow} {
		total += len(ByTier(tier))
	}
	if total != len(All()) {
		t.Errorf("tier partition: got %d strategies, want %d", total, len(All()))
	}
}
