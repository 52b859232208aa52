package colormap

import (
	"errors"
	"math"
	"testing"
)

func TestNew_UnknownName(t *testing.T) {
	_, err := New("viridis", 0)
	if !errors.Is(err, ErrUnknownColorMap) {
		t.Fatalf("expected ErrUnknownColorMap, got %v", err)
	}
}

func TestNew_InvalidResolution(t *testing.T) {
	_, err := New(Default, 1)
	if !errors.Is(err, ErrInvalidResolution) {
		t.Fatalf("expected ErrInvalidResolution, got %v", err)
	}
}

func TestNew_DefaultResolution(t *testing.T) {
	l := MustNew(Default, 0)
	if l.Len() != DefaultResolution {
		t.Fatalf("want %d entries, got %d", DefaultResolution, l.Len())
	}
	if l.Name() != "blackbody" {
		t.Fatalf("want blackbody, got %s", l.Name())
	}
}

func TestColor_Extremes(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			l := MustNew(name, 256)
			stops := maps[name]
			if got, want := l.Color(0).Uint32(), stops[0].hex; got != want {
				t.Errorf("Color(0) = %06x, want %06x", got, want)
			}
			if got, want := l.Color(1).Uint32(), stops[len(stops)-1].hex; got != want {
				t.Errorf("Color(1) = %06x, want %06x", got, want)
			}
		})
	}
}

func TestColor_Blackbody(t *testing.T) {
	l := MustNew("blackbody", 256)
	if got := l.Color(0).Hex(); got != "#000000" {
		t.Errorf("Color(0) = %s, want #000000", got)
	}
	if got := l.Color(1).Hex(); got != "#ffffff" {
		t.Errorf("Color(1) = %s, want #ffffff", got)
	}
}

func TestColor_Clamps(t *testing.T) {
	l := MustNew(Default, 64)
	if l.Color(-3) != l.Color(0) {
		t.Error("values below range should clamp to the first entry")
	}
	if l.Color(7) != l.Color(1) {
		t.Error("values above range should clamp to the last entry")
	}
	if l.Color(math.NaN()) != l.Color(0) {
		t.Error("NaN should map to the first entry")
	}
}

func TestColor_Deterministic(t *testing.T) {
	a := MustNew(Default, 256)
	b := MustNew(Default, 256)
	for _, v := range []float64{0, 0.1, 0.333, 0.5, 0.9, 1} {
		if a.Color(v) != b.Color(v) || a.Color(v) != a.Color(v) {
			t.Errorf("Color(%v) is not deterministic", v)
		}
	}
}

func TestColor_BlackbodyMonotonic(t *testing.T) {
	l := MustNew("blackbody", 256)
	prev := l.Color(0)
	for i := 1; i <= 1000; i++ {
		c := l.Color(float64(i) / 1000)
		if c.R < prev.R || c.G < prev.G || c.B < prev.B {
			t.Fatalf("channel decreased at %v: %+v -> %+v", float64(i)/1000, prev, c)
		}
		prev = c
	}
}

func TestColor_MidScale(t *testing.T) {
	l := MustNew("blackbody", 256)
	mid := l.Color(0.5)
	lo, hi := l.Color(0), l.Color(1)
	if mid == lo || mid == hi {
		t.Fatalf("mid-scale color %s collapses onto an extreme", mid.Hex())
	}
	// 0.5 sits on the 0xe63200 stop.
	if math.Abs(mid.R-230.0/255) > 0.01 || mid.B != 0 {
		t.Errorf("mid-scale color = %s, want close to #e63200", mid.Hex())
	}
}

func TestWithRange(t *testing.T) {
	l := MustNew(Default, 256)
	r, err := l.WithRange(10, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Color(10) != l.Color(0) || r.Color(20) != l.Color(1) || r.Color(15) != l.Color(0.5) {
		t.Error("range mapping does not match the unit table")
	}
	if lo, hi := l.Range(); lo != 0 || hi != 1 {
		t.Errorf("original range mutated to [%v, %v]", lo, hi)
	}

	if _, err := l.WithRange(1, 1); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestRGB_Hex(t *testing.T) {
	tests := []struct {
		hex  uint32
		want string
	}{
		{0x0088ff, "#0088ff"},
		{0x00000f, "#00000f"},
		{0xffffff, "#ffffff"},
	}
	for _, tc := range tests {
		if got := FromHex(tc.hex).Hex(); got != tc.want {
			t.Errorf("FromHex(%06x).Hex() = %s, want %s", tc.hex, got, tc.want)
		}
	}
}

func TestExists(t *testing.T) {
	if !Exists("rainbow") || Exists("nope") {
		t.Error("Exists returned the wrong answer")
	}
}
