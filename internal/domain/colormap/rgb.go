package colormap

import (
	"fmt"
	"math"
)

// RGB is a color with channels in [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// FromHex converts a 0xRRGGBB value to RGB.
func FromHex(hex uint32) RGB {
	return RGB{
		R: float64(hex>>16&0xff) / 255,
		G: float64(hex>>8&0xff) / 255,
		B: float64(hex&0xff) / 255,
	}
}

// Lerp linearly interpolates each channel towards other by f.
func (c RGB) Lerp(other RGB, f float64) RGB {
	return RGB{
		R: c.R + (other.R-c.R)*f,
		G: c.G + (other.G-c.G)*f,
		B: c.B + (other.B-c.B)*f,
	}
}

// Uint32 returns the color as 0xRRGGBB.
func (c RGB) Uint32() uint32 {
	return uint32(channel(c.R))<<16 | uint32(channel(c.G))<<8 | uint32(channel(c.B))
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%06x", c.Uint32())
}

func channel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
