package rainbowrole

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHueColorPrimaries(t *testing.T) {
	assert.Equal(t, 0xFF0000, hueColor(0), "red")
	assert.Equal(t, 0x00FF00, hueColor(120), "green")
	assert.Equal(t, 0x0000FF, hueColor(240), "blue")
	assert.Equal(t, 0xFFFF00, hueColor(60), "yellow")
	assert.Equal(t, 0x00FFFF, hueColor(180), "cyan")
	assert.Equal(t, 0xFF00FF, hueColor(300), "magenta")
}

func TestNextHueWraps(t *testing.T) {
	hue := 0.0
	steps := int(360 / hueStep)
	for i := 0; i < steps; i++ {
		hue = nextHue(hue)
	}
	assert.InDelta(t, 0, hue, 1e-9, "a full walk returns to the start")
}

func TestNextHueCoversTheWheel(t *testing.T) {
	seen := map[int]bool{}
	hue := 0.0
	for i := 0; i < int(360/hueStep); i++ {
		hue = nextHue(hue)
		seen[hueColor(hue)] = true
	}
	assert.Len(t, seen, int(360/hueStep), "every step lands on a distinct color")
}

func TestColorHueRoundTrip(t *testing.T) {
	for _, h := range []float64{0, 15, 45, 90, 150, 210, 275, 345} {
		assert.InDelta(t, h, colorHue(hueColor(h)), 1.5, "hue %v survives the color round trip", h)
	}
}
