package rainbowrole

import "math"

// hueStep is the hue advance per tick in degrees. 24 steps walk the full
// wheel, so a 90s interval loops the rainbow in 36 minutes.
const hueStep = 15.0

// nextHue advances the hue by one step, wrapping at 360.
func nextHue(hue float64) float64 {
	return math.Mod(hue+hueStep, 360)
}

// hueColor returns the packed 0xRRGGBB color for a hue at full saturation
// and value.
func hueColor(hue float64) int {
	r, g, b := hsvToRGB(hue, 1, 1)
	return r<<16 | g<<8 | b
}

// colorHue extracts the hue in degrees from a packed 0xRRGGBB color, so a
// resumed loop continues from the role's last color instead of jumping.
func colorHue(color int) float64 {
	r := float64((color>>16)&0xFF) / 255
	g := float64((color>>8)&0xFF) / 255
	b := float64(color&0xFF) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	d := max - min
	if d == 0 {
		return 0
	}

	var h float64
	switch max {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h
}

// hsvToRGB converts h in [0,360), s and v in [0,1] to 8-bit RGB channels.
func hsvToRGB(h, s, v float64) (int, int, int) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return int(math.Round((r + m) * 255)), int(math.Round((g + m) * 255)), int(math.Round((b + m) * 255))
}
