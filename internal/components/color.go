package components

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
	"DarkBlue":  rl.DarkBlue,
	"DarkGreen": rl.DarkGreen,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

// ParseColor accepts a raylib palette name or #rrggbb / #rrggbbaa.
func ParseColor(s string) (rl.Color, bool) {
	if c, ok := colorByName[s]; ok {
		return c, true
	}
	hex := strings.TrimPrefix(s, "#")
	if hex == s {
		return rl.White, false
	}
	var r, g, b uint8
	a := uint8(255)
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%2x%2x%2x", &r, &g, &b); err != nil {
			return rl.White, false
		}
	case 8:
		if _, err := fmt.Sscanf(hex, "%2x%2x%2x%2x", &r, &g, &b, &a); err != nil {
			return rl.White, false
		}
	default:
		return rl.White, false
	}
	return rl.Color{R: r, G: g, B: b, A: a}, true
}

// ColorName is the inverse of ParseColor.
func ColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
