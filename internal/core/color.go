package core

import "strings"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorBeige
)

var colorNames = map[string]Color{
	"default": ColorDefault,
	"red":     ColorBrightRed,
	"green":   ColorBrightGreen,
	"yellow":  ColorBrightYellow,
	"blue":    ColorBrightBlue,
	"magenta": ColorMagenta,
	"cyan":    ColorCyan,
	"white":   ColorBrightWhite,
	"orange":  ColorOrange,
	"gray":    ColorGray,
	"grey":    ColorGray,
	"beige":   ColorBeige,
	"sand":    ColorBeige,
	"dark":    ColorGray,
}

// ParseColor maps a color name such as "red" or "beige" to a Color.
// Unknown names map to ColorDefault.
func ParseColor(name string) Color {
	return colorNames[strings.ToLower(strings.TrimSpace(name))]
}
