package core

// Color is a foreground color for a screen cell. The zero value keeps the
// terminal's own foreground.
type Color uint8

// Palette of the copter renderer.
const (
	ColorDefault Color = iota
	ColorRed         // crashed craft
	ColorGreen       // craft in flight
	ColorYellow      // walls
	ColorCyan        // pause box
	ColorWhite       // craft nose
	ColorBrightRed   // game over box and the wall that ended the run
	ColorBrightWhite // HUD text
	ColorGray        // ground and rotor
	colorCount
)

// ansiCodes holds the 256-color index of each palette entry.
var ansiCodes = [colorCount]string{
	ColorRed:         "1",
	ColorGreen:       "2",
	ColorYellow:      "3",
	ColorCyan:        "6",
	ColorWhite:       "7",
	ColorBrightRed:   "9",
	ColorBrightWhite: "15",
	ColorGray:        "245",
}

// ANSI returns the 256-color index for c. It is empty for ColorDefault
// and for values outside the palette.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return ansiCodes[c]
}
