package draw

import (
	"fmt"
	"io"
	"strconv"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ColorReset restores the default terminal colours.
const ColorReset = "\033[0m"

// Empty is the pixel value of an unset pixel. Other values are xterm-256
// colour indices, so colour 0 (black) cannot be drawn.
const Empty uint8 = 0

// FgColor returns the escape sequence selecting a 256-colour foreground.
func FgColor(c uint8) string {
	return "\033[38;5;" + strconv.Itoa(int(c)) + "m"
}

// BgColor returns the escape sequence selecting a 256-colour background.
func BgColor(c uint8) string {
	return "\033[48;5;" + strconv.Itoa(int(c)) + "m"
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
