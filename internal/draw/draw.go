// Package draw renders the course to a terminal using half-block
// characters. Game objects use logical world coordinates; the canvas
// scales them to the actual terminal size.
package draw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Point represents a 2D coordinate in logical space.
type Point struct {
	X, Y float64
}

// Block characters for rendering.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ClearScreen clears the terminal and moves the cursor to top-left.
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

// MoveCursor moves the cursor to a 1-based terminal position.
func MoveCursor(w io.Writer, col, row int) {
	fmt.Fprintf(w, "\033[%d;%dH", row, col)
}

// WriteAt writes a string at a 1-based terminal position.
func WriteAt(w io.Writer, col, row int, s string) {
	MoveCursor(w, col, row)
	io.WriteString(w, s)
}

// TermSizeFunc returns the terminal dimensions. SSH sessions supply
// their own implementation backed by PTY window-change events.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize is the TermSizeFunc for a local terminal.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
