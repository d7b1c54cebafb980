package draw

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sprite is a monochrome pixel mask parsed from a plain-text file.
// Every non-space character in the file lights one logical pixel.
type Sprite struct {
	rows   [][]bool
	width  int
	height int
}

// Width returns the sprite width in logical units.
func (s *Sprite) Width() int { return s.width }

// Height returns the sprite height in logical units.
func (s *Sprite) Height() int { return s.height }

// ParseSprite builds a sprite from text. Trailing blank lines are
// dropped; the width is the longest line.
func ParseSprite(text string) (*Sprite, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	var rows [][]bool
	width := 0
	for _, line := range lines {
		runes := []rune(strings.TrimRight(line, " "))
		if len(runes) > width {
			width = len(runes)
		}
		row := make([]bool, len(runes))
		for i, r := range runes {
			row[i] = r != ' '
		}
		rows = append(rows, row)
	}
	if width == 0 {
		return nil, fmt.Errorf("sprite has no visible pixels")
	}
	return &Sprite{rows: rows, width: width, height: len(rows)}, nil
}

// LoadSprite reads a sprite file from disk.
func LoadSprite(path string) (*Sprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sb strings.Builder
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		sb.WriteString(sc.Text())
		sb.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return ParseSprite(sb.String())
}

// DirResolver returns a resolver that loads sprite references relative
// to dir. References escaping the directory are rejected.
func DirResolver(dir string) func(ref string) (*Sprite, error) {
	return func(ref string) (*Sprite, error) {
		clean := filepath.Clean(ref)
		if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
			return nil, fmt.Errorf("sprite reference %q escapes asset directory", ref)
		}
		return LoadSprite(filepath.Join(dir, clean))
	}
}
