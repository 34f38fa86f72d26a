package universe

import (
	"strings"
	"unicode"
)

//Cell is the state of a single board position, the zero value is a dead cell
type Cell bool

const (
	Dead  Cell = false
	Alive Cell = true
)

//persistence and input encoding
const (
	AliveChar = 'O'
	DeadChar  = 'X'
)

//display glyphs
const (
	AliveGlyph = '█'
	DeadGlyph  = ' '
)

//IsCellChar reports whether c encodes a cell, the check is case-insensitive
func IsCellChar(c rune) bool {
	c = unicode.ToUpper(c)
	return c == AliveChar || c == DeadChar
}

//ParseCell decodes a persistence char
//the caller is expected to check the char with IsCellChar first
func ParseCell(c rune) (Cell, error) {
	switch unicode.ToUpper(c) {
	case AliveChar:
		return Alive, nil
	case DeadChar:
		return Dead, nil
	}
	return Dead, invalidState("parse cell", "unexpected cell char %q", c)
}

//EncodeCell returns the persistence char for the cell
func EncodeCell(c Cell) rune {
	if c {
		return AliveChar
	}
	return DeadChar
}

//RenderCell returns the display glyph for the cell
func RenderCell(c Cell) rune {
	if c {
		return AliveGlyph
	}
	return DeadGlyph
}

//RenderGrid renders the rows top to bottom, each row followed by a line break
func RenderGrid(cells [][]Cell) string {
	var b strings.Builder
	for _, row := range cells {
		for _, c := range row {
			b.WriteRune(RenderCell(c))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

//encodeRow returns the persistence form of a row
func encodeRow(row []Cell) string {
	var b strings.Builder
	b.Grow(len(row))
	for _, c := range row {
		b.WriteRune(EncodeCell(c))
	}
	return b.String()
}
