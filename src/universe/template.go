package universe

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

//Template represents the named seeding pattern which is stamped onto the game board
//it is immutable, NewTemplate is the only validation point
type Template struct {
	name  string
	cells Grid
}

//NewTemplate validates the name and the shape of cells and returns the template
func NewTemplate(name string, height int, width int, cells [][]Cell) (*Template, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidArgument("new template", "blank name")
	}
	g, err := GridFromCells(height, width, cells)
	if err != nil {
		return nil, err
	}
	return &Template{name: name, cells: g}, nil
}

//ParseTemplate reads the stored format:
//the height line, the width line and height lines of width O/X chars
func ParseTemplate(name string, r io.Reader) (*Template, error) {
	const op = "parse template"
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		lines = append(lines, strings.TrimRight(s.Text(), "\r"))
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 2 {
		return nil, invalidArgument(op, "template %q: missing dimensions", name)
	}
	height, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil {
		return nil, invalidArgument(op, "template %q: height %q is not a number", name, lines[0])
	}
	width, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil {
		return nil, invalidArgument(op, "template %q: width %q is not a number", name, lines[1])
	}
	if strings.TrimSpace(name) == "" {
		return nil, invalidArgument(op, "blank name")
	}
	g, err := GridFromRows(height, width, lines[2:])
	if err != nil {
		return nil, err
	}
	return &Template{name: name, cells: g}, nil
}

func (t *Template) Name() string {
	return t.name
}

func (t *Template) Height() int {
	return t.cells.Height
}

func (t *Template) Width() int {
	return t.cells.Width
}

//Cells returns a copy of the template cells
func (t *Template) Cells() [][]Cell {
	return t.cells.Clone().Cells
}

//String returns the stored format of the template
func (t *Template) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(t.Height()))
	b.WriteByte('\n')
	b.WriteString(strconv.Itoa(t.Width()))
	b.WriteByte('\n')
	for _, row := range t.cells.Rows() {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}
