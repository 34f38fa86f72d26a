package universe

import (
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//Grid is a rectangular height x width board of cells, row-major, 0-indexed
type Grid struct {
	Width  int
	Height int
	Cells  [][]Cell
}

//MaxCells limits the board size, height*width above it is rejected
const MaxCells = 1 << 28

//checkDimensions rejects the non-positive dimensions and the boards above MaxCells
func checkDimensions(op string, height int, width int) error {
	if height < 1 || width < 1 {
		return invalidArgument(op, "dimension %vx%v, both must be at least 1", height, width)
	}
	if width > MaxCells/height {
		return invalidArgument(op, "dimension %vx%v, more than %v cells", height, width, MaxCells)
	}
	return nil
}

//NewGrid allocates the all-dead grid
func NewGrid(height int, width int) (Grid, error) {
	if err := checkDimensions("new grid", height, width); err != nil {
		return Grid{}, err
	}
	return createGrid(height, width), nil
}

//GridFromCells validates the shape of cells and copies them into a new grid
func GridFromCells(height int, width int, cells [][]Cell) (Grid, error) {
	const op = "grid from cells"
	if err := checkDimensions(op, height, width); err != nil {
		return Grid{}, err
	}
	if cells == nil {
		return Grid{}, invalidArgument(op, "no cells")
	}
	if len(cells) != height {
		return Grid{}, invalidArgument(op, "got %v rows, want %v", len(cells), height)
	}
	for y, row := range cells {
		if len(row) != width {
			return Grid{}, invalidArgument(op, "row %v has %v cells, want %v", y, len(row), width)
		}
	}
	g := createGrid(height, width)
	for y := range cells {
		copy(g.Cells[y], cells[y])
	}
	return g, nil
}

//GridFromRows parses the persistence form: height lines of width O/X chars
func GridFromRows(height int, width int, lines []string) (Grid, error) {
	const op = "grid from rows"
	if err := checkDimensions(op, height, width); err != nil {
		return Grid{}, err
	}
	if len(lines) != height {
		return Grid{}, invalidArgument(op, "got %v lines, want %v", len(lines), height)
	}
	g := createGrid(height, width)
	for y, l := range lines {
		if utf8.RuneCountInString(l) != width {
			return Grid{}, invalidArgument(op, "line %v has %v chars, want %v", y+1, utf8.RuneCountInString(l), width)
		}
		x := 0
		for _, r := range l {
			if !IsCellChar(r) {
				return Grid{}, invalidArgument(op, "line %v: %q is not a cell, use %c or %c", y+1, r, AliveChar, DeadChar)
			}
			c, err := ParseCell(r)
			if err != nil {
				return Grid{}, err
			}
			g.Cells[y][x] = c
			x++
		}
	}
	return g, nil
}

//Clone returns a deep copy of the grid
func (g Grid) Clone() Grid {
	c := createGrid(g.Height, g.Width)
	for y := range g.Cells {
		copy(c.Cells[y], g.Cells[y])
	}
	return c
}

//LiveCells returns the count of alive cells
func (g Grid) LiveCells() int {
	liveCells := 0
	g.walk(func(x int, y int, c Cell) {
		if c {
			liveCells++
		}
	})
	return liveCells
}

//Equal reports whether both grids have the same shape and cells
func (g Grid) Equal(o Grid) bool {
	if g.Width != o.Width || g.Height != o.Height || len(g.Cells) != len(o.Cells) {
		return false
	}
	for y := range g.Cells {
		if len(g.Cells[y]) != len(o.Cells[y]) {
			return false
		}
		for x := range g.Cells[y] {
			if g.Cells[y][x] != o.Cells[y][x] {
				return false
			}
		}
	}
	return true
}

//Rows returns the persistence form of the grid, one O/X string per row
func (g Grid) Rows() []string {
	rows := make([]string, len(g.Cells))
	for y, row := range g.Cells {
		rows[y] = encodeRow(row)
	}
	return rows
}

//String renders the grid with display glyphs
func (g Grid) String() string {
	return RenderGrid(g.Cells)
}

//MarshalYAML stores the grid as a list of O/X rows
func (g Grid) MarshalYAML() (interface{}, error) {
	return g.Rows(), nil
}

//UnmarshalYAML reads a list of O/X rows, the width is taken from the first row
func (g *Grid) UnmarshalYAML(node *yaml.Node) error {
	var rows []string
	if err := node.Decode(&rows); err != nil {
		return err
	}
	if len(rows) == 0 {
		return invalidArgument("unmarshal grid", "no rows")
	}
	parsed, err := GridFromRows(len(rows), utf8.RuneCountInString(rows[0]), rows)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

//walk walks the entire grid and calls the cb function for each cell
func (g Grid) walk(cb func(x int, y int, c Cell)) {
	for y := range g.Cells {
		for x := range g.Cells[y] {
			cb(x, y, g.Cells[y][x])
		}
	}
}

//createGrid allocates the rows over one backing slice
func createGrid(height int, width int) Grid {
	g := Grid{Width: width, Height: height, Cells: make([][]Cell, height)}
	b := make([]Cell, width*height)
	for i := range g.Cells {
		start := width * i
		g.Cells[i] = b[start : start+width : start+width]
	}
	return g
}
