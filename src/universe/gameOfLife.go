package universe

//GameOfLife is the bounded Conway's Game of Life board
//it has one writer, the cells are replaced by a new grid on each turn and never patched in place
type GameOfLife struct {
	grid   Grid
	seeded bool
}

var _ Universe = (*GameOfLife)(nil)

//NewGameOfLife creates the unseeded game with all cells dead
func NewGameOfLife(height int, width int) (*GameOfLife, error) {
	if err := checkDimensions("new game", height, width); err != nil {
		return nil, err
	}
	g := GameOfLife{}
	g.reset(height, width)
	return &g, nil
}

func (g *GameOfLife) Height() int {
	return g.grid.Height
}

func (g *GameOfLife) Width() int {
	return g.grid.Width
}

//Seeded reports whether a template was inserted or the game was restored from a saved state
func (g *GameOfLife) Seeded() bool {
	return g.seeded
}

//Cells returns a copy of the current board
func (g *GameOfLife) Cells() [][]Cell {
	return g.grid.Clone().Cells
}

//Grid returns a copy of the current board
func (g *GameOfLife) Grid() Grid {
	return g.grid.Clone()
}

//LiveCells returns the count of alive cells on the board
func (g *GameOfLife) LiveCells() int {
	return g.grid.LiveCells()
}

//InsertTemplate clears the board and places the template with its top-left corner at column x, row y
//the template must fit on the board entirely, the previous content is always discarded
func (g *GameOfLife) InsertTemplate(tmpl *Template, x int, y int) error {
	const op = "insert template"
	if tmpl == nil {
		return invalidArgument(op, "no template")
	}
	if x < 0 || y < 0 || x+tmpl.Width() > g.Width() || y+tmpl.Height() > g.Height() {
		return invalidArgument(op, "template %q (%vx%v) at x=%v, y=%v does not fit the %vx%v board",
			tmpl.Name(), tmpl.Height(), tmpl.Width(), x, y, g.Height(), g.Width())
	}
	g.reset(g.Height(), g.Width())
	for ty, row := range tmpl.cells.Cells {
		copy(g.grid.Cells[y+ty][x:x+len(row)], row)
	}
	g.seeded = true
	return nil
}

//TakeTurn calculates the next generation into the new grid and replaces the board with it
func (g *GameOfLife) TakeTurn() (hasLiveCells bool, changed bool) {
	next := createGrid(g.Height(), g.Width())
	g.grid.walk(func(x int, y int, c Cell) {
		n := NextState(c, g.aliveNeighbours(x, y))
		hasLiveCells = hasLiveCells || bool(n)
		changed = changed || n != c
		next.Cells[y][x] = n
	})
	g.grid = next
	return
}

//State returns the snapshot for the persistence
func (g *GameOfLife) State() State {
	return State{Height: g.Height(), Width: g.Width(), Cells: g.grid.Clone()}
}

//String renders the board with display glyphs
func (g *GameOfLife) String() string {
	return g.grid.String()
}

//NextState applies the Life rules to a cell with n alive neighbours
func NextState(c Cell, n int) Cell {
	if c {
		return Cell(n == 2 || n == 3)
	}
	return Cell(n == 3)
}

//aliveNeighbours counts alive cells around x, y
//coordinates outside the board are skipped, there is no wrapping
func (g *GameOfLife) aliveNeighbours(x int, y int) int {
	liveNeighbours := 0
	for j := -1; j < 2; j++ {
		ny := y + j
		if ny < 0 || ny >= g.grid.Height {
			continue
		}
		for i := -1; i < 2; i++ {
			nx := x + i
			//skip my position
			if nx < 0 || nx >= g.grid.Width || (i == 0 && j == 0) {
				continue
			}
			if g.grid.Cells[ny][nx] {
				liveNeighbours++
			}
		}
	}
	return liveNeighbours
}

//reset replaces the board with the all-dead grid
func (g *GameOfLife) reset(height int, width int) {
	g.grid = createGrid(height, width)
}
