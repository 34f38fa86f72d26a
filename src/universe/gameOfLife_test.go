package universe

import (
	"errors"
	"math"
	"testing"
)

func mustGame(t testing.TB, height int, width int) *GameOfLife {
	t.Helper()
	g, err := NewGameOfLife(height, width)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func mustGrid(t testing.TB, rows ...string) Grid {
	t.Helper()
	g, err := GridFromRows(len(rows), len(rows[0]), rows)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func assertBoard(t *testing.T, g *GameOfLife, rows ...string) {
	t.Helper()
	want := mustGrid(t, rows...)
	if got := g.Grid(); !got.Equal(want) {
		t.Fatalf("board:\n%v\nwant:\n%v", got.Rows(), want.Rows())
	}
}

func TestNewGameOfLife(t *testing.T) {
	g := mustGame(t, 4, 6)
	if g.Height() != 4 || g.Width() != 6 || g.Seeded() {
		t.Fatalf("got %vx%v seeded=%v", g.Height(), g.Width(), g.Seeded())
	}
	if g.LiveCells() != 0 {
		t.Fatal("new game has alive cells")
	}
	tests := [][2]int{
		{0, 5},
		{5, 0},
		{-1, -1},
		//height*width overflows int
		{2, math.MaxInt/2 + 1},
		{math.MaxInt/2 + 1, 2},
		{math.MaxInt, math.MaxInt},
		//fits in int but is above the cell limit
		{MaxCells/2 + 1, 2},
	}
	for _, d := range tests {
		if _, err := NewGameOfLife(d[0], d[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("NewGameOfLife(%v, %v) error = %v", d[0], d[1], err)
		}
	}
}

func TestInsertTemplate(t *testing.T) {
	g := mustGame(t, 4, 5)
	tmpl := mustTemplate(t, "corner", "OO", "OX")

	if err := g.InsertTemplate(tmpl, 3, 2); err != nil {
		t.Fatal(err)
	}
	if !g.Seeded() {
		t.Fatal("game is not seeded")
	}
	assertBoard(t, g,
		"XXXXX",
		"XXXXX",
		"XXXOO",
		"XXXOX",
	)

	//stamping is not additive
	if err := g.InsertTemplate(tmpl, 0, 0); err != nil {
		t.Fatal(err)
	}
	assertBoard(t, g,
		"OOXXX",
		"OXXXX",
		"XXXXX",
		"XXXXX",
	)
}

func TestInsertTemplateOutOfBounds(t *testing.T) {
	g := mustGame(t, 4, 5)
	tmpl := mustTemplate(t, "t", "OOO", "OOO")
	if err := g.InsertTemplate(tmpl, 1, 1); err != nil {
		t.Fatal(err)
	}
	before := g.Grid()

	tests := [][2]int{
		{-1, 0},
		{0, -1},
		{5 - 3 + 1, 0}, //one column past the last valid x
		{0, 4 - 2 + 1}, //one row past the last valid y
		{5, 4},
	}
	for _, p := range tests {
		err := g.InsertTemplate(tmpl, p[0], p[1])
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("InsertTemplate at %v error = %v, want invalid argument", p, err)
		}
	}
	if !g.Grid().Equal(before) {
		t.Fatal("failed insert changed the board")
	}

	//the last valid origins
	if err := g.InsertTemplate(tmpl, 5-3, 0); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertTemplate(tmpl, 0, 4-2); err != nil {
		t.Fatal(err)
	}
	if err := g.InsertTemplate(nil, 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("nil template error = %v", err)
	}
}

func TestCellsIsCopy(t *testing.T) {
	g := mustGame(t, 2, 2)
	g.Cells()[0][0] = Alive
	if g.LiveCells() != 0 {
		t.Fatal("Cells exposes the board")
	}
}

func TestNextState(t *testing.T) {
	for n := 0; n <= 8; n++ {
		wantAlive := n == 2 || n == 3
		if got := NextState(Alive, n); got != Cell(wantAlive) {
			t.Errorf("alive with %v neighbours -> %v", n, got)
		}
		if got := NextState(Dead, n); got != Cell(n == 3) {
			t.Errorf("dead with %v neighbours -> %v", n, got)
		}
	}
}

func TestBlockIsStable(t *testing.T) {
	g := mustGame(t, 4, 4)
	if err := g.InsertTemplate(mustTemplate(t, "block", "OO", "OO"), 1, 1); err != nil {
		t.Fatal(err)
	}
	before := g.Grid()
	hasLive, changed := g.TakeTurn()
	if !hasLive || changed {
		t.Fatalf("hasLive=%v changed=%v", hasLive, changed)
	}
	if !g.Grid().Equal(before) {
		t.Fatalf("block changed: %v", g.Grid().Rows())
	}
}

func TestBlinkerOscillation(t *testing.T) {
	g := mustGame(t, 5, 5)
	if err := g.InsertTemplate(mustTemplate(t, "blinker", "XOOOX"), 0, 2); err != nil {
		t.Fatal(err)
	}

	g.TakeTurn()
	assertBoard(t, g,
		"XXXXX",
		"XXOXX",
		"XXOXX",
		"XXOXX",
		"XXXXX",
	)

	g.TakeTurn()
	assertBoard(t, g,
		"XXXXX",
		"XXXXX",
		"XOOOX",
		"XXXXX",
		"XXXXX",
	)
}

func TestGlider(t *testing.T) {
	glider := mustTemplate(t, "glider", "OXO", "XOO", "XOX")
	g := mustGame(t, 8, 8)
	if err := g.InsertTemplate(glider, 1, 1); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 4; i++ {
		g.TakeTurn()
	}

	want := mustGame(t, 8, 8)
	if err := want.InsertTemplate(glider, 2, 2); err != nil {
		t.Fatal(err)
	}
	if !g.Grid().Equal(want.Grid()) {
		t.Fatalf("glider after 4 turns:\n%v\nwant:\n%v", g.Grid().Rows(), want.Grid().Rows())
	}
}

func TestEdgesDoNotWrap(t *testing.T) {
	g := mustGame(t, 3, 3)
	if err := g.InsertTemplate(mustTemplate(t, "full", "OOO", "OOO", "OOO"), 0, 0); err != nil {
		t.Fatal(err)
	}
	for _, p := range [][2]int{{0, 0}, {2, 0}, {0, 2}, {2, 2}} {
		if n := g.aliveNeighbours(p[0], p[1]); n != 3 {
			t.Errorf("corner %v has %v neighbours, want 3", p, n)
		}
	}
	if n := g.aliveNeighbours(1, 0); n != 5 {
		t.Errorf("edge has %v neighbours, want 5", n)
	}
	if n := g.aliveNeighbours(1, 1); n != 8 {
		t.Errorf("center has %v neighbours, want 8", n)
	}

	//with wrapping (0,0) would see the three other corners and be born
	g = mustGame(t, 4, 4)
	if err := g.InsertTemplate(mustTemplate(t, "corners", "XXXO", "XXXX", "XXXX", "OXXO"), 0, 0); err != nil {
		t.Fatal(err)
	}
	g.TakeTurn()
	assertBoard(t, g, "XXXX", "XXXX", "XXXX", "XXXX")
}

func TestEmptyBoardStaysEmpty(t *testing.T) {
	g := mustGame(t, 3, 4)
	hasLive, changed := g.TakeTurn()
	if hasLive || changed {
		t.Fatalf("hasLive=%v changed=%v", hasLive, changed)
	}
}

func TestTakeTurnReplacesGrid(t *testing.T) {
	g := mustGame(t, 5, 5)
	if err := g.InsertTemplate(mustTemplate(t, "blinker", "OOO"), 1, 2); err != nil {
		t.Fatal(err)
	}
	old := g.grid.Cells
	g.TakeTurn()
	if &old[0][0] == &g.grid.Cells[0][0] {
		t.Fatal("turn reused the old grid")
	}
	if !old[2][1] || old[1][2] {
		t.Fatal("turn patched the old grid")
	}
}

func TestStateRestore(t *testing.T) {
	g := mustGame(t, 5, 5)
	if err := g.InsertTemplate(mustTemplate(t, "blinker", "OOO"), 1, 2); err != nil {
		t.Fatal(err)
	}
	g.TakeTurn()
	st := g.State()
	if st.Height != 5 || st.Width != 5 {
		t.Fatalf("state %vx%v", st.Height, st.Width)
	}

	r, err := Restore(st)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Seeded() || !r.Grid().Equal(g.Grid()) {
		t.Fatal("restored game differs")
	}
	r.TakeTurn()
	g.TakeTurn()
	if !r.Grid().Equal(g.Grid()) {
		t.Fatal("restored game evolves differently")
	}

	st.Width = 4
	if _, err := Restore(st); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("mismatched state error = %v", err)
	}
	if _, err := Restore(State{Height: math.MaxInt, Width: math.MaxInt}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("oversized restore error = %v", err)
	}
	if _, err := Restore(State{}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("empty state error = %v", err)
	}
}
