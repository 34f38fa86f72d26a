package universe

//Universe is the simulation board contract
type Universe interface {
	Height() int
	Width() int
	Cells() [][]Cell
	InsertTemplate(tmpl *Template, x int, y int) error
	TakeTurn() (hasLiveCells bool, changed bool)
}

//StateSaver persists the game state when a run stops
type StateSaver interface {
	SaveState(st State) error
}

//Viewer is the interface to any Viewer - the object who can display the running game
type Viewer interface {
	Register(r *Runner)
	Refresh()
}
