package universe

//State is the saved game: the board dimensions and cells
//in YAML the cells are stored as O/X rows, the same encoding the templates use
type State struct {
	Height int  `yaml:"height"`
	Width  int  `yaml:"width"`
	Cells  Grid `yaml:"cells"`
}

//Restore rebuilds the game from a saved state, the restored game counts as seeded
func Restore(st State) (*GameOfLife, error) {
	const op = "restore game"
	if err := checkDimensions(op, st.Height, st.Width); err != nil {
		return nil, err
	}
	if st.Cells.Height != st.Height || st.Cells.Width != st.Width {
		return nil, invalidArgument(op, "cells are %vx%v, want %vx%v", st.Cells.Height, st.Cells.Width, st.Height, st.Width)
	}
	grid, err := GridFromCells(st.Height, st.Width, st.Cells.Cells)
	if err != nil {
		return nil, err
	}
	return &GameOfLife{grid: grid, seeded: true}, nil
}
