package view

import (
	"context"
	"testing"

	"golife/src/universe"
)

func TestConsoleUIClosed(t *testing.T) {
	g, err := universe.NewGameOfLife(3, 3)
	if err != nil {
		t.Fatal(err)
	}
	//the main loop is over, the gocui.Gui is released and must not be touched
	ui := &ConsoleUI{closed: true}
	r := universe.NewRunner(g, nopSaver{}, &universe.Options{MaxSteps: 2}, nil)
	r.RegisterViewer(ui)

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	ui.Refresh()
	ui.Quit()
	if st := r.Status(); st.IterationNum != 2 {
		t.Fatalf("runner stopped at step %v", st.IterationNum)
	}
}
