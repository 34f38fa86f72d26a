package universe

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"
)

type memSaver struct {
	sync.Mutex
	saves []State
	err   error
}

func (m *memSaver) SaveState(st State) error {
	m.Lock()
	defer m.Unlock()
	m.saves = append(m.saves, st)
	return m.err
}

func (m *memSaver) saved() []State {
	m.Lock()
	defer m.Unlock()
	return append([]State(nil), m.saves...)
}

//signalViewer reports every refresh to the refreshed channel
type signalViewer struct {
	r         *Runner
	refreshed chan Status
	boards    []string
}

func (v *signalViewer) Register(r *Runner) {
	v.r = r
}

func (v *signalViewer) Refresh() {
	v.boards = append(v.boards, v.r.Board())
	select {
	case v.refreshed <- v.r.Status():
	default:
	}
}

func quietOptions() *Options {
	o := DefaultOptions
	o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return &o
}

func blinkerGame(t testing.TB) *GameOfLife {
	g := mustGame(t, 5, 5)
	if err := g.InsertTemplate(mustTemplate(t, "blinker", "XOOOX"), 0, 2); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestRunnerCancelDuringWait(t *testing.T) {
	g := blinkerGame(t)
	before := g.Grid()
	saver := &memSaver{}
	o := quietOptions()
	o.Interval = time.Hour
	r := NewRunner(g, saver, o, nil)
	v := &signalViewer{refreshed: make(chan Status, 1)}
	r.RegisterViewer(v)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- r.Run(ctx)
	}()

	<-v.refreshed
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run was not cancelled")
	}

	if st := r.Status(); st.IterationNum != 0 || st.RunningMode != RunningStateFinished {
		t.Fatalf("status %+v", st)
	}
	saves := saver.saved()
	if len(saves) != 1 {
		t.Fatalf("got %v saves, want 1", len(saves))
	}
	if !saves[0].Cells.Equal(before) || saves[0].Height != 5 || saves[0].Width != 5 {
		t.Fatalf("saved %v", saves[0].Cells.Rows())
	}
}

func TestRunnerCancelledBeforeStart(t *testing.T) {
	saver := &memSaver{}
	r := NewRunner(blinkerGame(t), saver, quietOptions(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if r.Status().IterationNum != 0 {
		t.Fatal("turn taken after cancellation")
	}
	if len(saver.saved()) != 1 {
		t.Fatalf("got %v saves", len(saver.saved()))
	}
}

func TestRunnerMaxSteps(t *testing.T) {
	saver := &memSaver{}
	o := quietOptions()
	o.Interval = 0
	o.MaxSteps = 3
	r := NewRunner(blinkerGame(t), saver, o, nil)
	v := &signalViewer{refreshed: make(chan Status, 1)}
	r.RegisterViewer(v)

	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	st := r.Status()
	if st.IterationNum != 3 || st.LiveCells != 3 {
		t.Fatalf("status %+v", st)
	}
	//the first render and one after each turn
	if len(v.boards) != 4 {
		t.Fatalf("got %v renders, want 4", len(v.boards))
	}
	if v.boards[0] != v.boards[2] || v.boards[1] != v.boards[3] || v.boards[0] == v.boards[1] {
		t.Fatalf("unexpected boards %q", v.boards)
	}

	saves := saver.saved()
	if len(saves) != 1 {
		t.Fatalf("got %v saves", len(saves))
	}
	want := mustGrid(t, "XXXXX", "XXOXX", "XXOXX", "XXOXX", "XXXXX")
	if !saves[0].Cells.Equal(want) {
		t.Fatalf("saved %v", saves[0].Cells.Rows())
	}
}

func TestRunnerSaveError(t *testing.T) {
	errDisk := errors.New("disk full")
	saver := &memSaver{err: errDisk}
	o := quietOptions()
	o.Interval = 0
	o.MaxSteps = 1
	r := NewRunner(blinkerGame(t), saver, o, nil)
	err := r.Run(context.Background())
	if !errors.Is(err, errDisk) {
		t.Fatalf("error = %v, want %v", err, errDisk)
	}
	if len(saver.saved()) != 1 {
		t.Fatal("save was retried")
	}
}

func TestRunnerNoSaver(t *testing.T) {
	r := NewRunner(blinkerGame(t), nil, quietOptions(), nil)
	if err := r.Run(context.Background()); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("error = %v", err)
	}
}

func TestRunnerStateCh(t *testing.T) {
	o := quietOptions()
	o.Interval = 0
	o.MaxSteps = 2
	stateCh := make(chan Status, 16)
	r := NewRunner(blinkerGame(t), &memSaver{}, o, stateCh)
	if err := r.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	close(stateCh)

	var modes []RunningState
	for st := range stateCh {
		modes = append(modes, st.RunningMode)
	}
	want := []RunningState{
		RunningStateRun,
		RunningStateStep, RunningStateRun,
		RunningStateStep, RunningStateRun,
		RunningStateFinished,
	}
	if len(modes) != len(want) {
		t.Fatalf("got modes %v, want %v", modes, want)
	}
	for i := range want {
		if modes[i] != want[i] {
			t.Fatalf("got modes %v, want %v", modes, want)
		}
	}
}
