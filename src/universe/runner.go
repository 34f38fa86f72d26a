package universe

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

//Runner drives the game: render, wait the interval, take the turn
//the wait is the only point where the run can be cancelled, the state is saved once when the run stops
type Runner struct {
	options Options
	game    *GameOfLife
	saver   StateSaver
	log     *slog.Logger
	stateCh chan Status
	views   []Viewer
	state   struct {
		Status
		board string
		sync.Mutex
	}
}

//NewRunner creates the Runner for the game
//stateCh is optional, when set it receives every running state change and must be drained by the caller
func NewRunner(game *GameOfLife, saver StateSaver, o *Options, stateCh chan Status) *Runner {
	if o == nil {
		o = &DefaultOptions
	}
	r := Runner{
		options: *o,
		game:    game,
		saver:   saver,
		stateCh: stateCh,
		log:     o.Logger,
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	r.state.Height = game.Height()
	r.state.Width = game.Width()
	r.state.LiveCells = game.LiveCells()
	r.state.board = game.String()
	return &r
}

//RegisterViewer registers the viewer - the runner will call the viewer when the board is changed
func (r *Runner) RegisterViewer(v Viewer) {
	r.views = append(r.views, v)
	v.Register(r)
}

//Status returns current status represented by Status struct
func (r *Runner) Status() Status {
	r.state.Lock()
	defer r.state.Unlock()
	return r.state.Status
}

//Board returns the board rendered after the last completed turn
func (r *Runner) Board() string {
	r.state.Lock()
	defer r.state.Unlock()
	return r.state.board
}

//Options returns the runner configuration
func (r *Runner) Options() Options {
	return r.options
}

//Run runs the game until ctx is cancelled or MaxSteps turns are done, then saves the game state
//a save failure is returned, the game is never stopped silently without its state saved
func (r *Runner) Run(ctx context.Context) error {
	if r.saver == nil {
		return invalidState("run game", "no state saver")
	}
	r.log.Info("game started",
		"height", r.game.Height(),
		"width", r.game.Width(),
		"interval", r.options.Interval,
		"maxSteps", r.options.MaxSteps,
	)
	r.switchRunningState(RunningStateRun)
	r.loop(ctx)

	st := r.Status()
	if err := r.saver.SaveState(r.game.State()); err != nil {
		r.log.Error("save game state", "error", err, "iteration", st.IterationNum)
		r.switchRunningState(RunningStateFinished)
		return fmt.Errorf("save game state: %w", err)
	}
	r.log.Info("game stopped, state saved", "iteration", st.IterationNum, "liveCells", st.LiveCells)
	r.switchRunningState(RunningStateFinished)
	return nil
}

//loop is the main cycle: render, wait, step
func (r *Runner) loop(ctx context.Context) {
	for {
		r.refreshView()
		if ctx.Err() != nil {
			return
		}
		if r.options.MaxSteps > 0 && r.Status().IterationNum >= r.options.MaxSteps {
			r.log.Debug("max steps reached", "maxSteps", r.options.MaxSteps)
			return
		}
		if !r.wait(ctx) {
			return
		}
		r.step()
	}
}

//wait waits the interval, returns false if ctx was cancelled during the wait
func (r *Runner) wait(ctx context.Context) bool {
	if r.options.Interval <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(r.options.Interval)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

//step does one turn for the entire board, it is never interrupted
func (r *Runner) step() {
	r.switchRunningState(RunningStateStep)
	start := time.Now()
	hasLiveCells, changed := r.game.TakeTurn()
	board := r.game.String()
	liveCells := r.game.LiveCells()

	r.state.Lock()
	r.state.IterationNum++
	r.state.LiveCells = liveCells
	r.state.IterationTime = time.Since(start)
	r.state.board = board
	iteration := r.state.IterationNum
	r.state.Unlock()

	r.log.Debug("turn taken", "iteration", iteration, "liveCells", liveCells, "hasLiveCells", hasLiveCells, "changed", changed)
	r.switchRunningState(RunningStateRun)
}

//switchRunningState switch the running state to RunningState
//also writes the new state to the stateCh to signal upper control software
func (r *Runner) switchRunningState(to RunningState) {
	r.state.Lock()
	r.state.RunningMode = to
	st := r.state.Status
	r.state.Unlock()
	if r.stateCh != nil {
		r.stateCh <- st
	}
}

//refreshView calls Refresh event for all registered views
func (r *Runner) refreshView() {
	for _, v := range r.views {
		v.Refresh()
	}
}
