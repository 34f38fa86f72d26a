package universe

import (
	"log/slog"
	"time"
)

//Options represents the Runner's configurable options
type Options struct {
	Interval time.Duration //wait between the turns
	MaxSteps int           //stop after MaxSteps turns, 0 is unlimited
	Logger   *slog.Logger
}

//Status represents the status of the running game at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	Height        int
	Width         int
	LiveCells     int
	IterationTime time.Duration
}

//The game running status at the concrete moment
type RunningState int

//default options
const (
	DefInterval = time.Second
	DefMaxSteps = 0
)

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

var DefaultOptions = Options{
	Interval: DefInterval,
	MaxSteps: DefMaxSteps,
}

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "waiting"
	case RunningStateStep:
		return "do the step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}
