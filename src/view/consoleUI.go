package view

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"golife/src/universe"
)

//ConsoleUI shows the running game full screen, any key stops the game
type ConsoleUI struct {
	r          *universe.Runner
	g          *gocui.Gui
	stop       func()
	liveFiller string
	deadFiller string

	//closed is set once the main loop is over, the updates are dropped after that
	closed bool
	mu     sync.Mutex
}

var (
	runningStateDescr = map[universe.RunningState]string{
		universe.RunningStateManual:   aurora.Colorize("waiting", aurora.BlueFg).String(),
		universe.RunningStateStep:     "do the step",
		universe.RunningStateRun:      aurora.Colorize("running", aurora.CyanFg).String(),
		universe.RunningStateFinished: aurora.Colorize("finished", aurora.RedFg).String(),
	}

	stopKeys = []gocui.Key{
		gocui.KeyEnter,
		gocui.KeySpace,
		gocui.KeyEsc,
		gocui.KeyTab,
		gocui.KeyBackspace,
		gocui.KeyBackspace2,
		gocui.KeyArrowUp,
		gocui.KeyArrowDown,
		gocui.KeyArrowLeft,
		gocui.KeyArrowRight,
		gocui.KeyCtrlC,
	}
)

//NewConsoleUI creates the terminal UI, stop is called when a key is pressed
func NewConsoleUI(stop func()) (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		stop:       stop,
		liveFiller: aurora.Green(string(universe.AliveGlyph)).BgBrightGreen().String(),
		deadFiller: string(universe.DeadGlyph),
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(); err != nil {
		t.g.Close()
		return nil, err
	}
	return &t, nil
}

func (t *ConsoleUI) initKeyBindings() error {
	h := func(_ *gocui.Gui, _ *gocui.View) error {
		return t.cmdStop()
	}
	for _, k := range stopKeys {
		if err := t.g.SetKeybinding("", k, gocui.ModNone, h); err != nil {
			return err
		}
	}
	for ch := '!'; ch <= '~'; ch++ {
		if err := t.g.SetKeybinding("", ch, gocui.ModNone, h); err != nil {
			return err
		}
	}
	return nil
}

func (t *ConsoleUI) Register(r *universe.Runner) {
	t.r = r
}

//Start runs the UI main loop until a key is pressed or Quit is called
func (t *ConsoleUI) Start() error {
	err := t.g.MainLoop()
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.g.Close()
	if err != nil && err != gocui.ErrQuit {
		return err
	}
	return nil
}

//Quit stops the UI main loop, it does nothing once the loop is over
func (t *ConsoleUI) Quit() {
	t.update(func(g *gocui.Gui) error {
		return gocui.ErrQuit
	})
}

func (t *ConsoleUI) Refresh() {
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return
	}
	board := t.r.Board()
	st := t.r.Status()
	t.update(func(g *gocui.Gui) error {
		t.renderField(g, board, st)
		t.renderStatus(g, st)
		return nil
	})
}

//update queues f to the main loop, nobody reads the queue after the loop is over
func (t *ConsoleUI) update(f func(*gocui.Gui) error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.g.Update(f)
}

func (t *ConsoleUI) renderField(g *gocui.Gui, board string, st universe.Status) {
	v, e := g.View("board")
	if e != nil {
		return
	}
	v.Clear()

	maxW, maxH := v.Size()
	crop := st.Width > maxW || st.Height > maxH

	var b bytes.Buffer
	for i, l := range strings.Split(strings.TrimSuffix(board, "\n"), "\n") {
		//discard the data outside the view area
		if i >= maxH {
			break
		}
		//line feed char
		if i != 0 {
			b.WriteByte(10)
		}
		if crop && i == (maxH-1) {
			b.WriteString(aurora.Red("The board is larger than the viewing area").BgBlack().String())
			break
		}
		j := 0
		for _, c := range l {
			if j >= maxW {
				break
			}
			if c == universe.AliveGlyph {
				b.WriteString(t.liveFiller)
			} else {
				b.WriteString(t.deadFiller)
			}
			j++
		}
	}
	_, _ = fmt.Fprint(v, b.String())
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui, s universe.Status) {
	if v, e := g.View("status"); e == nil {
		v.Clear()
		_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", s.Height, s.Width))
		_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
		_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
		_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
		_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", runningStateDescr[s.RunningMode]))
	}
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	leftColumnWidth := 28
	minWindowHeight := 10

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil && err != gocui.ErrUnknownView {
			return err
		}
		_ = g.DeleteView("status")
		_ = g.DeleteView("board")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "This is \"The Game of Life\""); err != nil && err != gocui.ErrUnknownView {
		return err
	}

	if v, err := g.SetView("status", 0, 3, leftColumnWidth, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
		if t.r != nil {
			t.renderStatus(g, t.r.Status())
		}
	}

	if v, err := g.SetView("board", leftColumnWidth+1, 3, maxX-1, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Board"
		v.Frame = true
	}
	if t.r != nil {
		t.renderField(g, t.r.Board(), t.r.Status())
	}

	if v, err := g.SetView("help", -1, maxY-3, maxX, maxY-1); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		_, _ = fmt.Fprintln(v, aurora.Green("Press any key to stop the game, the state will be saved").String())
	}
	return nil
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2)+strings.Repeat(" ", pad)+text)
	}
	return
}

func (t *ConsoleUI) cmdStop() error {
	t.stop()
	return gocui.ErrQuit
}
