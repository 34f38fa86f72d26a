package view

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"golife/src/universe"
)

const clearScreen = "\x1b[H\x1b[2J"

//ConsoleOut prints the board to a plain terminal after every turn
type ConsoleOut struct {
	r          *universe.Runner
	w          io.Writer
	au         aurora.Aurora
	hint       string
	liveFiller string
	clear      bool
}

//NewConsoleOut creates the viewer writing to w
//colors enables the ANSI colors and the screen clearing between refreshes
func NewConsoleOut(w io.Writer, colors bool, hint string) *ConsoleOut {
	au := aurora.NewAurora(colors)
	return &ConsoleOut{
		w:          w,
		au:         au,
		hint:       hint,
		liveFiller: au.BrightGreen(string(universe.AliveGlyph)).String(),
		clear:      colors,
	}
}

func (c *ConsoleOut) Register(r *universe.Runner) {
	c.r = r
}

func (c *ConsoleOut) Refresh() {
	st := c.r.Status()
	b := bufio.NewWriter(c.w)
	if c.clear {
		b.WriteString(clearScreen)
	}
	b.WriteString(strings.ReplaceAll(c.r.Board(), string(universe.AliveGlyph), c.liveFiller))
	fmt.Fprintln(b, c.renderProp("Step", "%v", st.IterationNum)+c.renderProp("Live cells", "%v", st.LiveCells))
	if c.hint != "" {
		fmt.Fprintln(b, c.hint)
	}
	_ = b.Flush()
}

func (c *ConsoleOut) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+c.au.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}
