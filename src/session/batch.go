package session

import (
	"fmt"
	"strconv"
	"strings"

	"golife/src/universe"
)

//Diagnostic is the one line message reported for a rejected request
type Diagnostic string

func (d Diagnostic) Error() string {
	return string(d)
}

const (
	DiagArgCount     Diagnostic = "Incorrect number of command line arguments."
	DiagHeight       Diagnostic = "Game height invalid."
	DiagWidth        Diagnostic = "Game width invalid."
	DiagTemplate     Diagnostic = "Template not found."
	DiagTemplateX    Diagnostic = "Template x coordinate invalid."
	DiagTemplateY    Diagnostic = "Template y coordinate invalid."
	DiagInvalidInput Diagnostic = "Invalid input."
)

//BatchArgs is the number of positional arguments of the batch run:
//<game-height> <game-width> <template-name> <template-x> <template-y>
const BatchArgs = 5

//TemplateLoader loads the template by name, ok is false when there is no such template
type TemplateLoader interface {
	Load(name string) (tmpl *universe.Template, ok bool, err error)
}

//Batch is the validated batch run request
type Batch struct {
	Height   int
	Width    int
	Template *universe.Template
	X        int
	Y        int
}

//ParseBatch validates the positional arguments in order and stops at the first invalid one
//the Diagnostic errors describe the bad argument, other errors come from the template storage
func ParseBatch(args []string, templates TemplateLoader) (*Batch, error) {
	if len(args) != BatchArgs {
		return nil, DiagArgCount
	}
	b := Batch{}
	var ok bool

	if b.Height, ok = parsePositive(args[0]); !ok {
		return nil, DiagHeight
	}
	if b.Width, ok = parsePositive(args[1]); !ok || b.Width > universe.MaxCells/b.Height {
		return nil, DiagWidth
	}

	tmpl, ok, err := templates.Load(args[2])
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, DiagTemplate
	}
	b.Template = tmpl

	if b.X, ok = parseInRange(args[3], 0, b.Width-tmpl.Width()); !ok {
		return nil, DiagTemplateX
	}
	if b.Y, ok = parseInRange(args[4], 0, b.Height-tmpl.Height()); !ok {
		return nil, DiagTemplateY
	}
	return &b, nil
}

//NewGame creates the game seeded with the batch template
func (b *Batch) NewGame() (*universe.GameOfLife, error) {
	g, err := universe.NewGameOfLife(b.Height, b.Width)
	if err != nil {
		return nil, err
	}
	if err := g.InsertTemplate(b.Template, b.X, b.Y); err != nil {
		return nil, err
	}
	return g, nil
}

func (b *Batch) String() string {
	return fmt.Sprintf("%vx%v game, template %q at x=%v, y=%v", b.Height, b.Width, b.Template.Name(), b.X, b.Y)
}

func parsePositive(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func parseInRange(s string, min int, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}
