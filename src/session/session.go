// Package session is the interactive text menu of the game: templates authoring, new and resumed games.
package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golife/src/universe"
)

//TemplateStore is the templates storage used by the menu
type TemplateStore interface {
	TemplateLoader
	Names() ([]string, error)
	Save(tmpl *universe.Template) error
}

//GameLoader loads the saved game, ok is false when no game was saved
type GameLoader interface {
	LoadGame() (g *universe.GameOfLife, ok bool, err error)
}

//PlayFunc runs the game until ctx is cancelled and saves its state
type PlayFunc func(ctx context.Context, g *universe.GameOfLife) error

//Session keeps the state of one interactive menu session
type Session struct {
	in        *bufio.Scanner
	out       io.Writer
	templates TemplateStore
	saves     GameLoader
	play      PlayFunc
	log       *slog.Logger
}

func New(in io.Reader, out io.Writer, templates TemplateStore, saves GameLoader, play PlayFunc, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		in:        bufio.NewScanner(in),
		out:       out,
		templates: templates,
		saves:     saves,
		play:      play,
		log:       log,
	}
}

//Run shows the main menu until the exit option is chosen or the input ends
//only a failure to save the played game is returned, the other failures are reported and the menu goes on
func (s *Session) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		s.println()
		s.println("--- Game of Life ---")
		s.println("1. Create Template")
		s.println("2. Play Game")
		s.println("3. Exit")
		s.println()

		option, err := s.readOption("Enter an option: ", 3)
		if err == io.EOF {
			break
		}
		if err != nil {
			s.println(err)
			continue
		}

		switch option {
		case 1:
			err = s.createTemplate()
		case 2:
			err = s.playGame(ctx)
		case 3:
			s.println("Goodbye.")
			return nil
		}

		var d Diagnostic
		switch {
		case err == nil:
		case err == io.EOF:
			s.println("Goodbye.")
			return nil
		case errors.As(err, &d):
			s.println(d)
		case errors.Is(err, errGameNotSaved):
			return err
		default:
			s.log.Error("menu action failed", "option", option, "error", err)
			s.println(err)
		}
	}
	s.println("Goodbye.")
	return nil
}

var errGameNotSaved = errors.New("game not saved")

func (s *Session) createTemplate() error {
	s.println("--- Create Template ---")
	s.println()

	name, err := s.readLine("Enter template name: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return DiagInvalidInput
	}

	height, err := s.readNumber("Enter height: ", 1, -1)
	if err != nil {
		return err
	}
	width, err := s.readNumber("Enter width: ", 1, -1)
	if err != nil {
		return err
	}
	if width > universe.MaxCells/height {
		return DiagInvalidInput
	}

	s.printf("Enter cells ('%c' is Alive, '%c' is Dead):\n", universe.AliveChar, universe.DeadChar)
	lines := make([]string, height)
	for i := range lines {
		if lines[i], err = s.readLine(""); err != nil {
			return err
		}
		lines[i] = strings.TrimSpace(lines[i])
	}
	s.println()

	cells, err := universe.GridFromRows(height, width, lines)
	if err != nil {
		return DiagInvalidInput
	}
	tmpl, err := universe.NewTemplate(name, height, width, cells.Cells)
	if err != nil {
		return DiagInvalidInput
	}
	if err := s.templates.Save(tmpl); err != nil {
		return err
	}
	s.log.Info("template created", "name", name, "height", height, "width", width)
	s.println("Template created.")
	return nil
}

func (s *Session) playGame(ctx context.Context) error {
	names, err := s.templates.Names()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		s.println("No templates found - create at least one template before playing a game.")
		return nil
	}

	s.println("--- Play Game ---")
	s.println("1. New Game")
	s.println("2. Resume Game")
	s.println()

	option, err := s.readOption("Enter an option: ", 2)
	if err != nil {
		return err
	}
	if option == 1 {
		return s.newGame(ctx, names)
	}
	return s.resumeGame(ctx)
}

func (s *Session) newGame(ctx context.Context, names []string) error {
	s.println("--- New Game ---")
	s.println("Templates:")
	for i, name := range names {
		s.printf("%d. %s\n", i+1, name)
	}
	s.println()

	option, err := s.readOption("Select a template: ", len(names))
	if err != nil {
		return err
	}
	tmpl, ok, err := s.templates.Load(names[option-1])
	if err != nil {
		return err
	}
	if !ok {
		return DiagTemplate
	}

	s.println("Template")
	s.printf("Name  : %s\n", tmpl.Name())
	s.printf("Height: %d\n", tmpl.Height())
	s.printf("Width : %d\n", tmpl.Width())
	s.println(universe.RenderGrid(tmpl.Cells()))

	height, err := s.readNumber(fmt.Sprintf("Enter game height (must be at least %d): ", tmpl.Height()), tmpl.Height(), -1)
	if err != nil {
		return err
	}
	width, err := s.readNumber(fmt.Sprintf("Enter game width (must be at least %d): ", tmpl.Width()), tmpl.Width(), -1)
	if err != nil {
		return err
	}
	if width > universe.MaxCells/height {
		return DiagInvalidInput
	}
	maxX := width - tmpl.Width()
	x, err := s.readNumber(fmt.Sprintf("Enter template x coordinate (cannot be more than %d): ", maxX), 0, maxX)
	if err != nil {
		return err
	}
	maxY := height - tmpl.Height()
	y, err := s.readNumber(fmt.Sprintf("Enter template y coordinate (cannot be more than %d): ", maxY), 0, maxY)
	if err != nil {
		return err
	}

	g, err := universe.NewGameOfLife(height, width)
	if err != nil {
		return DiagInvalidInput
	}
	if err := g.InsertTemplate(tmpl, x, y); err != nil {
		return DiagInvalidInput
	}
	return s.run(ctx, g)
}

func (s *Session) resumeGame(ctx context.Context) error {
	s.println("--- Resume Game ---")
	s.println()

	g, ok, err := s.saves.LoadGame()
	if err != nil {
		return err
	}
	if !ok {
		s.println("No previous game data present.")
		return nil
	}
	return s.run(ctx, g)
}

//run plays the game until a line is entered
func (s *Session) run(parent context.Context, g *universe.GameOfLife) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	entered := make(chan struct{})
	go func() {
		s.in.Scan()
		close(entered)
	}()
	go func() {
		select {
		case <-entered:
			cancel()
		case <-ctx.Done():
		}
	}()

	err := s.play(ctx, g)
	select {
	case <-entered:
	default:
		//the game finished on its own, the reading goroutine still owns the input
		if parent.Err() == nil {
			s.println("Press Enter to continue...")
			<-entered
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errGameNotSaved, err)
	}
	s.println("Game stopped - the state has been saved.")
	return nil
}

func (s *Session) readLine(prompt string) (string, error) {
	if prompt != "" {
		s.printf("%s", prompt)
	}
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := s.in.Text()
	if prompt != "" {
		s.println()
	}
	return line, nil
}

//readNumber reads the number in [min, max], a negative max is unbounded
func (s *Session) readNumber(prompt string, min int, max int) (int, error) {
	input, err := s.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || n < min || (max >= 0 && n > max) {
		return 0, DiagInvalidInput
	}
	return n, nil
}

func (s *Session) readOption(prompt string, options int) (int, error) {
	return s.readNumber(prompt, 1, options)
}

func (s *Session) println(a ...interface{}) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Session) printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}
