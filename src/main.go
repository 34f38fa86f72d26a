package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"

	"golife/src/config"
	"golife/src/logs"
	"golife/src/session"
	"golife/src/storage"
	"golife/src/universe"
	"golife/src/view"
)

const version = "1.0.0"

//EnvOptions are the command line values, the unset ones keep the configuration file values
type EnvOptions struct {
	configPath  string
	templates   string
	save        string
	interval    time.Duration
	maxSteps    int
	log         string
	debug       bool
	journal     bool
	interactive bool
	args        [session.BatchArgs]string
	cmdLine     cmdLine
}

func main() {
	eo := initOptions()
	os.Exit(run(eo))
}

func initOptions() *EnvOptions {
	eo := &EnvOptions{interval: config.DefInterval}
	flaggy.SetName("golife")
	flaggy.SetDescription("Conway's Game of Life. Without arguments the interactive menu is started.")
	flaggy.SetVersion(version)
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.DefaultParser.AdditionalHelpAppend = "\nBatch run: golife <game-height> <game-width> <template-name> <template-x> <template-y>"

	flaggy.String(&eo.configPath, "c", "config", "CUE configuration file")
	flaggy.String(&eo.templates, "t", "templates", "Templates directory (default "+config.DefTemplates+")")
	flaggy.String(&eo.save, "g", "save", "Saved game file (default "+config.DefSave+")")
	flaggy.Duration(&eo.interval, "i", "interval", "Interval between the turns in format the number with the unit suffix, for example 500ms")
	flaggy.Int(&eo.maxSteps, "s", "maxSteps", "Stop the game after maxSteps turns, 0 is unlimited")
	flaggy.String(&eo.log, "l", "log", "Log file, the warnings are written to stderr without it")
	flaggy.Bool(&eo.debug, "d", "debug", "Log the debug messages")
	flaggy.Bool(&eo.journal, "j", "journal", "Log to the systemd journal")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Show the batch run in the full screen terminal UI")

	names := []string{"game-height", "game-width", "template-name", "template-x", "template-y"}
	for i := range eo.args {
		flaggy.AddPositionalValue(&eo.args[i], names[i], i+1, false, "")
	}

	flaggy.Parse()
	eo.cmdLine = scanCmdLine(os.Args[1:])
	return eo
}

//flagNames maps every flag name to its long name, true marks the flags with the value
var flagNames = map[string]struct {
	long  string
	value bool
}{
	"c": {"config", true}, "config": {"config", true},
	"t": {"templates", true}, "templates": {"templates", true},
	"g": {"save", true}, "save": {"save", true},
	"i": {"interval", true}, "interval": {"interval", true},
	"s": {"maxSteps", true}, "maxSteps": {"maxSteps", true},
	"l": {"log", true}, "log": {"log", true},
	"d": {"debug", false}, "debug": {"debug", false},
	"j": {"journal", false}, "journal": {"journal", false},
	"n": {"interactive", false}, "interactive": {"interactive", false},
}

//cmdLine is what flaggy does not tell: which flags were given and how many positional arguments there are
type cmdLine struct {
	set         map[string]bool
	positionals int
}

//scanCmdLine walks the arguments the way flaggy parses them, the arguments after "--" are not positional
func scanCmdLine(args []string) cmdLine {
	c := cmdLine{set: map[string]bool{}}
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			break
		}
		if len(a) < 2 || a[0] != '-' {
			c.positionals++
			continue
		}
		name := strings.TrimLeft(a, "-")
		name, _, hasValue := strings.Cut(name, "=")
		f, ok := flagNames[name]
		if !ok {
			continue
		}
		c.set[f.long] = true
		if f.value && !hasValue {
			i++
		}
	}
	return c
}

//loadConfig merges the configuration file and the command line values
func loadConfig(eo *EnvOptions) (config.Config, error) {
	cfg, err := config.Load(eo.configPath)
	if err != nil {
		return cfg, err
	}
	if eo.templates != "" {
		cfg.Templates = eo.templates
	}
	if eo.save != "" {
		cfg.Save = eo.save
	}
	if eo.cmdLine.set["interval"] {
		cfg.Interval = eo.interval
	}
	if eo.cmdLine.set["maxSteps"] {
		cfg.MaxSteps = eo.maxSteps
	}
	if eo.log != "" {
		cfg.Log = eo.log
	}
	cfg.Debug = cfg.Debug || eo.debug
	cfg.Interactive = cfg.Interactive || eo.interactive
	return cfg, nil
}

//positionalArgs returns the positional arguments, an explicitly empty argument is counted too
func positionalArgs(eo *EnvOptions) []string {
	n := eo.cmdLine.positionals
	if n > len(eo.args) {
		n = len(eo.args)
	}
	return eo.args[:n]
}

func run(eo *EnvOptions) int {
	cfg, err := loadConfig(eo)
	if err != nil {
		fmt.Println(err)
		return 1
	}

	log, closeLog, err := newLogger(cfg, eo.journal)
	if err != nil {
		fmt.Println(err)
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	templates := storage.NewTemplateDir(cfg.Templates, log)
	saves := storage.NewSaveSlot(cfg.Save, log)
	opts := &universe.Options{
		Interval: cfg.Interval,
		MaxSteps: cfg.MaxSteps,
		Logger:   log,
	}

	args := positionalArgs(eo)
	switch eo.cmdLine.positionals {
	case 0:
		if cfg.Interactive {
			log.Warn("the full screen UI is used by the batch run only")
		}
		s := session.New(os.Stdin, os.Stdout, templates, saves, consolePlayer(opts, saves, "Press Enter to stop the game..."), log)
		if err := s.Run(ctx); err != nil {
			fmt.Println(err)
			return 1
		}
		return 0
	case session.BatchArgs:
		return runBatch(ctx, args, cfg, opts, templates, saves, log)
	default:
		fmt.Println(session.DiagArgCount)
		return 1
	}
}

func runBatch(ctx context.Context, args []string, cfg config.Config, opts *universe.Options, templates *storage.TemplateDir, saves *storage.SaveSlot, log *slog.Logger) int {
	b, err := session.ParseBatch(args, templates)
	if err != nil {
		fmt.Println(err)
		return 1
	}
	g, err := b.NewGame()
	if err != nil {
		fmt.Println(err)
		return 1
	}
	log.Info("batch run", "request", b.String())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Interactive {
		err = playConsoleUI(ctx, cancel, g, opts, saves)
	} else {
		go func() {
			//an empty input never stops the game, the signals and maxSteps still do
			if _, err := bufio.NewReader(os.Stdin).ReadString('\n'); err == nil {
				cancel()
			}
		}()
		err = consolePlayer(opts, saves, "Press Enter to stop the game...")(ctx, g)
	}
	if err != nil {
		fmt.Println(err)
		return 1
	}
	fmt.Println("Game stopped - the state has been saved.")
	return 0
}

//consolePlayer plays the game printing the board to stdout
func consolePlayer(opts *universe.Options, saver universe.StateSaver, hint string) session.PlayFunc {
	return func(ctx context.Context, g *universe.GameOfLife) error {
		r := universe.NewRunner(g, saver, opts, nil)
		r.RegisterViewer(view.NewConsoleOut(os.Stdout, isTerminal(os.Stdout), hint))
		return r.Run(ctx)
	}
}

//playConsoleUI plays the game in the full screen UI, any key cancels the game
func playConsoleUI(ctx context.Context, cancel context.CancelFunc, g *universe.GameOfLife, opts *universe.Options, saver universe.StateSaver) error {
	ui, err := view.NewConsoleUI(cancel)
	if err != nil {
		return err
	}
	r := universe.NewRunner(g, saver, opts, nil)
	r.RegisterViewer(ui)

	done := make(chan error, 1)
	go func() {
		err := r.Run(ctx)
		ui.Quit()
		done <- err
	}()
	if err := ui.Start(); err != nil {
		cancel()
		<-done
		return err
	}
	cancel()
	return <-done
}

func newLogger(cfg config.Config, journal bool) (*slog.Logger, func(), error) {
	o := logs.Options{Journal: journal, Level: slog.LevelWarn}
	closeLog := func() {}
	switch {
	case cfg.Log != "":
		f, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		o.Writer = f
		o.Level = slog.LevelInfo
		closeLog = func() { _ = f.Close() }
	case cfg.Interactive:
		//the terminal belongs to the UI
		o.Writer = io.Discard
	default:
		o.Writer = os.Stderr
	}
	if cfg.Debug {
		o.Level = slog.LevelDebug
	}
	return logs.New(o), closeLog, nil
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
