package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"golife/src/universe"
)

//SaveSlot is the single saved game file, every save replaces the previous one
type SaveSlot struct {
	Path string
	Log  *slog.Logger
}

var _ universe.StateSaver = (*SaveSlot)(nil)

func NewSaveSlot(path string, log *slog.Logger) *SaveSlot {
	if log == nil {
		log = slog.Default()
	}
	return &SaveSlot{Path: path, Log: log}
}

//SaveState writes the game state as YAML
func (s *SaveSlot) SaveState(st universe.State) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save game state: %w", err)
		}
	}
	if err := writeFile(s.Path, data); err != nil {
		return fmt.Errorf("save game state: %w", err)
	}
	s.Log.Debug("game state saved", "path", s.Path, "height", st.Height, "width", st.Width)
	return nil
}

//LoadState reads the saved game, ok is false when nothing was saved yet
func (s *SaveSlot) LoadState() (st universe.State, ok bool, err error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return universe.State{}, false, nil
	}
	if err != nil {
		return universe.State{}, false, fmt.Errorf("load game state: %w", err)
	}
	if err := yaml.Unmarshal(data, &st); err != nil {
		return universe.State{}, false, fmt.Errorf("decode game state %s: %w", s.Path, err)
	}
	return st, true, nil
}

//LoadGame restores the saved game, ok is false when nothing was saved yet
func (s *SaveSlot) LoadGame() (g *universe.GameOfLife, ok bool, err error) {
	st, ok, err := s.LoadState()
	if err != nil || !ok {
		return nil, ok, err
	}
	g, err = universe.Restore(st)
	if err != nil {
		return nil, false, fmt.Errorf("restore game state %s: %w", s.Path, err)
	}
	return g, true, nil
}
