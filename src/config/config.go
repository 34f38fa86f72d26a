// Package config loads the optional CUE configuration file.
// The command line flags override the values from the file.
package config

import (
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//Config is the application configuration
type Config struct {
	Templates   string        //templates directory
	Save        string        //saved game file
	Interval    time.Duration //wait between the turns
	MaxSteps    int           //0 is unlimited
	Log         string        //log file, empty to log to stderr
	Debug       bool
	Interactive bool //full screen terminal UI
}

//Schema is the CUE schema of the configuration file, the file is validated against it
const Schema = `
templates?:   string & !=""
save?:        string & !=""
interval?:    string
maxSteps?:    int & >=0
log?:         string
debug?:       bool
interactive?: bool
`

//default configuration
const (
	DefTemplates = "Templates"
	DefSave      = "GameOfLife/GameOfLife.yaml"
	DefInterval  = time.Second
)

//fileConfig keeps the values set in the file, nil for absent ones
type fileConfig struct {
	Templates   *string `json:"templates"`
	Save        *string `json:"save"`
	Interval    *string `json:"interval"`
	MaxSteps    *int    `json:"maxSteps"`
	Log         *string `json:"log"`
	Debug       *bool   `json:"debug"`
	Interactive *bool   `json:"interactive"`
}

func Default() Config {
	return Config{
		Templates: DefTemplates,
		Save:      DefSave,
		Interval:  DefInterval,
	}
}

//Load returns the default configuration overridden by the file at path
//an empty path returns the defaults
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config: %w", err)
	}
	fc, err := parse(path, content)
	if err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	if err := c.apply(fc); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

func parse(path string, content []byte) (fc fileConfig, err error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString("close({" + Schema + "})")
	if err := schema.Err(); err != nil {
		return fc, err
	}
	value := ctx.CompileBytes(content, cue.Filename(path))
	if err := value.Err(); err != nil {
		return fc, err
	}
	value = schema.Unify(value)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fc, err
	}
	if err := value.Decode(&fc); err != nil {
		return fc, err
	}
	return fc, nil
}

func (c *Config) apply(fc fileConfig) error {
	if fc.Templates != nil {
		c.Templates = *fc.Templates
	}
	if fc.Save != nil {
		c.Save = *fc.Save
	}
	if fc.Interval != nil {
		d, err := time.ParseDuration(*fc.Interval)
		if err != nil {
			return fmt.Errorf("interval: %w", err)
		}
		if d < 0 {
			return fmt.Errorf("interval: negative duration %v", d)
		}
		c.Interval = d
	}
	if fc.MaxSteps != nil {
		c.MaxSteps = *fc.MaxSteps
	}
	if fc.Log != nil {
		c.Log = *fc.Log
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.Interactive != nil {
		c.Interactive = *fc.Interactive
	}
	return nil
}
