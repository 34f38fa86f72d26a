package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golife/src/universe"
)

const templateExt = ".txt"

//TemplateDir stores each template in its own <name>.txt file under Dir
type TemplateDir struct {
	Dir string
	Log *slog.Logger
}

func NewTemplateDir(dir string, log *slog.Logger) *TemplateDir {
	if log == nil {
		log = slog.Default()
	}
	return &TemplateDir{Dir: dir, Log: log}
}

//Names returns the sorted names of the stored templates, a missing directory has no templates
func (d *TemplateDir) Names() ([]string, error) {
	entries, err := os.ReadDir(d.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != templateExt {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), templateExt))
	}
	sort.Strings(names)
	return names, nil
}

//Load reads the template, ok is false when there is no template with this name.
//A name that can never be stored, like "a/b" or "..", is not found either
func (d *TemplateDir) Load(name string) (tmpl *universe.Template, ok bool, err error) {
	path, err := d.path(name)
	if err != nil {
		d.Log.Debug("template name rejected", "name", name)
		return nil, false, nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load template %q: %w", name, err)
	}
	defer f.Close()
	tmpl, err = universe.ParseTemplate(name, f)
	if err != nil {
		return nil, false, fmt.Errorf("load template %q: %w", name, err)
	}
	return tmpl, true, nil
}

//Save writes the template, replacing the template with the same name
func (d *TemplateDir) Save(tmpl *universe.Template) error {
	path, err := d.path(tmpl.Name())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("save template %q: %w", tmpl.Name(), err)
	}
	if err := writeFile(path, []byte(tmpl.String())); err != nil {
		return fmt.Errorf("save template %q: %w", tmpl.Name(), err)
	}
	d.Log.Debug("template saved", "name", tmpl.Name(), "path", path)
	return nil
}

func (d *TemplateDir) path(name string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", &universe.Error{Kind: universe.InvalidArgument, Op: "template path", Msg: fmt.Sprintf("bad template name %q", name)}
	}
	return filepath.Join(d.Dir, name+templateExt), nil
}

//writeFile writes to the temporary file and renames it over path
//so a failed write never leaves the old file truncated
func writeFile(path string, data []byte) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
