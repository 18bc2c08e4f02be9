// Package exporter renders the registered parameter models into JSON Schema
// files under the tooling directory.
package exporter

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"go.uber.org/zap"

	"openscope-params/internal/jsondoc"
	"openscope-params/internal/model"
)

const (
	// DefaultDraft is the $schema every exported document is stamped with.
	DefaultDraft = "https://json-schema.org/draft/2020-12/schema"
	// DefaultIDBase prefixes the file name to form each document's $id.
	DefaultIDBase = "https://example.invalid/openscope-params/tooling/"

	fallbackDescription = "Module parameters schema generated from the parameter model."
	launcherTitle       = "OpenScope Experimental Launcher Params"
)

// ErrNoLauncher is returned when the registry has no launcher model.
var ErrNoLauncher = errors.New("exporter: launcher model not registered")

// Options control where and how schemas are written.
type Options struct {
	ToolingDir string
	IDBase     string
	Draft      string
	Logger     *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.IDBase == "" {
		o.IDBase = DefaultIDBase
	}
	if o.Draft == "" {
		o.Draft = DefaultDraft
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// File is one rendered schema document.
type File struct {
	Module string
	Name   string
	Data   []byte
}

// Result lists the files an export wrote, relative to the tooling dir.
type Result struct {
	Written []string
	Skipped []string
}

// FileName returns the schema file name for a module.
func FileName(module string) string {
	return "model_" + module + ".schema.json"
}

// Description picks the text used in a module schema's description:
// the explicit override, else the first paragraph of Doc, else a fallback.
func Description(m model.Model) string {
	if d := strings.TrimSpace(m.Description); d != "" {
		return d
	}
	doc := strings.TrimSpace(m.Doc)
	if doc != "" {
		first, _, _ := strings.Cut(doc, "\n\n")
		first = strings.TrimSpace(strings.ReplaceAll(first, "\n", " "))
		if first != "" {
			return first
		}
	}
	return fallbackDescription
}

// Render builds every schema document in memory. Modules come first in name
// order, the launcher last.
func Render(reg *model.Registry, opts Options) ([]File, []string, error) {
	opts = opts.withDefaults()

	launcher, ok := reg.Launcher()
	if !ok || launcher.New == nil {
		return nil, nil, ErrNoLauncher
	}

	var files []File
	var skipped []string
	for _, m := range reg.Modules() {
		if m.New == nil {
			skipped = append(skipped, m.Name)
			continue
		}
		name := FileName(m.Name)
		data, err := render(m.New(), opts.Draft, opts.IDBase+name,
			"Module Parameters: "+m.Name,
			fmt.Sprintf("Generated from parameter model %s. %s", m.TypeName(), Description(m)))
		if err != nil {
			return nil, nil, fmt.Errorf("exporter: render %s: %w", m.Name, err)
		}
		files = append(files, File{Module: m.Name, Name: name, Data: data})
	}

	name := FileName(model.LauncherName)
	data, err := render(launcher.New(), opts.Draft, opts.IDBase+name, launcherTitle, strings.TrimSpace(launcher.Description))
	if err != nil {
		return nil, nil, fmt.Errorf("exporter: render launcher: %w", err)
	}
	files = append(files, File{Module: model.LauncherName, Name: name, Data: data})

	return files, skipped, nil
}

func render(v any, draft, id, title, description string) ([]byte, error) {
	s := model.Reflect(v)
	s.Version = draft
	s.ID = jsonschema.ID(id)
	s.Title = title
	s.Description = description

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	doc, err := jsondoc.Decode(raw)
	if err != nil {
		return nil, err
	}
	return jsondoc.MarshalIndent(doc)
}

// Export renders and writes every schema, overwriting existing files.
func Export(reg *model.Registry, opts Options) (Result, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	files, skipped, err := Render(reg, opts)
	if err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(opts.ToolingDir, 0755); err != nil {
		return Result{}, fmt.Errorf("exporter: create %s: %w", opts.ToolingDir, err)
	}

	res := Result{Skipped: skipped}
	for _, name := range skipped {
		log.Debug("module has no parameter model", zap.String("module", name))
	}
	for _, f := range files {
		path := filepath.Join(opts.ToolingDir, f.Name)
		if err := os.WriteFile(path, f.Data, 0644); err != nil {
			return res, fmt.Errorf("exporter: write %s: %w", path, err)
		}
		log.Debug("wrote schema", zap.String("module", f.Module), zap.String("path", path))
		res.Written = append(res.Written, f.Name)
	}
	log.Info("export finished", zap.Int("written", len(res.Written)), zap.Int("skipped", len(res.Skipped)))
	return res, nil
}

// Check renders every schema and reports the files whose on-disk content is
// missing or differs. Nothing is written.
func Check(reg *model.Registry, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	files, _, err := Render(reg, opts)
	if err != nil {
		return nil, err
	}
	var stale []string
	for _, f := range files {
		path := filepath.Join(opts.ToolingDir, f.Name)
		current, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			stale = append(stale, f.Name)
		case err != nil:
			return nil, fmt.Errorf("exporter: read %s: %w", path, err)
		case !bytes.Equal(current, f.Data):
			stale = append(stale, f.Name)
		}
	}
	return stale, nil
}
