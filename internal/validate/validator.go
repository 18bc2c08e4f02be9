// Package validate checks parameter packs against the schemas they declare,
// including each pipeline entry's module parameters against that module's
// exported schema.
package validate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"openscope-params/internal/jsondoc"
	"openscope-params/internal/logging"
	"openscope-params/internal/model"
	"openscope-params/internal/packs"
)

// LoadModuleSchemas reads every tooling/model_<name>.schema.json except the
// launcher's, keyed by module name. A missing directory yields no schemas.
func LoadModuleSchemas(toolingDir string) (map[string]*jsondoc.Object, error) {
	schemas := make(map[string]*jsondoc.Object)
	matches, err := doublestar.Glob(os.DirFS(toolingDir), "model_*.schema.json", doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("list module schemas: %w", err)
	}
	for _, name := range matches {
		module := strings.TrimSuffix(strings.TrimPrefix(path.Base(name), "model_"), ".schema.json")
		if module == model.LauncherName || module == "" {
			continue
		}
		schema, err := loadSchema(filepath.Join(toolingDir, filepath.FromSlash(name)))
		if err != nil {
			return nil, err
		}
		schemas[module] = schema
	}
	return schemas, nil
}

// Validator validates packs one at a time.
type Validator struct {
	Resolver *Resolver
	// Modules holds the exported module schemas keyed by module name.
	Modules map[string]*jsondoc.Object
	Log     *zap.Logger
}

func (v *Validator) log() *zap.Logger {
	return logging.OrNop(v.Log)
}

// ValidateFile parses and validates the pack at path.
func (v *Validator) ValidateFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Error{Path: path, Reason: "read pack", Err: err}
	}
	doc, err := jsondoc.Decode(data)
	if err != nil {
		return &Error{Path: path, Reason: "invalid JSON", Err: err}
	}
	obj, ok := doc.(*jsondoc.Object)
	if !ok {
		return &Error{Path: path, Reason: "pack must be a JSON object, got " + jsondoc.TypeName(doc)}
	}
	return v.ValidateDocument(ctx, obj, path)
}

// ValidateDocument validates an already parsed pack. path locates the pack
// for relative schema references. The first failure is returned.
func (v *Validator) ValidateDocument(ctx context.Context, doc *jsondoc.Object, path string) error {
	raw, _ := doc.Get("$schema")
	if raw == nil || raw == "" {
		return &Error{Path: path, Reason: "missing $schema"}
	}
	ref, ok := raw.(string)
	if !ok {
		return &Error{Path: path, Reason: "$schema must be a string, got " + jsondoc.TypeName(raw)}
	}

	schema, err := v.Resolver.Resolve(ctx, ref, path)
	if err != nil {
		return at(err, path, "")
	}
	if err := CheckObject(doc, schema); err != nil {
		return at(err, path, "")
	}

	for _, key := range packs.Pipelines {
		pipeline, ok := doc.GetArray(key)
		if !ok {
			continue
		}
		for i, item := range pipeline {
			if err := v.validateEntry(ctx, key, i, item, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *Validator) validateEntry(ctx context.Context, pipeline string, index int, item any, path string) error {
	entry := packs.ParseEntry(item)
	if !entry.IsLauncherModule() || entry.Params == nil {
		return nil
	}
	loc := fmt.Sprintf("%s[%d] (%s)", pipeline, index, entry.Name)

	var schema *jsondoc.Object
	switch {
	case entry.Schema != "":
		s, err := v.Resolver.Resolve(ctx, entry.Schema, path)
		if err != nil {
			return at(err, path, loc)
		}
		schema = s
	default:
		s, ok := v.Modules[entry.Name]
		if !ok {
			v.log().Debug("no schema for module", zap.String("module", entry.Name), zap.String("entry", loc))
			return nil
		}
		schema = s
	}

	if err := CheckObject(entry.Params, schema); err != nil {
		return at(err, path, loc)
	}
	return nil
}

// Result is the outcome for one pack.
type Result struct {
	Path string
	Err  error
}

// Summary aggregates a batch run.
type Summary struct {
	Results []Result
	Failed  int
}

// ExitCode is 1 when any pack failed, else 0.
func (s Summary) ExitCode() int {
	if s.Failed > 0 {
		return 1
	}
	return 0
}

// Run validates each path in order, calling report after each one. A
// failing pack never stops the batch.
func (v *Validator) Run(ctx context.Context, paths []string, report func(Result)) Summary {
	var sum Summary
	for _, p := range paths {
		res := Result{Path: p, Err: v.ValidateFile(ctx, p)}
		if res.Err != nil {
			sum.Failed++
			v.log().Debug("pack failed", zap.String("path", p), zap.Error(res.Err))
		}
		sum.Results = append(sum.Results, res)
		if report != nil {
			report(res)
		}
	}
	return sum
}

// Discover lists the packs under root for a batch run. A missing root is
// reported as no packs.
func Discover(root string, exclude []string) ([]string, error) {
	files, err := packs.Discover(root, exclude)
	if errors.Is(err, packs.ErrRootNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths, nil
}
