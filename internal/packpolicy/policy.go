// Package packpolicy keeps the disk_space_check entry of every classified
// pack in line with the free-space policy of the folder it lives in.
package packpolicy

import (
	"bytes"
	"errors"
	"slices"
	"strings"

	"openscope-params/internal/config"
	"openscope-params/internal/jsondoc"
	"openscope-params/internal/model"
	"openscope-params/internal/packs"
)

// Module names the updater looks for.
const (
	DiskSpaceCheck   = "disk_space_check"
	WaitForUserInput = "wait_for_user_input"
)

// ErrPipelineNotArray marks a pack whose pre_acquisition_pipeline is set to
// something other than an array.
var ErrPipelineNotArray = errors.New("pre_acquisition_pipeline is not an array")

type rule struct {
	name    string
	gb      int
	folders map[string]struct{}
}

// Policy classifies pack paths by folder name.
type Policy struct {
	rules []rule
}

// NewPolicy builds a policy from ordered rules; earlier rules win.
func NewPolicy(rules []config.PolicyRule) *Policy {
	p := &Policy{rules: make([]rule, 0, len(rules))}
	for _, r := range rules {
		folders := make(map[string]struct{}, len(r.Folders))
		for _, f := range r.Folders {
			folders[strings.ToLower(f)] = struct{}{}
		}
		p.rules = append(p.rules, rule{name: r.Name, gb: r.RequiredFreeGB, folders: folders})
	}
	return p
}

// Classify returns the required free space for a pack at the slash-separated
// path rel. ok is false when no rule matches any path segment.
func (p *Policy) Classify(rel string) (gb int, ok bool) {
	_, gb, ok = p.match(rel)
	return gb, ok
}

// RuleName returns the name of the rule that classifies rel.
func (p *Policy) RuleName(rel string) (string, bool) {
	name, _, ok := p.match(rel)
	return name, ok
}

func (p *Policy) match(rel string) (string, int, bool) {
	segments := strings.Split(strings.ToLower(rel), "/")
	for _, r := range p.rules {
		for _, seg := range segments {
			if _, hit := r.folders[seg]; hit {
				return r.name, r.gb, true
			}
		}
	}
	return "", 0, false
}

// EnsureDiskSpaceCheck updates the first disk_space_check launcher entry to
// require gb, or inserts a new one before the first wait_for_user_input
// entry, or appends it. Existing entry objects are modified in place.
func EnsureDiskSpaceCheck(pipeline []any, gb int) []any {
	for _, item := range pipeline {
		if !packs.ParseEntry(item).Is(DiskSpaceCheck) {
			continue
		}
		obj := item.(*jsondoc.Object)
		params, ok := obj.GetObject("module_parameters")
		if !ok {
			params = jsondoc.NewObject()
		}
		params.Delete("required_free_bytes")
		params.Set("required_free_gb", jsondoc.Int(gb))
		obj.Set("module_parameters", params)
		return pipeline
	}

	entry := newDiskSpaceCheck(gb)
	for i, item := range pipeline {
		if packs.ParseEntry(item).Is(WaitForUserInput) {
			return slices.Insert(pipeline, i, any(entry))
		}
	}
	return append(pipeline, entry)
}

func newDiskSpaceCheck(gb int) *jsondoc.Object {
	params := jsondoc.NewObject()
	params.Set("required_free_gb", jsondoc.Int(gb))

	entry := jsondoc.NewObject()
	entry.Set("module_type", model.ModuleTypeLauncher)
	entry.Set("module_path", DiskSpaceCheck)
	entry.Set("module_parameters", params)
	return entry
}

// UpdatePack applies EnsureDiskSpaceCheck to the pack's pre-acquisition
// pipeline, creating the pipeline when it is missing or null. It reports
// whether the compact serialisation changed.
func UpdatePack(doc *jsondoc.Object, gb int) (bool, error) {
	raw, ok := doc.Get(packs.PreAcquisition)
	if !ok || raw == nil {
		raw = []any{}
		doc.Set(packs.PreAcquisition, raw)
	}
	pipeline, ok := raw.([]any)
	if !ok {
		return false, ErrPipelineNotArray
	}

	before, err := jsondoc.Marshal(doc)
	if err != nil {
		return false, err
	}
	doc.Set(packs.PreAcquisition, EnsureDiskSpaceCheck(pipeline, gb))
	after, err := jsondoc.Marshal(doc)
	if err != nil {
		return false, err
	}
	return !bytes.Equal(before, after), nil
}
