package validate

import (
	"openscope-params/internal/jsondoc"
	"openscope-params/internal/model"
	"openscope-params/internal/packs"
)

// EntryInfo explains how one pipeline entry is interpreted.
type EntryInfo struct {
	Pipeline   string
	Index      int
	Kind       packs.Kind
	Name       string
	ModuleType string
	// Model is the Go type the module parameters decode into, if the module
	// is registered.
	Model string
	// Extra lists parameter keys the model does not declare.
	Extra []string
	// Problem is set when the parameters do not decode into the model.
	Problem string
}

// PackInfo is the interpretation of a whole pack.
type PackInfo struct {
	Schema string
	// Extra lists top-level keys the launcher model does not declare.
	Extra   []string
	Problem string
	Entries []EntryInfo
}

type extraKeyer interface {
	ExtraKeys() []string
}

// Describe interprets doc with the models in reg.
func Describe(doc *jsondoc.Object, reg *model.Registry) PackInfo {
	var info PackInfo
	info.Schema, _ = doc.GetString("$schema")

	if launcher, ok := reg.Launcher(); ok && launcher.New != nil {
		info.Extra, info.Problem = decodeInto(doc, launcher)
	}

	for _, key := range packs.Pipelines {
		pipeline, ok := doc.GetArray(key)
		if !ok {
			continue
		}
		for i, item := range pipeline {
			entry := packs.ParseEntry(item)
			ei := EntryInfo{
				Pipeline:   key,
				Index:      i,
				Kind:       entry.Kind,
				Name:       entry.Name,
				ModuleType: entry.ModuleType,
			}
			if entry.IsLauncherModule() || entry.Kind == packs.KindShorthand {
				if m, ok := reg.Lookup(entry.Name); ok && m.New != nil {
					ei.Model = m.TypeName()
					if entry.Params != nil {
						ei.Extra, ei.Problem = decodeInto(entry.Params, m)
					}
				}
			}
			info.Entries = append(info.Entries, ei)
		}
	}
	return info
}

func decodeInto(obj *jsondoc.Object, m model.Model) ([]string, string) {
	data, err := jsondoc.Marshal(obj)
	if err != nil {
		return nil, err.Error()
	}
	target := m.New()
	if err := model.Decode(data, target); err != nil {
		return nil, err.Error()
	}
	if ek, ok := target.(extraKeyer); ok {
		return ek.ExtraKeys(), ""
	}
	return nil, ""
}
