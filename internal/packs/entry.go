package packs

import (
	"openscope-params/internal/jsondoc"
	"openscope-params/internal/model"
)

// Kind tells the pipeline entry forms apart.
type Kind int

const (
	// KindUnknown is any value that is not one of the recognised forms.
	KindUnknown Kind = iota
	// KindShorthand is a bare module name.
	KindShorthand
	// KindModule is an object with module_path and optional module_type.
	KindModule
	// KindLegacy is an object with type "repo_module".
	KindLegacy
)

func (k Kind) String() string {
	switch k {
	case KindShorthand:
		return "shorthand"
	case KindModule:
		return "module"
	case KindLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Entry is one interpreted pipeline entry.
type Entry struct {
	Kind Kind
	// Name is the shorthand string, the module_path of a module entry, or the
	// repo_relative_path of a legacy entry.
	Name string
	// ModuleType is launcher_module when absent or null.
	ModuleType string
	// Params is module_parameters when it is an object.
	Params *jsondoc.Object
	// HasParams reports whether module_parameters is present at all.
	HasParams bool
	// Schema is the module_schema override, if any.
	Schema string
	// Object is the entry itself for object forms.
	Object *jsondoc.Object
}

// ParseEntry interprets a decoded pipeline entry.
func ParseEntry(v any) Entry {
	switch e := v.(type) {
	case string:
		return Entry{Kind: KindShorthand, Name: e, ModuleType: model.ModuleTypeLauncher}
	case *jsondoc.Object:
		if t, ok := e.GetString("type"); ok && t == model.LegacyRepoModule {
			path, _ := e.GetString("repo_relative_path")
			return Entry{Kind: KindLegacy, Name: path, Object: e}
		}
		return parseModule(e)
	default:
		return Entry{Kind: KindUnknown}
	}
}

func parseModule(obj *jsondoc.Object) Entry {
	entry := Entry{Kind: KindModule, ModuleType: model.ModuleTypeLauncher, Object: obj}
	if raw, ok := obj.Get("module_type"); ok && raw != nil {
		s, isString := raw.(string)
		if !isString {
			// Neither launcher nor script; keeps it out of launcher-only handling.
			s = jsondoc.TypeName(raw)
		}
		entry.ModuleType = s
	}
	entry.Name, _ = obj.GetString("module_path")
	if raw, ok := obj.Get("module_parameters"); ok {
		entry.HasParams = true
		entry.Params, _ = raw.(*jsondoc.Object)
	}
	entry.Schema, _ = obj.GetString("module_schema")
	return entry
}

// IsLauncherModule reports whether the entry is an object entry executed as a
// launcher module.
func (e Entry) IsLauncherModule() bool {
	return e.Kind == KindModule && e.ModuleType == model.ModuleTypeLauncher
}

// Is reports whether the entry is a launcher module object for module name.
func (e Entry) Is(name string) bool {
	return e.IsLauncherModule() && e.Name == name
}
