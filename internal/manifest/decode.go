package manifest

import (
	"fmt"
	"strconv"
	"strings"
)

// Hook is a post-sync action declared by a DEPS file. Action runs when any
// synchronized file matches Pattern.
type Hook struct {
	Pattern string
	Action  []string
}

// Manifest is a decoded DEPS file.
type Manifest struct {
	Vars             map[string]string
	Deps             *Deps
	DepsOS           map[string]*Deps
	UseRelativePaths bool
	Hooks            []Hook
}

// Solution is one top-level checkout declared in the root configuration.
type Solution struct {
	Name        string
	URL         string
	CustomDeps  *Deps
	CustomVars  map[string]string
	SafesyncURL string
}

// ParseManifest evaluates a DEPS file. customVars take precedence over the
// file's own vars during Var() resolution.
func ParseManifest(text string, customVars map[string]string) (*Manifest, error) {
	doc, err := Evaluate(text, customVars)
	if err != nil {
		return nil, err
	}
	return DecodeManifest(doc)
}

// DecodeManifest extracts the recognized DEPS bindings from doc. Other
// top-level names are ignored.
func DecodeManifest(doc *Document) (*Manifest, error) {
	m := &Manifest{
		Vars:   map[string]string{},
		Deps:   NewDeps(),
		DepsOS: map[string]*Deps{},
	}

	if v, ok := doc.Get("vars"); ok {
		vars, err := asStringMap(v, "vars")
		if err != nil {
			return nil, err
		}
		m.Vars = vars
	}

	if v, ok := doc.Get("deps"); ok {
		deps, err := asDeps(v, "deps")
		if err != nil {
			return nil, err
		}
		m.Deps = deps
	}

	if v, ok := doc.Get("deps_os"); ok {
		d, ok := v.(*Dict)
		if !ok {
			return nil, shapeError("deps_os must be a dict, got %s", kindOf(v))
		}
		for _, osName := range d.Keys() {
			inner, _ := d.Get(osName)
			deps, err := asDeps(inner, "deps_os["+strconv.Quote(osName)+"]")
			if err != nil {
				return nil, err
			}
			m.DepsOS[osName] = deps
		}
	}

	if v, ok := doc.Get("use_relative_paths"); ok {
		b, err := asBool(v, "use_relative_paths")
		if err != nil {
			return nil, err
		}
		m.UseRelativePaths = b
	}

	if v, ok := doc.Get("hooks"); ok {
		hooks, err := asHooks(v)
		if err != nil {
			return nil, err
		}
		m.Hooks = hooks
	}

	return m, nil
}

// ParseSolutions evaluates a root configuration and returns its solutions
// in declared order. A configuration without a solutions binding has none.
func ParseSolutions(text string) ([]Solution, *Document, error) {
	doc, err := Evaluate(text, nil)
	if err != nil {
		return nil, nil, err
	}
	sols, err := DecodeSolutions(doc)
	if err != nil {
		return nil, nil, err
	}
	return sols, doc, nil
}

// DecodeSolutions decodes the solutions binding of a root configuration.
func DecodeSolutions(doc *Document) ([]Solution, error) {
	v, ok := doc.Get("solutions")
	if !ok {
		return nil, nil
	}
	list, ok := v.(List)
	if !ok {
		return nil, shapeError("solutions must be a list, got %s", kindOf(v))
	}

	var out []Solution
	seen := make(map[string]bool)
	for i, item := range list {
		d, ok := item.(*Dict)
		if !ok {
			return nil, shapeError("solutions[%d] must be a dict, got %s", i, kindOf(item))
		}
		sol, err := decodeSolution(d, i)
		if err != nil {
			return nil, err
		}
		if seen[sol.Name] {
			return nil, shapeError("solutions[%d]: duplicate solution name %q", i, sol.Name)
		}
		seen[sol.Name] = true
		out = append(out, sol)
	}
	return out, nil
}

func decodeSolution(d *Dict, i int) (Solution, error) {
	prefix := fmt.Sprintf("solutions[%d]", i)
	sol := Solution{CustomDeps: NewDeps(), CustomVars: map[string]string{}}

	name, err := requiredString(d, "name", prefix)
	if err != nil {
		return sol, err
	}
	sol.Name = name

	// A solution may legitimately have url None when it only groups custom_deps.
	if v, ok := d.Get("url"); ok {
		if _, isNone := v.(None); !isNone {
			s, err := asString(v, prefix+".url")
			if err != nil {
				return sol, err
			}
			sol.URL = s
		}
	}

	if v, ok := d.Get("custom_deps"); ok {
		deps, err := asDeps(v, prefix+".custom_deps")
		if err != nil {
			return sol, err
		}
		sol.CustomDeps = deps
	}

	if v, ok := d.Get("custom_vars"); ok {
		vars, err := asStringMap(v, prefix+".custom_vars")
		if err != nil {
			return sol, err
		}
		sol.CustomVars = vars
	}

	if v, ok := d.Get("safesync_url"); ok {
		if _, isNone := v.(None); !isNone {
			s, err := asString(v, prefix+".safesync_url")
			if err != nil {
				return sol, err
			}
			sol.SafesyncURL = s
		}
	}

	return sol, nil
}

// FormatEntries renders the entries record for paths, in the given order.
func FormatEntries(paths []string) string {
	var b strings.Builder
	b.WriteString("entries = [\n")
	for _, p := range paths {
		b.WriteString("  ")
		b.WriteString(strconv.Quote(p))
		b.WriteString(",\n")
	}
	b.WriteString("]\n")
	return b.String()
}

// ParseEntries reads an entries record. A record without an entries binding
// lists no paths.
func ParseEntries(text string) ([]string, error) {
	doc, err := Evaluate(text, nil)
	if err != nil {
		return nil, err
	}
	v, ok := doc.Get("entries")
	if !ok {
		return nil, nil
	}
	// Older records stored a path → url dict.
	if d, ok := v.(*Dict); ok {
		return d.Keys(), nil
	}
	list, ok := v.(List)
	if !ok {
		return nil, shapeError("entries must be a list, got %s", kindOf(v))
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, err := asString(item, fmt.Sprintf("entries[%d]", i))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func requiredString(d *Dict, key, prefix string) (string, error) {
	v, ok := d.Get(key)
	if !ok {
		return "", shapeError("%s: %q is required", prefix, key)
	}
	s, err := asString(v, prefix+"."+key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", shapeError("%s: %q must not be empty", prefix, key)
	}
	return s, nil
}

func asString(v Value, what string) (string, error) {
	s, ok := v.(String)
	if !ok {
		return "", shapeError("%s must be a string, got %s", what, kindOf(v))
	}
	return string(s), nil
}

func asBool(v Value, what string) (bool, error) {
	switch x := v.(type) {
	case Bool:
		return bool(x), nil
	case Int:
		return x != 0, nil
	}
	return false, shapeError("%s must be a bool, got %s", what, kindOf(v))
}

func asStringMap(v Value, what string) (map[string]string, error) {
	d, ok := v.(*Dict)
	if !ok {
		return nil, shapeError("%s must be a dict, got %s", what, kindOf(v))
	}
	out := make(map[string]string, d.Len())
	for _, k := range d.Keys() {
		item, _ := d.Get(k)
		s, err := asString(item, what+"["+strconv.Quote(k)+"]")
		if err != nil {
			return nil, err
		}
		out[k] = s
	}
	return out, nil
}

func asDeps(v Value, what string) (*Deps, error) {
	d, ok := v.(*Dict)
	if !ok {
		return nil, shapeError("%s must be a dict, got %s", what, kindOf(v))
	}
	deps := NewDeps()
	for _, path := range d.Keys() {
		item, _ := d.Get(path)
		switch x := item.(type) {
		case None:
			deps.Set(path, Dep{Absent: true})
		case String:
			deps.Set(path, Dep{URL: string(x)})
		default:
			return nil, shapeError("%s[%q] must be a string or None, got %s", what, path, kindOf(item))
		}
	}
	return deps, nil
}

func asHooks(v Value) ([]Hook, error) {
	list, ok := v.(List)
	if !ok {
		return nil, shapeError("hooks must be a list, got %s", kindOf(v))
	}
	hooks := make([]Hook, 0, len(list))
	for i, item := range list {
		prefix := fmt.Sprintf("hooks[%d]", i)
		d, ok := item.(*Dict)
		if !ok {
			return nil, shapeError("%s must be a dict, got %s", prefix, kindOf(item))
		}
		pattern, err := requiredString(d, "pattern", prefix)
		if err != nil {
			return nil, err
		}
		av, ok := d.Get("action")
		if !ok {
			return nil, shapeError("%s: %q is required", prefix, "action")
		}
		actionList, ok := av.(List)
		if !ok || len(actionList) == 0 {
			return nil, shapeError("%s.action must be a non-empty list", prefix)
		}
		action := make([]string, 0, len(actionList))
		for j, a := range actionList {
			s, err := asString(a, fmt.Sprintf("%s.action[%d]", prefix, j))
			if err != nil {
				return nil, err
			}
			action = append(action, s)
		}
		hooks = append(hooks, Hook{Pattern: pattern, Action: action})
	}
	return hooks, nil
}
