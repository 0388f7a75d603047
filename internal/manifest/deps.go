package manifest

// Dep is one dependency declaration. Absent marks a path explicitly
// excluded with None, which is different from the path not being mentioned.
type Dep struct {
	URL    string
	Absent bool
}

// Deps is an ordered path → Dep mapping.
type Deps struct {
	paths  []string
	byPath map[string]Dep
}

// NewDeps returns an empty mapping.
func NewDeps() *Deps {
	return &Deps{byPath: make(map[string]Dep)}
}

// Set binds path. Re-binding keeps the original position.
func (d *Deps) Set(path string, dep Dep) {
	if _, ok := d.byPath[path]; !ok {
		d.paths = append(d.paths, path)
	}
	d.byPath[path] = dep
}

// Get returns the declaration for path.
func (d *Deps) Get(path string) (Dep, bool) {
	if d == nil {
		return Dep{}, false
	}
	dep, ok := d.byPath[path]
	return dep, ok
}

// Paths returns the declared paths in order.
func (d *Deps) Paths() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.paths))
	copy(out, d.paths)
	return out
}

// Len returns the number of declared paths, including absent ones.
func (d *Deps) Len() int {
	if d == nil {
		return 0
	}
	return len(d.paths)
}

// Clone returns an independent copy.
func (d *Deps) Clone() *Deps {
	out := NewDeps()
	for _, p := range d.Paths() {
		out.Set(p, d.byPath[p])
	}
	return out
}

// Overlay applies every declaration in other on top of d, including
// absent markers.
func (d *Deps) Overlay(other *Deps) {
	for _, p := range other.Paths() {
		dep, _ := other.Get(p)
		d.Set(p, dep)
	}
}
