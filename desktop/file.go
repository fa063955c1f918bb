package desktop

// File is a parsed file in the [desktop entry format].
// It holds the groups in the order they appear in the file.
// Values are kept raw, they are neither unescaped nor type checked.
//
// [desktop entry format]: https://specifications.freedesktop.org/desktop-entry-spec/1.5/basic-format.html
type File struct {
	Groups []Group
}

// Group is a named group of key-value pairs, such as [Desktop Entry].
type Group struct {
	// Name of the group without the surrounding brackets, e.g. "Desktop Entry".
	Name string

	// Attrs contains the key-value pairs in file order. Keys are unique within a group.
	Attrs []Attr
}

// Attr is a single Key=Value line.
type Attr struct {
	Key   string
	Value string
}

// Group returns the group with the given name.
func (f *File) Group(name string) (*Group, bool) {
	for i := range f.Groups {
		if f.Groups[i].Name == name {
			return &f.Groups[i], true
		}
	}

	return nil, false
}

// GroupNames returns the names of all groups in file order.
func (f *File) GroupNames() []string {
	names := make([]string, len(f.Groups))
	for i, g := range f.Groups {
		names[i] = g.Name
	}

	return names
}

// Get returns the raw value of key and whether it is present.
func (g *Group) Get(key string) (string, bool) {
	for _, attr := range g.Attrs {
		if attr.Key == key {
			return attr.Value, true
		}
	}

	return "", false
}
