package domain

// Annotation is a single structured record attached to a declaration.
// The cache treats it as opaque; only Kind is used, to answer first-of-kind queries.
type Annotation struct {
	Kind   string         `json:"kind" yaml:"kind"`
	Values map[string]any `json:"values,omitempty" yaml:"values,omitempty"`
}

// Collection is the ordered sequence of annotations of one target.
type Collection []Annotation

// First returns the first annotation of the given kind.
func (c Collection) First(kind string) (Annotation, bool) {
	for _, a := range c {
		if a.Kind == kind {
			return a, true
		}
	}
	return Annotation{}, false
}

// Kinds returns the kinds in collection order, duplicates included.
func (c Collection) Kinds() []string {
	kinds := make([]string, len(c))
	for i, a := range c {
		kinds[i] = a.Kind
	}
	return kinds
}
