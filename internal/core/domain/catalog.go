package domain

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// DeclarationSpec describes one declaration of a catalog: where it lives,
// what it derives from, and the annotations attached to it and its members.
type DeclarationSpec struct {
	Declaration Declaration
	// Source is the source artifact identity, empty if the declaration has none.
	Source      string
	Extends     Declaration
	Uses        []Declaration
	Implements  []Declaration
	Annotations Collection
	Properties  map[string]Collection
	Methods     map[string]Collection
}

// Catalog is a set of declarations forming a derivation graph.
type Catalog struct {
	root  string
	specs map[Declaration]*DeclarationSpec
}

// NewCatalog creates an empty catalog whose relative sources resolve against root.
func NewCatalog(root string) *Catalog {
	return &Catalog{
		root:  root,
		specs: make(map[Declaration]*DeclarationSpec),
	}
}

// Root returns the directory relative sources resolve against.
func (c *Catalog) Root() string {
	return c.root
}

// Add adds a declaration to the catalog.
// It returns an error if the declaration already exists.
func (c *Catalog) Add(spec *DeclarationSpec) error {
	if _, exists := c.specs[spec.Declaration]; exists {
		return zerr.With(ErrDuplicateDeclaration, "declaration", spec.Declaration.String())
	}
	c.specs[spec.Declaration] = spec
	return nil
}

// Lookup returns the spec of decl.
func (c *Catalog) Lookup(decl Declaration) (*DeclarationSpec, bool) {
	spec, ok := c.specs[decl]
	return spec, ok
}

// Len returns the number of declarations.
func (c *Catalog) Len() int {
	return len(c.specs)
}

// All yields every spec ordered by declaration name.
func (c *Catalog) All() iter.Seq[*DeclarationSpec] {
	return func(yield func(*DeclarationSpec) bool) {
		for _, decl := range c.sorted() {
			if !yield(c.specs[decl]) {
				return
			}
		}
	}
}

// Targets yields every annotatable target: each declaration, then its
// properties and methods in name order.
func (c *Catalog) Targets() iter.Seq[Target] {
	return func(yield func(Target) bool) {
		for _, decl := range c.sorted() {
			spec := c.specs[decl]
			if !yield(ClassTarget(decl)) {
				return
			}
			for _, name := range slices.Sorted(maps.Keys(spec.Properties)) {
				if !yield(PropertyTarget(decl, name)) {
					return
				}
			}
			for _, name := range slices.Sorted(maps.Keys(spec.Methods)) {
				if !yield(MethodTarget(decl, name)) {
					return
				}
			}
		}
	}
}

// Sources returns the distinct non-empty source artifacts, sorted.
func (c *Catalog) Sources() []string {
	seen := make(map[string]struct{}, len(c.specs))
	for _, spec := range c.specs {
		if spec.Source != "" {
			seen[spec.Source] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Validate checks that every reference resolves and that the derivation
// graph is acyclic.
func (c *Catalog) Validate() error {
	for _, decl := range c.sorted() {
		for dep := range c.edges(c.specs[decl]) {
			if _, ok := c.specs[dep]; !ok {
				return zerr.With(
					zerr.With(ErrMissingDependency, "declaration", decl.String()),
					"dependency", dep.String(),
				)
			}
		}
	}

	visited := make(map[Declaration]int) // 0: unvisited, 1: visiting, 2: visited
	var path []Declaration

	var visit func(d Declaration) error
	visit = func(d Declaration) error {
		visited[d] = 1
		path = append(path, d)

		for dep := range c.edges(c.specs[d]) {
			if visited[dep] == 1 {
				return CycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[d] = 2
		path = path[:len(path)-1]
		return nil
	}

	for _, decl := range c.sorted() {
		if visited[decl] == 0 {
			if err := visit(decl); err != nil {
				return err
			}
		}
	}
	return nil
}

// edges yields the ancestor, used units and implemented interfaces of spec.
func (c *Catalog) edges(spec *DeclarationSpec) iter.Seq[Declaration] {
	return func(yield func(Declaration) bool) {
		if !spec.Extends.IsZero() && !yield(spec.Extends) {
			return
		}
		for _, d := range spec.Uses {
			if !yield(d) {
				return
			}
		}
		for _, d := range spec.Implements {
			if !yield(d) {
				return
			}
		}
	}
}

func (c *Catalog) sorted() []Declaration {
	decls := slices.Collect(maps.Keys(c.specs))
	slices.SortFunc(decls, func(a, b Declaration) int {
		return strings.Compare(a.String(), b.String())
	})
	return decls
}

// CycleError builds an ErrCycleDetected carrying the cycle as metadata,
// e.g. "A -> B -> A". path is the current walk, dep the node revisited.
func CycleError(path []Declaration, dep Declaration) error {
	start := slices.Index(path, dep)
	if start < 0 {
		start = 0
	}
	var b strings.Builder
	for _, d := range path[start:] {
		b.WriteString(d.String())
		b.WriteString(" -> ")
	}
	b.WriteString(dep.String())
	return zerr.With(ErrCycleDetected, "cycle", b.String())
}
