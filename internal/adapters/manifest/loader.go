// Package manifest reads declarations and their annotations from a YAML manifest.
package manifest

import (
	"os"
	"path/filepath"

	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/annocache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ManifestLoader = (*Loader)(nil)

// Loader parses manifests into validated catalogs.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the manifest at path. Relative sources resolve against the
// manifest directory joined with its root.
func (l *Loader) Load(path string) (*domain.Catalog, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	data, err := os.ReadFile(abs) //nolint:gosec // the manifest path is user supplied
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", abs)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestParseFailed.Error()), "path", abs)
	}

	catalog, err := Build(&m, filepath.Dir(abs))
	if err != nil {
		return nil, zerr.With(err, "path", abs)
	}
	return catalog, nil
}

// Build converts a parsed manifest into a validated catalog rooted at dir.
func Build(m *Manifest, dir string) (*domain.Catalog, error) {
	if m.Version != "" && m.Version != SupportedVersion {
		return nil, zerr.With(domain.ErrManifestParseFailed, "version", m.Version)
	}

	root := dir
	if m.Root != "" {
		root = m.Root
		if !filepath.IsAbs(root) {
			root = filepath.Join(dir, root)
		}
	}

	catalog := domain.NewCatalog(filepath.Clean(root))
	for name, dto := range m.Declarations {
		spec, err := buildSpec(name, &dto)
		if err != nil {
			return nil, err
		}
		if err := catalog.Add(spec); err != nil {
			return nil, err
		}
	}

	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

func buildSpec(name string, dto *DeclarationDTO) (*domain.DeclarationSpec, error) {
	decl, err := domain.ParseDeclaration(name)
	if err != nil {
		return nil, err
	}

	spec := &domain.DeclarationSpec{
		Declaration: decl,
		Source:      dto.Source,
		Annotations: dto.Annotations,
		Properties:  dto.Properties,
		Methods:     dto.Methods,
	}

	if dto.Extends != "" {
		if spec.Extends, err = domain.ParseDeclaration(dto.Extends); err != nil {
			return nil, zerr.With(err, "extended_by", name)
		}
	}
	if spec.Uses, err = parseAll(dto.Uses, name); err != nil {
		return nil, err
	}
	if spec.Implements, err = parseAll(dto.Implements, name); err != nil {
		return nil, err
	}

	for member := range dto.Properties {
		if err := domain.ValidateMemberName(member); err != nil {
			return nil, zerr.With(err, "declaration", name)
		}
	}
	for member := range dto.Methods {
		if err := domain.ValidateMemberName(member); err != nil {
			return nil, zerr.With(err, "declaration", name)
		}
	}
	return spec, nil
}

func parseAll(names []string, owner string) ([]domain.Declaration, error) {
	decls := make([]domain.Declaration, 0, len(names))
	for _, n := range names {
		d, err := domain.ParseDeclaration(n)
		if err != nil {
			return nil, zerr.With(err, "referenced_by", owner)
		}
		decls = append(decls, d)
	}
	return decls, nil
}
