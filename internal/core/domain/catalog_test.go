package domain_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/annocache/internal/core/domain"
	"go.trai.ch/zerr"
)

func decl(name string) domain.Declaration {
	return domain.MustDeclaration(name)
}

func TestCatalog_AddDuplicate(t *testing.T) {
	t.Parallel()

	c := domain.NewCatalog(".")
	require.NoError(t, c.Add(&domain.DeclarationSpec{Declaration: decl("A")}))

	err := c.Add(&domain.DeclarationSpec{Declaration: decl("A")})
	require.Error(t, err)

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "A", zErr.Metadata()["declaration"])
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_Validate_Cycle(t *testing.T) {
	t.Parallel()

	c := domain.NewCatalog(".")
	require.NoError(t, c.Add(&domain.DeclarationSpec{Declaration: decl("A"), Uses: []domain.Declaration{decl("B")}}))
	require.NoError(t, c.Add(&domain.DeclarationSpec{Declaration: decl("B"), Extends: decl("A")}))

	err := c.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCycleDetected.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "A -> B -> A", zErr.Metadata()["cycle"])
}

func TestCatalog_Validate_MissingDependency(t *testing.T) {
	t.Parallel()

	c := domain.NewCatalog(".")
	require.NoError(t, c.Add(&domain.DeclarationSpec{Declaration: decl("A"), Implements: []domain.Declaration{decl("Missing")}}))

	err := c.Validate()
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingDependency.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error, got %T", err)
	assert.Equal(t, "A", zErr.Metadata()["declaration"])
	assert.Equal(t, "Missing", zErr.Metadata()["dependency"])
}

func TestCatalog_Validate_Diamond(t *testing.T) {
	t.Parallel()

	c := domain.NewCatalog(".")
	require.NoError(t, c.Add(&domain.DeclarationSpec{Declaration: decl("Top"), Uses: []domain.Declaration{decl("Left"), decl("Right")}}))
	require.NoError(t, c.Add(&domain.DeclarationSpec{Declaration: decl("Left"), Uses: []domain.Declaration{decl("Shared")}}))
	require.NoError(t, c.Add(&domain.DeclarationSpec{Declaration: decl("Right"), Implements: []domain.Declaration{decl("Shared")}}))
	require.NoError(t, c.Add(&domain.DeclarationSpec{Declaration: decl("Shared")}))

	assert.NoError(t, c.Validate())
}

func TestCatalog_Iteration(t *testing.T) {
	t.Parallel()

	c := domain.NewCatalog("/src")
	require.NoError(t, c.Add(&domain.DeclarationSpec{
		Declaration: decl("B"),
		Source:      "b.go",
		Properties:  map[string]domain.Collection{"z": nil, "a": nil},
		Methods:     map[string]domain.Collection{"run": nil},
	}))
	require.NoError(t, c.Add(&domain.DeclarationSpec{Declaration: decl("A"), Source: "a.go"}))
	require.NoError(t, c.Add(&domain.DeclarationSpec{Declaration: decl("C"), Source: "a.go"}))

	assert.Equal(t, "/src", c.Root())
	assert.Equal(t, []string{"a.go", "b.go"}, c.Sources())

	var names []string
	for spec := range c.All() {
		names = append(names, spec.Declaration.String())
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)

	targets := slices.Collect(c.Targets())
	want := []domain.Target{
		domain.ClassTarget(decl("A")),
		domain.ClassTarget(decl("B")),
		domain.PropertyTarget(decl("B"), "a"),
		domain.PropertyTarget(decl("B"), "z"),
		domain.MethodTarget(decl("B"), "run"),
		domain.ClassTarget(decl("C")),
	}
	assert.Equal(t, want, targets)

	spec, ok := c.Lookup(decl("B"))
	require.True(t, ok)
	assert.Equal(t, "b.go", spec.Source)
	_, ok = c.Lookup(decl("Z"))
	assert.False(t, ok)
}
