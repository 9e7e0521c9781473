// Package domain contains the core domain models for the annotation cache.
package domain

import (
	"strings"
	"unique"

	"go.trai.ch/zerr"
)

// reservedChars may not appear in declaration or member names. They are used
// as discriminators in cache keys.
const reservedChars = "$#[]"

// Declaration identifies a type by its fully qualified, normalized name.
// The name is interned since declarations are compared and hashed far more
// often than they are created.
type Declaration struct {
	h unique.Handle[string]
}

// ParseDeclaration validates and normalizes a fully qualified type name.
// Hierarchical separators ("\" and "/") are normalized to ".", so
// App\Controller, App/Controller and App.Controller name the same declaration.
func ParseDeclaration(name string) (Declaration, error) {
	normalized := normalizeName(name)
	if err := validateName(normalized); err != nil {
		return Declaration{}, zerr.With(err, "declaration", name)
	}
	return Declaration{h: unique.Make(normalized)}, nil
}

// MustDeclaration is like ParseDeclaration but panics on invalid names.
// It is intended for tests and static declarations.
func MustDeclaration(name string) Declaration {
	d, err := ParseDeclaration(name)
	if err != nil {
		panic(err)
	}
	return d
}

// String returns the normalized name.
func (d Declaration) String() string {
	var zero unique.Handle[string]
	if d.h == zero {
		return ""
	}
	return d.h.Value()
}

// IsZero reports whether d is the zero Declaration.
func (d Declaration) IsZero() bool {
	var zero unique.Handle[string]
	return d.h == zero
}

// MarshalText implements encoding.TextMarshaler.
func (d Declaration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Declaration) UnmarshalText(text []byte) error {
	parsed, err := ParseDeclaration(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `\/`)
	return strings.NewReplacer(`\`, ".", "/", ".").Replace(name)
}

func validateName(name string) error {
	if name == "" {
		return ErrInvalidDeclaration
	}
	if strings.ContainsAny(name, reservedChars) || strings.ContainsFunc(name, isSpace) {
		return ErrInvalidDeclaration
	}
	return nil
}

// ValidateMemberName checks that a property or method name can be used in a cache key.
func ValidateMemberName(name string) error {
	if name == "" || strings.ContainsAny(name, reservedChars) || strings.ContainsFunc(name, isSpace) {
		return zerr.With(ErrInvalidMember, "member", name)
	}
	return nil
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
