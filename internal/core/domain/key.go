package domain

import "strings"

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

const (
	// PropertySeparator separates a declaration from a property name in a key.
	PropertySeparator = "$"
	// MethodSeparator separates a declaration from a method name in a key.
	MethodSeparator = "#"
	// MarkerPrefix prefixes the freshness marker key of a cache entry.
	MarkerPrefix = "[C]"
)

// ClassKey returns the cache key of a declaration.
func ClassKey(decl Declaration) string {
	return decl.String()
}

// MemberKey returns the cache key of a property or method of decl.
// For KindClass the member name is ignored.
func MemberKey(decl Declaration, member string, kind TargetKind) string {
	switch kind {
	case KindProperty:
		return decl.String() + PropertySeparator + member
	case KindMethod:
		return decl.String() + MethodSeparator + member
	default:
		return ClassKey(decl)
	}
}

// Key returns the cache key of a target.
func Key(t Target) string {
	return MemberKey(t.Declaration, t.Member, t.Kind)
}

// MarkerKey returns the key under which the freshness marker of key is stored.
// Declaration names never start with "[", so a marker key never collides with
// a cache key.
func MarkerKey(key string) string {
	return MarkerPrefix + key
}

// IsMarkerKey reports whether key is a freshness marker key.
func IsMarkerKey(key string) bool {
	return strings.HasPrefix(key, MarkerPrefix)
}

// ValidateKey checks if a key can be handed to an item pool.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
