package ports

import "go.trai.ch/annocache/internal/core/domain"

// DeclarationGraph exposes where declarations live and what they derive from.
//
//go:generate go run go.uber.org/mock/mockgen -source=graph.go -destination=mocks/mock_graph.go -package=mocks
type DeclarationGraph interface {
	// SourceArtifact returns the identity of the artifact declaring decl.
	// It reports false for declarations without a discoverable source.
	SourceArtifact(decl domain.Declaration) (string, bool)

	// ModificationTime returns the modification time of the artifact in
	// seconds since the epoch, or 0 if it is unavailable.
	ModificationTime(artifact string) int64

	// Ancestor returns the direct ancestor of decl, if any.
	Ancestor(decl domain.Declaration) (domain.Declaration, bool)

	// ComposableUnits returns the units decl pulls in directly.
	ComposableUnits(decl domain.Declaration) []domain.Declaration

	// Interfaces returns the interfaces decl implements directly.
	Interfaces(decl domain.Declaration) []domain.Declaration
}

// AnnotationSource is implemented by graphs whose annotations are read from
// an artifact other than the declaring source, such as a manifest. That
// artifact counts towards the latest modification of the declaration.
type AnnotationSource interface {
	// AnnotationArtifact returns the identity of the artifact the annotations
	// of decl are read from.
	AnnotationArtifact(decl domain.Declaration) (string, bool)
}
