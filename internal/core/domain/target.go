package domain

// TargetKind distinguishes the annotation namespaces of a declaration.
type TargetKind uint8

const (
	// KindClass targets the declaration itself.
	KindClass TargetKind = iota
	// KindProperty targets a property of the declaration.
	KindProperty
	// KindMethod targets a method of the declaration.
	KindMethod
)

// String returns the lower-case name of the kind.
func (k TargetKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindProperty:
		return "property"
	case KindMethod:
		return "method"
	default:
		return "unknown"
	}
}

// Target is a declaration, optionally narrowed to one of its members.
// A property and a method may share a name; Kind keeps them apart.
type Target struct {
	Declaration Declaration
	Member      string
	Kind        TargetKind
}

// ClassTarget returns the target for the declaration itself.
func ClassTarget(decl Declaration) Target {
	return Target{Declaration: decl, Kind: KindClass}
}

// PropertyTarget returns the target for a property of decl.
func PropertyTarget(decl Declaration, name string) Target {
	return Target{Declaration: decl, Member: name, Kind: KindProperty}
}

// MethodTarget returns the target for a method of decl.
func MethodTarget(decl Declaration, name string) Target {
	return Target{Declaration: decl, Member: name, Kind: KindMethod}
}

// Validate checks the target can be keyed.
func (t Target) Validate() error {
	if t.Declaration.IsZero() {
		return ErrInvalidDeclaration
	}
	switch t.Kind {
	case KindClass:
		return nil
	case KindProperty, KindMethod:
		return ValidateMemberName(t.Member)
	default:
		return ErrInvalidMember
	}
}

// String returns a human-readable form such as "App.Controller::index()".
func (t Target) String() string {
	switch t.Kind {
	case KindProperty:
		return t.Declaration.String() + "::$" + t.Member
	case KindMethod:
		return t.Declaration.String() + "::" + t.Member + "()"
	default:
		return t.Declaration.String()
	}
}
