package rbac

// Role represents a caller's permission class
type Role string

// ScopeKind identifies the fine-grained check a scoped route requires
type ScopeKind string

const (
	ScopeSelf    ScopeKind = "self"
	ScopeLibrary ScopeKind = "library"
)

// Rule grants a role access to a path pattern.
// Pattern segments starting with ':' match exactly one non-empty path segment.
// An empty Methods list allows every method.
type Rule struct {
	Pattern string
	Methods []string
}

// ScopedRoute marks a path pattern whose Param segment must pass a scope check
type ScopedRoute struct {
	Pattern string
	Kind    ScopeKind
	Param   string
}

// ScopeMatch is the result of matching a concrete path against the scoped routes
type ScopeMatch struct {
	Kind    ScopeKind
	Pattern string
	Value   string
}
