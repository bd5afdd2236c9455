package auth

import (
	"fmt"
	"strconv"

	"library-service/internal/rbac"
)

// ScopeChecker is the subset of the permission policy used by scope checks.
type ScopeChecker interface {
	ScopeFor(path string) (rbac.ScopeMatch, bool)
	IsSuperRole(role rbac.Role) bool
	IsLibraryBound(role rbac.Role) bool
	SelfAlias() string
}

// ScopeResult describes a scope check that admitted the caller.
// TargetID is nil when the requested segment is not a numeric id.
type ScopeResult struct {
	Kind     rbac.ScopeKind
	TargetID *int64
}

// ResolveScope runs the fine-grained check for scoped routes. It returns
// nil, nil for paths that carry no scope.
func ResolveScope(checker ScopeChecker, claims *Claims, path string) (*ScopeResult, error) {
	match, ok := checker.ScopeFor(path)
	if !ok {
		return nil, nil
	}

	override := checker.IsSuperRole(claims.Role)

	switch match.Kind {
	case rbac.ScopeSelf:
		target, err := resolveSelf(claims, match.Value, checker.SelfAlias(), override)
		if err != nil {
			return nil, err
		}
		return &ScopeResult{Kind: match.Kind, TargetID: target}, nil
	case rbac.ScopeLibrary:
		target, err := resolveLibrary(claims, match.Value, override, checker.IsLibraryBound(claims.Role))
		if err != nil {
			return nil, err
		}
		return &ScopeResult{Kind: match.Kind, TargetID: target}, nil
	}

	return nil, fmt.Errorf(msgUnknownScopeKindFmt, rbac.ErrDenied, match.Kind)
}

func resolveSelf(claims *Claims, requested, alias string, override bool) (*int64, error) {
	if requested == alias {
		own := claims.UserID
		return &own, nil
	}

	id, ok := parseID(requested)
	if ok && id == claims.UserID {
		return &id, nil
	}
	if override {
		if ok {
			return &id, nil
		}
		return nil, nil
	}

	return nil, ErrForbiddenSelfAccess
}

func resolveLibrary(claims *Claims, requested string, override, bound bool) (*int64, error) {
	id, ok := parseID(requested)
	if override || !bound {
		if ok {
			return &id, nil
		}
		return nil, nil
	}

	if !ok || claims.LibraryID == nil || *claims.LibraryID != id {
		return nil, ErrForbiddenLibraryScope
	}

	return &id, nil
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
