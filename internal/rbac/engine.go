package rbac

import (
	"fmt"
)

type compiledRule struct {
	pattern pattern
	// nil means every method is allowed
	methods map[string]bool
}

type compiledScope struct {
	pattern pattern
	kind    ScopeKind
	param   int
}

// Checker evaluates requests against a validated Config.
// It is built once and never mutated, so concurrent use needs no locking.
type Checker struct {
	superRole    Role
	selfAlias    string
	validRoles   map[Role]bool
	libraryBound map[Role]bool
	rules      map[Role][]compiledRule
	scopes     []compiledScope
}

// New creates a Checker from a validated Config
func New(cfg Config) (*Checker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rc := &Checker{
		superRole: cfg.SuperRole,
		selfAlias: cfg.SelfAlias,
	}
	rc.buildLookups(cfg)
	return rc, nil
}

// MustNew creates a Checker and panics on invalid config
func MustNew(cfg Config) *Checker {
	rc, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf(errMustNewPanicFmt, err))
	}
	return rc
}

// buildLookups assumes cfg has been validated, so pattern compilation cannot fail
func (rc *Checker) buildLookups(cfg Config) {
	rc.validRoles = make(map[Role]bool, len(cfg.Roles))
	for _, r := range cfg.Roles {
		rc.validRoles[r] = true
	}

	rc.libraryBound = make(map[Role]bool, len(cfg.LibraryBoundRoles))
	for _, r := range cfg.LibraryBoundRoles {
		rc.libraryBound[r] = true
	}

	rc.rules = make(map[Role][]compiledRule, len(cfg.Rules))
	for role, rules := range cfg.Rules {
		compiled := make([]compiledRule, 0, len(rules))
		for _, rule := range rules {
			p, _ := compilePattern(rule.Pattern)
			cr := compiledRule{pattern: p}
			if len(rule.Methods) > 0 {
				cr.methods = make(map[string]bool, len(rule.Methods))
				for _, m := range rule.Methods {
					cr.methods[m] = true
				}
			}
			compiled = append(compiled, cr)
		}
		rc.rules[role] = compiled
	}

	rc.scopes = make([]compiledScope, 0, len(cfg.ScopedRoutes))
	for _, sr := range cfg.ScopedRoutes {
		p, _ := compilePattern(sr.Pattern)
		rc.scopes = append(rc.scopes, compiledScope{
			pattern: p,
			kind:    sr.Kind,
			param:   p.index(sr.Param),
		})
	}
}

// IsAllowed reports whether any rule of role matches path and method.
// Unknown roles and unmatched requests are denied.
func (rc *Checker) IsAllowed(role Role, path, method string) bool {
	rules, ok := rc.rules[role]
	if !ok {
		return false
	}

	parts := splitPath(path)
	for _, rule := range rules {
		if !rule.pattern.matches(parts) {
			continue
		}
		if rule.methods == nil || rule.methods[method] {
			return true
		}
	}
	return false
}

// Authorize is the error-returning form of IsAllowed
func (rc *Checker) Authorize(role Role, path, method string) error {
	if role == "" {
		return fmt.Errorf("%w: %s", ErrDenied, errDeniedRoleEmpty)
	}
	if !rc.IsAllowed(role, path, method) {
		return fmt.Errorf("%w: "+errDeniedNoMatchingRuleFmt, ErrDenied, role, method, path)
	}
	return nil
}

// ScopeFor returns the scope check path requires, if any.
// Scoped patterns are expected not to overlap; the first match wins.
func (rc *Checker) ScopeFor(path string) (ScopeMatch, bool) {
	parts := splitPath(path)
	for _, s := range rc.scopes {
		if s.pattern.matches(parts) {
			return ScopeMatch{
				Kind:    s.kind,
				Pattern: s.pattern.raw,
				Value:   parts[s.param],
			}, true
		}
	}
	return ScopeMatch{}, false
}

// ValidateRole validates a role string against configured roles
func (rc *Checker) ValidateRole(role string) (Role, error) {
	r := Role(role)
	if rc.validRoles[r] {
		return r, nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidRole, role)
}

// IsSuperRole reports whether role overrides scope checks
func (rc *Checker) IsSuperRole(role Role) bool {
	return rc.superRole != "" && role == rc.superRole
}

// IsLibraryBound reports whether role is confined to the library in its claim
func (rc *Checker) IsLibraryBound(role Role) bool {
	return rc.libraryBound[role]
}

// SelfAlias returns the segment that stands for the caller's own id
func (rc *Checker) SelfAlias() string {
	return rc.selfAlias
}
