package rbac

import (
	"fmt"
	"net/http"
	"strings"
)

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// Config holds the static authorization table
type Config struct {
	Roles []Role
	// SuperRole bypasses every scope check
	SuperRole Role
	// SelfAlias is the path segment that addresses the caller's own record
	SelfAlias string
	// LibraryBoundRoles may only reach library-scoped routes of their own library
	LibraryBoundRoles []Role
	Rules             map[Role][]Rule
	ScopedRoutes      []ScopedRoute
}

// Validate checks internal consistency of the Config
func (c *Config) Validate() error {
	if len(c.Roles) == 0 {
		return fmt.Errorf(errConfigRolesEmpty)
	}
	if len(c.Rules) == 0 {
		return fmt.Errorf(errConfigRulesEmpty)
	}

	roleNames := make(map[Role]bool, len(c.Roles))
	for _, r := range c.Roles {
		if r == "" {
			return fmt.Errorf(errConfigRoleNameEmpty)
		}
		if roleNames[r] {
			return fmt.Errorf(errConfigDuplicateRoleNameFmt, r)
		}
		roleNames[r] = true
	}

	if c.SuperRole != "" && !roleNames[c.SuperRole] {
		return fmt.Errorf(errConfigSuperRoleUnknownFmt, c.SuperRole)
	}

	for _, r := range c.LibraryBoundRoles {
		if !roleNames[r] {
			return fmt.Errorf(errConfigLibraryBoundUnknownFmt, r)
		}
	}

	if c.SelfAlias == "" || strings.Contains(c.SelfAlias, pathSeparator) || strings.HasPrefix(c.SelfAlias, wildcardPrefix) {
		return fmt.Errorf(errConfigSelfAliasInvalidFmt, c.SelfAlias)
	}

	for role, rules := range c.Rules {
		if !roleNames[role] {
			return fmt.Errorf(errConfigRuleUnknownRoleFmt, role)
		}
		for _, rule := range rules {
			if _, err := compilePattern(rule.Pattern); err != nil {
				return fmt.Errorf(errConfigRulePatternFmt, role, err)
			}
			for _, m := range rule.Methods {
				if !knownMethods[m] {
					return fmt.Errorf(errConfigRuleMethodUnknownFmt, role, rule.Pattern, m)
				}
			}
		}
	}

	scoped := make(map[string]bool, len(c.ScopedRoutes))
	for _, sr := range c.ScopedRoutes {
		p, err := compilePattern(sr.Pattern)
		if err != nil {
			return fmt.Errorf(errConfigScopePatternFmt, err)
		}
		if sr.Kind != ScopeSelf && sr.Kind != ScopeLibrary {
			return fmt.Errorf(errConfigScopeKindUnknownFmt, sr.Pattern, sr.Kind)
		}
		if p.index(sr.Param) < 0 {
			return fmt.Errorf(errConfigScopeParamMissingFmt, sr.Pattern, sr.Param)
		}
		if scoped[sr.Pattern] {
			return fmt.Errorf(errConfigDuplicateScopedPatternFmt, sr.Pattern)
		}
		scoped[sr.Pattern] = true
	}

	return nil
}
