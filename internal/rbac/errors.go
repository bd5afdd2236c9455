package rbac

import "errors"

var (
	ErrDenied      = errors.New("authorization denied")
	ErrInvalidRole = errors.New("invalid role")
)

const (
	errConfigRolesEmpty                = "rbac config: roles must not be empty"
	errConfigRulesEmpty                = "rbac config: rules must not be empty"
	errConfigRoleNameEmpty             = "rbac config: role name must not be empty"
	errConfigDuplicateRoleNameFmt      = "rbac config: duplicate role name: %s"
	errConfigSuperRoleUnknownFmt       = "rbac config: super role is not a configured role: %s"
	errConfigLibraryBoundUnknownFmt    = "rbac config: library-bound role is not a configured role: %s"
	errConfigSelfAliasInvalidFmt       = "rbac config: self alias %q must be a single non-empty segment"
	errConfigRuleUnknownRoleFmt        = "rbac config: rules reference unknown role: %s"
	errConfigRulePatternFmt            = "rbac config: role %s: %w"
	errConfigRuleMethodUnknownFmt      = "rbac config: role %s pattern %s references unknown method: %s"
	errConfigScopePatternFmt           = "rbac config: scoped route: %w"
	errConfigScopeKindUnknownFmt       = "rbac config: scoped route %s has unknown kind: %s"
	errConfigScopeParamMissingFmt      = "rbac config: scoped route %s has no wildcard named %q"
	errConfigDuplicateScopedPatternFmt = "rbac config: duplicate scoped route: %s"
	errPatternNotAbsoluteFmt           = "pattern %q must start with '/'"
	errPatternEmptySegmentFmt          = "pattern %q contains an empty segment"
	errPatternEmptyWildcardFmt         = "pattern %q contains an unnamed wildcard"
	errPatternDuplicateWildcardFmt     = "pattern %q repeats wildcard %q"
	errMustNewPanicFmt                 = "rbac.MustNew: %v"
	errDeniedRoleEmpty                 = "role is empty"
	errDeniedNoMatchingRuleFmt         = "role '%s' has no rule for %s %s"
)
