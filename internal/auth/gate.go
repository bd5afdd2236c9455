package auth

import (
	"errors"

	"library-service/internal/rbac"
)

// CredentialVerifier turns a raw session token into verified claims.
type CredentialVerifier interface {
	Verify(token string) (*Claims, error)
}

// Policy is the role-to-route permission table plus its scope metadata.
type Policy interface {
	ScopeChecker
	Authorize(role rbac.Role, path, method string) error
}

// Request is the part of an inbound request the gate decides on.
type Request struct {
	Method string
	Path   string
	Token  string
}

type Outcome string

const (
	OutcomeBypass     Outcome = "bypass"
	OutcomeAuthorized Outcome = "authorized"
	OutcomeRejected   Outcome = "rejected"
)

// Decision is the result of running a request through the gate. Identity is
// set only when Outcome is OutcomeAuthorized and Rejection only when it is
// OutcomeRejected.
type Decision struct {
	Outcome   Outcome
	Identity  *Identity
	Rejection *Rejection
}

// Gate runs verification, permission and scope checks in that order and
// stops at the first failure.
type Gate struct {
	verifier CredentialVerifier
	policy   Policy
	public   map[string]bool
}

func NewGate(verifier CredentialVerifier, policy Policy, publicRoutes []string) *Gate {
	public := make(map[string]bool, len(publicRoutes))
	for _, p := range publicRoutes {
		public[p] = true
	}
	return &Gate{
		verifier: verifier,
		policy:   policy,
		public:   public,
	}
}

// IsPublic reports whether path is on the allow-list. Matching is exact.
func (g *Gate) IsPublic(path string) bool {
	return g.public[path]
}

func (g *Gate) Authorize(req Request) Decision {
	if g.IsPublic(req.Path) {
		return Decision{Outcome: OutcomeBypass}
	}

	claims, err := g.verifier.Verify(req.Token)
	if err != nil {
		if errors.Is(err, ErrMissingCredential) {
			return reject(ReasonMissingCredential, err)
		}
		return reject(ReasonBadCredential, err)
	}

	if err := g.policy.Authorize(claims.Role, req.Path, req.Method); err != nil {
		return reject(ReasonInsufficientPermission, err)
	}

	scope, err := ResolveScope(g.policy, claims, req.Path)
	if err != nil {
		return reject(ReasonForbiddenScope, err)
	}

	return Decision{Outcome: OutcomeAuthorized, Identity: newIdentity(claims, scope)}
}

func reject(reason Reason, cause error) Decision {
	return Decision{Outcome: OutcomeRejected, Rejection: newRejection(reason, cause)}
}

func newIdentity(claims *Claims, scope *ScopeResult) *Identity {
	id := &Identity{
		UserID: claims.UserID,
		Role:   claims.Role,
	}
	if claims.LibraryID != nil {
		lib := *claims.LibraryID
		id.LibraryID = &lib
	}
	if scope != nil && scope.Kind == rbac.ScopeSelf {
		id.TargetUserID = scope.TargetID
	}
	return id
}
