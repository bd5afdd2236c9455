package auth

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "library-service/pkg/errors"
)

// Reason is the client-visible rejection category.
type Reason string

const (
	ReasonMissingCredential      Reason = "MissingCredential"
	ReasonBadCredential          Reason = "BadCredential"
	ReasonInsufficientPermission Reason = "InsufficientPermission"
	ReasonForbiddenScope         Reason = "ForbiddenScope"
)

// Scope failures are reported to clients as ReasonForbiddenScope. The
// distinction is kept for logs and metrics only.
var (
	ErrForbiddenSelfAccess   = errors.New("ForbiddenSelfAccess")
	ErrForbiddenLibraryScope = errors.New("ForbiddenLibraryScope")
)

// Rejection is a denied decision. Err carries the internal cause and must
// never be sent to the client.
type Rejection struct {
	Status int
	Reason Reason
	Err    error
}

func newRejection(reason Reason, cause error) *Rejection {
	return &Rejection{Status: reason.Status(), Reason: reason, Err: cause}
}

func (r *Rejection) Error() string {
	return fmt.Sprintf(msgRejectionFmt, r.Reason, r.Status, r.Err)
}

// Unwrap exposes both the application error class and the internal cause.
func (r *Rejection) Unwrap() []error {
	class := apperrors.ErrForbidden
	if r.Status == http.StatusUnauthorized {
		class = apperrors.ErrUnauthorized
	}
	return []error{class, r.Err}
}

// Detail is the internal sub-reason used for logs and metrics.
func (r *Rejection) Detail() string {
	switch {
	case errors.Is(r.Err, ErrForbiddenSelfAccess):
		return ErrForbiddenSelfAccess.Error()
	case errors.Is(r.Err, ErrForbiddenLibraryScope):
		return ErrForbiddenLibraryScope.Error()
	}
	return string(r.Reason)
}

// Status maps the reason to its HTTP status code.
func (r Reason) Status() int {
	switch r {
	case ReasonMissingCredential, ReasonBadCredential:
		return http.StatusUnauthorized
	default:
		return http.StatusForbidden
	}
}

// Message is the generic text shown to clients.
func (r Reason) Message() string {
	switch r {
	case ReasonMissingCredential:
		return msgMissingCredential
	case ReasonBadCredential:
		return msgBadCredential
	case ReasonInsufficientPermission:
		return msgInsufficientPermission
	default:
		return msgForbiddenScope
	}
}
