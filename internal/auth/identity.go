package auth

import (
	"context"

	"library-service/internal/rbac"
	apperrors "library-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

// Identity is the verified caller attached to an admitted request.
type Identity struct {
	UserID    int64
	Role      rbac.Role
	LibraryID *int64
	// TargetUserID is the resolved id of a self-scoped route, with the
	// self alias already substituted.
	TargetUserID *int64
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok && id != nil
}

func GetIdentity(c echo.Context) (*Identity, error) {
	id, ok := IdentityFromContext(c.Request().Context())
	if !ok {
		return nil, apperrors.Unauthorized(msgUserNotAuthenticated)
	}
	return id, nil
}

func GetUserID(c echo.Context) (int64, error) {
	userID := c.Get(ContextKeyUserID)
	if userID == nil {
		return 0, apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	id, ok := userID.(int64)
	if !ok {
		return 0, apperrors.InternalServer(msgInvalidUserIDCtx, nil)
	}

	return id, nil
}

func GetUserRole(c echo.Context) (rbac.Role, error) {
	role := c.Get(ContextKeyUserRole)
	if role == nil {
		return "", apperrors.Unauthorized(msgUserNotAuthenticated)
	}

	r, ok := role.(rbac.Role)
	if !ok {
		return "", apperrors.InternalServer(msgInvalidRoleCtx, nil)
	}

	return r, nil
}

// GetTargetUserID returns the resolved id of a self-scoped route.
func GetTargetUserID(c echo.Context) (int64, error) {
	target := c.Get(ContextKeyTargetUserID)
	if target == nil {
		return 0, apperrors.BadRequest(msgTargetUserNotResolved)
	}

	id, ok := target.(int64)
	if !ok {
		return 0, apperrors.InternalServer(msgInvalidTargetUserIDCtx, nil)
	}

	return id, nil
}
