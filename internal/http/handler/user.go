package handler

import (
	"errors"
	"net/http"

	"library-service/internal/auth"
	apperrors "library-service/pkg/errors"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	users UserGetter
}

func NewUserHandler(users UserGetter) *UserHandler {
	return &UserHandler{users: users}
}

// GetUser serves both /api/users/me and /api/users/:id. The record is looked
// up by the target id resolved by the gate, never by the raw path segment.
func (h *UserHandler) GetUser(c echo.Context) error {
	targetID, err := auth.GetTargetUserID(c)
	if err != nil {
		return RespondWithMappedError(c, err)
	}

	u, err := h.users.GetByID(c.Request().Context(), targetID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return respondError(c, http.StatusNotFound, msgUserNotFound)
		}
		c.Logger().Errorf("load user %d: %v", targetID, err)
		return respondError(c, http.StatusInternalServerError, msgLoadUserFail)
	}

	return c.JSON(http.StatusOK, u.Profile())
}
