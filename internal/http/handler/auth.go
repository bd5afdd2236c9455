package handler

import (
	"errors"
	"net/http"
	"strings"

	"library-service/internal/audit"
	"library-service/internal/auth"
	"library-service/internal/domain/user"
	"library-service/internal/observability"
	"library-service/internal/rbac"
	"library-service/internal/rbac/presets"
	apperrors "library-service/pkg/errors"
	"library-service/pkg/logger"
	"library-service/pkg/password"
	"library-service/pkg/validator"

	"github.com/labstack/echo/v4"
)

// Pre-computed bcrypt hash (cost 12) used to equalize timing on failed lookups.
const dummyBcryptHash = "$2a$12$dWR5CQpS4zNHLavLSIr4o.P6QDQEUJKv7mJ7WekUHHqyRSRMJzH0S"

// CookieOptions controls the session cookie set at login
type CookieOptions struct {
	Name   string
	Domain string
	Secure bool
}

type AuthHandler struct {
	userRepo UserRepository
	tokens   TokenIssuer
	actions  ActionRecorder
	cookie   CookieOptions
	logger   observability.Logger
}

func NewAuthHandler(userRepo UserRepository, tokens TokenIssuer, actions ActionRecorder, cookie CookieOptions, log observability.Logger) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = auth.DefaultCookieName
	}
	if log == nil {
		log = observability.NopLogger()
	}
	return &AuthHandler{
		userRepo: userRepo,
		tokens:   tokens,
		actions:  actions,
		cookie:   cookie,
		logger:   log,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionUser struct {
	UserID    int64     `json:"userId"`
	Role      rbac.Role `json:"role"`
	LibraryID *int64    `json:"libraryId,omitempty"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    SessionUser `json:"user"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    user.Profile `json:"user"`
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = normalizeEmail(req.Email)
	if req.Email == "" || req.Password == "" {
		return respondError(c, http.StatusBadRequest, msgEmailPasswordRequired)
	}

	ctx := c.Request().Context()
	u, err := h.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Run bcrypt against a dummy hash so unknown emails take as long as wrong passwords.
		password.Verify(req.Password, dummyBcryptHash)
		if !errors.Is(err, apperrors.ErrNotFound) {
			h.logger.Error("login lookup failed", observability.String("email", logger.MaskEmail(req.Email)), observability.Error(err))
			return respondError(c, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		}
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		h.logger.Info("login rejected", observability.String("email", logger.MaskEmail(req.Email)))
		return respondError(c, http.StatusUnauthorized, msgInvalidCredentials)
	}

	token, err := h.tokens.Generate(auth.Subject{
		UserID:    u.ID,
		Email:     u.Email,
		Role:      u.Role,
		LibraryID: u.LibraryID,
	})
	if err != nil {
		h.logger.Error("token generation failed", observability.Int64("user_id", u.ID), observability.Error(err))
		return respondError(c, http.StatusInternalServerError, msgGenerateTokenFail)
	}

	if err := h.userRepo.UpdateLastConnected(ctx, u.ID); err != nil {
		h.logger.Warn("last connection update failed", observability.Int64("user_id", u.ID), observability.Error(err))
	}

	c.SetCookie(h.sessionCookie(token, int(h.tokens.Expiry().Seconds())))
	h.actions.Record(c, audit.ActionUserLogin, &u.ID, nil)

	return c.JSON(http.StatusOK, LoginResponse{
		Message: msgLoginSuccess,
		Token:   token,
		User: SessionUser{
			UserID:    u.ID,
			Role:      u.Role,
			LibraryID: u.LibraryID,
		},
	})
}

// Register creates a CLIENT account. Other roles are provisioned by administrators.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindStrictJSON(c, &req); err != nil {
		return handleHTTPError(c, err)
	}

	req.Email = normalizeEmail(req.Email)
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Phone = strings.TrimSpace(req.Phone)

	if err := validateRegistration(req); err != nil {
		return respondError(c, http.StatusBadRequest, err.Error())
	}

	passwordHash, err := password.Hash(req.Password)
	if err != nil {
		return respondError(c, http.StatusInternalServerError, msgPasswordProcessFail)
	}

	var phone *string
	if req.Phone != "" {
		phone = &req.Phone
	}

	u, err := h.userRepo.Create(c.Request().Context(), user.CreateUserInput{
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        phone,
		Role:         presets.RoleClient,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailExists) {
			return respondError(c, http.StatusConflict, msgEmailAlreadyExists)
		}
		h.logger.Error("account creation failed", observability.String("email", logger.MaskEmail(req.Email)), observability.Error(err))
		return respondError(c, http.StatusInternalServerError, msgCreateAccountFail)
	}

	h.actions.Record(c, audit.ActionUserRegister, &u.ID, map[string]any{"role": string(u.Role)})

	return c.JSON(http.StatusCreated, RegisterResponse{
		Message: msgRegisterSuccess,
		User:    u.Profile(),
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -1))
	return respondMessage(c, http.StatusOK, msgLogoutSuccess)
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookie.Name,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   maxAge,
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func validateRegistration(req RegisterRequest) error {
	if err := validator.Email(req.Email); err != nil {
		return err
	}
	if err := validator.Password(req.Password); err != nil {
		return err
	}
	if err := validator.PersonName("firstName", req.FirstName); err != nil {
		return err
	}
	if err := validator.PersonName("lastName", req.LastName); err != nil {
		return err
	}
	return validator.Phone(req.Phone)
}
