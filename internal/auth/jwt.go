package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"library-service/internal/rbac"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrBadCredential     = errors.New("bad credential")
)

// Claims is the identity carried inside a session token.
type Claims struct {
	UserID    int64     `json:"id"`
	Email     string    `json:"email"`
	Role      rbac.Role `json:"role"`
	LibraryID *int64    `json:"libraryId,omitempty"`
	jwt.RegisteredClaims
}

// Subject describes the user a token is issued for.
type Subject struct {
	UserID    int64
	Email     string
	Role      rbac.Role
	LibraryID *int64
}

// RoleValidator resolves a role name against the configured role set.
type RoleValidator interface {
	ValidateRole(role string) (rbac.Role, error)
}

type JWTService struct {
	secret []byte
	expiry time.Duration
	roles  RoleValidator
}

func NewJWTService(secret string, expiry time.Duration, roles RoleValidator) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		expiry: expiry,
		roles:  roles,
	}
}

// Expiry is the lifetime of issued tokens.
func (s *JWTService) Expiry() time.Duration {
	return s.expiry
}

func (s *JWTService) Generate(sub Subject) (string, error) {
	if sub.UserID <= 0 {
		return "", errors.New(msgInvalidSubject)
	}
	if _, err := s.roles.ValidateRole(string(sub.Role)); err != nil {
		return "", err
	}

	now := time.Now()
	claims := Claims{
		UserID:    sub.UserID,
		Email:     sub.Email,
		Role:      sub.Role,
		LibraryID: sub.LibraryID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token signature, expiry and claim shape. A blank token
// yields ErrMissingCredential; every other failure wraps ErrBadCredential.
func (s *JWTService) Verify(tokenString string) (claims *Claims, err error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrMissingCredential
	}

	defer func() {
		if r := recover(); r != nil {
			claims = nil
			err = fmt.Errorf("%w: "+msgVerifierPanic, ErrBadCredential, r)
		}
	}()

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf(msgUnexpectedSigningMethod, token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadCredential, err)
	}

	parsed, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: %s", ErrBadCredential, msgInvalidTokenClaims)
	}
	if parsed.UserID <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrBadCredential, msgInvalidSubject)
	}
	if parsed.LibraryID != nil && *parsed.LibraryID <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrBadCredential, msgInvalidLibraryClaim)
	}

	role, err := s.roles.ValidateRole(string(parsed.Role))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadCredential, err)
	}
	parsed.Role = role

	return parsed, nil
}
