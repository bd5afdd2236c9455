package handler

import (
	"context"
	"time"

	"library-service/internal/audit"
	"library-service/internal/auth"
	"library-service/internal/domain/user"

	"github.com/labstack/echo/v4"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

// AuthHandler interfaces
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, input user.CreateUserInput) (*user.User, error)
	UpdateLastConnected(ctx context.Context, id int64) error
}

type TokenIssuer interface {
	Generate(sub auth.Subject) (string, error)
	Expiry() time.Duration
}

type ActionRecorder interface {
	Record(c echo.Context, action audit.Action, userID *int64, details map[string]any)
}

// UserHandler interfaces
type UserGetter interface {
	GetByID(ctx context.Context, id int64) (*user.User, error)
}
