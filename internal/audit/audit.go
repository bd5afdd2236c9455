package audit

import (
	"context"
	"encoding/json"
	"time"

	"library-service/internal/auth"
	"library-service/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

// Action is the kind of change recorded in the action log
type Action string

const (
	ActionUserLogin          Action = "USER_LOGIN"
	ActionUserRegister       Action = "USER_REGISTER"
	ActionUserUpdate         Action = "USER_UPDATE"
	ActionUserDelete         Action = "USER_DELETE"
	ActionLibraryCreated     Action = "LIBRARY_CREATED"
	ActionLibraryUpdated     Action = "LIBRARY_UPDATED"
	ActionLibraryDeleted     Action = "LIBRARY_DELETED"
	ActionManagerAssigned    Action = "MANAGER_ASSIGNED"
	ActionManagerRemoved     Action = "MANAGER_REMOVED"
	ActionBookCreated        Action = "BOOK_CREATED"
	ActionBookUpdated        Action = "BOOK_UPDATED"
	ActionBookDeleted        Action = "BOOK_DELETED"
	ActionLoanCreated        Action = "LOAN_CREATED"
	ActionLoanReturned       Action = "LOAN_RETURNED"
	ActionReservationCreated Action = "RESERVATION_CREATED"
	ActionPenaltyIssued      Action = "PENALTY_ISSUED"
)

const writeTimeout = 2 * time.Second

// Entry is one row of the action log
type Entry struct {
	UserID    *int64
	Action    Action
	Details   map[string]any
	CreatedAt time.Time
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Logger handles action logging
type Logger struct {
	db  execer
	log observability.Logger
}

// NewLogger creates a new action logger over a pgx pool or connection
func NewLogger(db execer, log observability.Logger) *Logger {
	if log == nil {
		log = observability.NopLogger()
	}
	return &Logger{db: db, log: log}
}

// Log records an entry synchronously
func (l *Logger) Log(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var details []byte
	if entry.Details != nil {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return err
		}
	}

	query := `
		INSERT INTO action_logs (user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := l.db.Exec(ctx, query, entry.UserID, entry.Action, details, entry.CreatedAt)
	return err
}

// Record logs an action for the caller of c without blocking the request.
// Failures are logged and never reach the client.
func (l *Logger) Record(c echo.Context, action Action, userID *int64, details map[string]any) {
	if userID == nil {
		if id, err := auth.GetUserID(c); err == nil {
			userID = &id
		}
	}

	entry := Entry{
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now(),
	}
	requestID := c.Response().Header().Get(echo.HeaderXRequestID)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := l.Log(ctx, entry); err != nil {
			l.log.Warn("action log write failed",
				observability.String("action", string(action)),
				observability.String("request_id", requestID),
				observability.Error(err),
			)
		}
	}()
}
