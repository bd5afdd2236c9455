package audit

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"library-service/internal/auth"
	"library-service/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type recordingExecer struct {
	mu    sync.Mutex
	args  [][]any
	err   error
	calls chan struct{}
}

func newRecordingExecer(err error) *recordingExecer {
	return &recordingExecer{err: err, calls: make(chan struct{}, 8)}
}

func (e *recordingExecer) Exec(_ context.Context, _ string, args ...any) (pgconn.CommandTag, error) {
	e.mu.Lock()
	e.args = append(e.args, args)
	e.mu.Unlock()
	e.calls <- struct{}{}
	return pgconn.NewCommandTag("INSERT 0 1"), e.err
}

func (e *recordingExecer) wait(t *testing.T) {
	t.Helper()
	select {
	case <-e.calls:
	case <-time.After(time.Second):
		t.Fatal("action log write not attempted")
	}
}

func TestLogger_Log(t *testing.T) {
	db := newRecordingExecer(nil)
	l := NewLogger(db, nil)
	uid := int64(5)

	err := l.Log(context.Background(), Entry{UserID: &uid, Action: ActionBookCreated, Details: map[string]any{"bookId": 9}})
	require.NoError(t, err)

	require.Len(t, db.args, 1)
	args := db.args[0]
	assert.Equal(t, &uid, args[0])
	assert.Equal(t, ActionBookCreated, args[1])

	var details map[string]any
	require.NoError(t, json.Unmarshal(args[2].([]byte), &details))
	assert.Equal(t, float64(9), details["bookId"])
	assert.False(t, args[3].(time.Time).IsZero())
}

func TestLogger_LogWithoutDetails(t *testing.T) {
	db := newRecordingExecer(nil)
	require.NoError(t, NewLogger(db, nil).Log(context.Background(), Entry{Action: ActionUserLogin}))
	assert.Nil(t, db.args[0][2])
}

func TestLogger_RecordUsesCallerIdentity(t *testing.T) {
	db := newRecordingExecer(nil)
	l := NewLogger(db, nil)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPatch, "/api/books/1", nil), httptest.NewRecorder())
	c.Set(auth.ContextKeyUserID, int64(42))

	l.Record(c, ActionBookUpdated, nil, nil)
	db.wait(t)

	db.mu.Lock()
	defer db.mu.Unlock()
	require.Len(t, db.args, 1)
	assert.Equal(t, int64(42), *db.args[0][0].(*int64))
}

func TestLogger_RecordFailureIsLogged(t *testing.T) {
	db := newRecordingExecer(errors.New("relation action_logs does not exist"))
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLogger(db, observability.NewFromZap(zap.New(core)))

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), httptest.NewRecorder())
	uid := int64(1)

	l.Record(c, ActionUserLogin, &uid, nil)
	db.wait(t)

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("action log write failed").Len() == 1
	}, time.Second, 10*time.Millisecond)
}
