package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func checkHealth(t *testing.T, h *HealthHandler) (int, HealthResponse) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.CheckHealth(c))

	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestCheckHealth_Healthy(t *testing.T) {
	t.Parallel()

	h := &HealthHandler{Handler: NewHandler(testServer()), db: fakePinger{}}
	status, body := checkHealth(t, h)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, StatusHealthy, body.Status)
	assert.Equal(t, DatabaseConnected, body.Database)
	assert.Equal(t, "test", body.Environment)
	assert.Equal(t, StatusHealthy, body.Checks["database"].Status)
}

func TestCheckHealth_DatabaseDown(t *testing.T) {
	t.Parallel()

	h := &HealthHandler{Handler: NewHandler(testServer()), db: fakePinger{err: errors.New("connection refused")}}
	status, body := checkHealth(t, h)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, StatusUnhealthy, body.Status)
	assert.Equal(t, DatabaseDisconnected, body.Database)
	assert.Equal(t, "connection refused", body.Checks["database"].Error)
}

func TestCheckHealth_NoDatabase(t *testing.T) {
	t.Parallel()

	status, body := checkHealth(t, NewHealthHandler(testServer()))

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, DatabaseDisconnected, body.Database)
}

func TestCheckHealth_RedisIsNotFatal(t *testing.T) {
	t.Parallel()

	s := testServer()
	s.Config.Observability.HealthChecks.Enabled = true
	s.Config.Observability.HealthChecks.Checks = []string{"redis"}

	h := &HealthHandler{
		Handler: NewHandler(s),
		db:      fakePinger{},
		redis:   fakePinger{err: errors.New("redis down")},
	}
	status, body := checkHealth(t, h)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, StatusHealthy, body.Status)
	assert.Equal(t, StatusUnhealthy, body.Checks["redis"].Status)
}

func TestRedisPinger(t *testing.T) {
	t.Parallel()

	client, mock := redismock.NewClientMock()
	p := redisPinger{client: client}

	mock.ExpectPing().SetVal("PONG")
	require.NoError(t, p.Ping(context.Background()))

	mock.ExpectPing().SetErr(errors.New("dial tcp: connection refused"))
	assert.Error(t, p.Ping(context.Background()))

	require.NoError(t, mock.ExpectationsWereMet())
}

type slowPinger struct {
	calls atomic.Int32
}

func (p *slowPinger) Ping(context.Context) error {
	p.calls.Add(1)
	time.Sleep(50 * time.Millisecond)
	return nil
}

func TestCheckHealth_ConcurrentRequestsShared(t *testing.T) {
	t.Parallel()

	db := &slowPinger{}
	h := &HealthHandler{Handler: NewHandler(testServer()), db: db}
	e := echo.New()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
			assert.NoError(t, h.CheckHealth(c))
			assert.Equal(t, http.StatusOK, rec.Code)
		}()
	}
	wg.Wait()

	assert.Less(t, db.calls.Load(), int32(10))
}
