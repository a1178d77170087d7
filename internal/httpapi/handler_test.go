package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wagetrack/internal/authsession"
	"wagetrack/internal/clock"
	"wagetrack/internal/logger"
	"wagetrack/internal/repository"
	"wagetrack/internal/service"
)

type apiTest struct {
	router *gin.Engine
	clock  *clock.Fake
	cookie *http.Cookie
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	clk := clock.NewFake(time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC))
	h := NewHandler(
		service.NewWageService(store, clk),
		service.NewSessionService(store, clk),
		service.NewSummaryService(store),
		service.NewUserService(store, clk),
		authsession.NewMemoryStore(),
		time.Hour,
		false,
		logger.New(),
	)
	return &apiTest{router: h.Router(), clock: clk}
}

func (a *apiTest) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if a.cookie != nil {
		req.AddCookie(a.cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *apiTest) login(t *testing.T, userID string) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/api/auth/login", fmt.Sprintf(`{"user_id":%q}`, userID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == authsession.CookieName {
			a.cookie = c
			return
		}
	}
	t.Fatal("login did not set a session cookie")
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestAuth_RequiredForAPI(t *testing.T) {
	api := newAPITest(t)

	w := api.do(t, http.MethodGet, "/api/wage", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_LoginValidatesUserID(t *testing.T) {
	api := newAPITest(t)

	w := api.do(t, http.MethodPost, "/api/auth/login", `{"user_id":"no spaces allowed"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPost, "/api/auth/login", `{"user_id":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuth_LogoutInvalidatesToken(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodGet, "/api/me", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodPost, "/api/auth/logout", "")
	require.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodGet, "/api/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWage_GetUnsetIs404(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodGet, "/api/wage", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWage_SetAndGet(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPut, "/api/wage", `{"hourly_wage":1500}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/wage", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp wageResponse
	decode(t, w, &resp)
	assert.Equal(t, 1500, resp.HourlyWage)
}

func TestWage_SetRejectsNonPositive(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPut, "/api/wage", `{"hourly_wage":0}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodPut, "/api/wage", `{"hourly_wage":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSession_StartStopFlow(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPut, "/api/wage", `{"hourly_wage":2000}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodPost, "/api/sessions/start", "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var started sessionResponse
	decode(t, w, &started)
	assert.Nil(t, started.EndTime)

	// A second start conflicts with the stable message.
	w = api.do(t, http.MethodPost, "/api/sessions/start", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "session already started")

	api.clock.Advance(90 * time.Minute)
	w = api.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/stop", started.ID), "")
	require.Equal(t, http.StatusOK, w.Code)
	var stopped sessionResponse
	decode(t, w, &stopped)
	require.NotNil(t, stopped.EarnedAmount)
	assert.Equal(t, 3000, *stopped.EarnedAmount)

	// Stopping again is a conflict.
	w = api.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/stop", started.ID), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already stopped")
}

func TestSession_StartWithoutWage(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPost, "/api/sessions/start", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "hourly wage is not set")
}

func TestSession_StartWithOverrideWage(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPost, "/api/sessions/start", `{"hourly_wage":2500}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var resp sessionResponse
	decode(t, w, &resp)
	assert.Equal(t, 2500, resp.HourlyWage)
}

func TestSession_StopUnknownIs404(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPost, "/api/sessions/999/stop", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodPost, "/api/sessions/abc/stop", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSession_Current(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodGet, "/api/sessions/current", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(t, http.MethodPost, "/api/sessions/start", `{"hourly_wage":3600}`)
	require.Equal(t, http.StatusCreated, w.Code)

	api.clock.Advance(30 * time.Minute)
	w = api.do(t, http.MethodGet, "/api/sessions/current", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp currentResponse
	decode(t, w, &resp)
	assert.Equal(t, int64(1800), resp.ElapsedSeconds)
	assert.Equal(t, 1800, resp.CurrentEarnedAmount)
}

func TestSession_ListFilters(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPost, "/api/sessions/start", `{"hourly_wage":1000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var s sessionResponse
	decode(t, w, &s)
	api.clock.Advance(time.Hour)
	w = api.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/stop", s.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/sessions?month=2025-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []sessionResponse
	decode(t, w, &list)
	assert.Len(t, list, 1)

	w = api.do(t, http.MethodGet, "/api/sessions?month=2025-02", "")
	require.Equal(t, http.StatusOK, w.Code)
	list = nil
	decode(t, w, &list)
	assert.Empty(t, list)

	w = api.do(t, http.MethodGet, "/api/sessions?date=2025-01-15", "")
	require.Equal(t, http.StatusOK, w.Code)
	list = nil
	decode(t, w, &list)
	assert.Len(t, list, 1)

	w = api.do(t, http.MethodGet, "/api/sessions?date=not-a-date", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/sessions?month=January", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSession_UpdateAndDelete(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPost, "/api/sessions/start", `{"hourly_wage":2000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var s sessionResponse
	decode(t, w, &s)
	api.clock.Advance(time.Hour)
	w = api.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/stop", s.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	// Neither field given.
	w = api.do(t, http.MethodPatch, fmt.Sprintf("/api/sessions/%d", s.ID), `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Bad timestamp.
	w = api.do(t, http.MethodPatch, fmt.Sprintf("/api/sessions/%d", s.ID), `{"end_time":"yesterday"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Stretch the session to 90 minutes; earnings are recomputed.
	w = api.do(t, http.MethodPatch, fmt.Sprintf("/api/sessions/%d", s.ID),
		`{"end_time":"2025-01-15T10:30:00Z"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated sessionResponse
	decode(t, w, &updated)
	require.NotNil(t, updated.EarnedAmount)
	assert.Equal(t, 3000, *updated.EarnedAmount)

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/sessions/%d", s.ID), "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = api.do(t, http.MethodDelete, fmt.Sprintf("/api/sessions/%d", s.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummary_Daily(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPost, "/api/sessions/start", `{"hourly_wage":2000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var s sessionResponse
	decode(t, w, &s)
	api.clock.Advance(90 * time.Minute)
	w = api.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/stop", s.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/summary/daily?date=2025-01-15", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp dailySummaryResponse
	decode(t, w, &resp)
	assert.Equal(t, 3000, resp.TotalEarnedAmount)

	// Zero sessions is a zero total, not an error.
	w = api.do(t, http.MethodGet, "/api/summary/daily?date=2030-06-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = dailySummaryResponse{}
	decode(t, w, &resp)
	assert.Equal(t, 0, resp.TotalEarnedAmount)

	w = api.do(t, http.MethodGet, "/api/summary/daily?date=garbage", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummary_Monthly(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPost, "/api/sessions/start", `{"hourly_wage":1000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var s sessionResponse
	decode(t, w, &s)
	api.clock.Advance(time.Hour)
	w = api.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/stop", s.ID), "")
	require.Equal(t, http.StatusOK, w.Code)

	w = api.do(t, http.MethodGet, "/api/summary/monthly?month=2025-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp monthlySummaryResponse
	decode(t, w, &resp)
	assert.Equal(t, 1000, resp.TotalEarnedAmount)
	require.Len(t, resp.DailyBreakdown, 1)
	assert.Equal(t, "2025-01-15", resp.DailyBreakdown[0].Date)

	w = api.do(t, http.MethodGet, "/api/summary/monthly", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(t, http.MethodGet, "/api/summary/monthly?month=2025-13", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsersAreIsolated(t *testing.T) {
	api := newAPITest(t)
	api.login(t, "alice")

	w := api.do(t, http.MethodPost, "/api/sessions/start", `{"hourly_wage":1000}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var s sessionResponse
	decode(t, w, &s)

	// Bob cannot see or stop Alice's session.
	api.login(t, "bob")
	w = api.do(t, http.MethodGet, "/api/sessions", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []sessionResponse
	decode(t, w, &list)
	assert.Empty(t, list)

	w = api.do(t, http.MethodPost, fmt.Sprintf("/api/sessions/%d/stop", s.ID), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	api := newAPITest(t)
	w := api.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
