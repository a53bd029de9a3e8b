package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessions() *SessionManager {
	return NewSessionManager(SessionConfig{
		Name:        "test_session",
		Secret:      "secret",
		RememberFor: 24 * time.Hour,
	})
}

// nextRequest переносит cookie из ответа в новый запрос, как это сделал бы браузер.
func nextRequest(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestSessionManager_LoginLogout(t *testing.T) {
	m := newTestSessions()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Login(rec, httptest.NewRequest(http.MethodGet, "/", nil), "user-1", false))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Zero(t, cookies[0].MaxAge, "без remember cookie живет до закрытия браузера")

	req := nextRequest(rec)
	assert.Equal(t, "user-1", m.UserID(req))

	rec = httptest.NewRecorder()
	require.NoError(t, m.Logout(rec, req))
	assert.Empty(t, m.UserID(nextRequest(rec)))
}

func TestSessionManager_RememberMe(t *testing.T) {
	m := newTestSessions()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Login(rec, httptest.NewRequest(http.MethodGet, "/", nil), "user-1", true))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookies[0].MaxAge)
}

func TestSessionManager_ForeignCookieIsAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, newTestSessions().Login(rec, httptest.NewRequest(http.MethodGet, "/", nil), "user-1", false))

	other := NewSessionManager(SessionConfig{Name: "test_session", Secret: "other", RememberFor: time.Hour})
	assert.Empty(t, other.UserID(nextRequest(rec)))
}

func TestSessionManager_Flashes(t *testing.T) {
	m := newTestSessions()

	rec := httptest.NewRecorder()
	require.NoError(t, m.AddFlash(rec, httptest.NewRequest(http.MethodGet, "/", nil), "hello"))

	req := nextRequest(rec)
	rec = httptest.NewRecorder()
	flashes, err := m.Flashes(rec, req)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, flashes)

	flashes, err = m.Flashes(httptest.NewRecorder(), nextRequest(rec))
	require.NoError(t, err)
	assert.Empty(t, flashes, "flash показывается один раз")
}

func TestSessionManager_CSRFToken(t *testing.T) {
	m := newTestSessions()

	rec := httptest.NewRecorder()
	token, err := m.CSRFToken(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	require.NotEmpty(t, token)

	req := nextRequest(rec)
	assert.True(t, m.ValidCSRFToken(req, token))
	assert.False(t, m.ValidCSRFToken(req, token+"x"))
	assert.False(t, m.ValidCSRFToken(req, ""))
}

func TestSessionManager_RememberSurvivesLaterWrites(t *testing.T) {
	m := newTestSessions()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Login(rec, httptest.NewRequest(http.MethodGet, "/", nil), "user-1", true))

	rec2 := httptest.NewRecorder()
	require.NoError(t, m.AddFlash(rec2, nextRequest(rec), "saved"))

	cookies := rec2.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookies[0].MaxAge)
}
