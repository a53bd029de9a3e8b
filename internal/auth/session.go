package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
)

const (
	sessionUserIDKey = "user_id"
	sessionCSRFKey   = "csrf_token"
	sessionRemember  = "remember"
)

// SessionConfig - параметры cookie сессии
type SessionConfig struct {
	Name        string
	Secret      string
	RememberFor time.Duration
	Secure      bool
}

// SessionManager хранит состояние логина, flash-сообщения и CSRF токен
// в подписанной cookie (gorilla/sessions CookieStore).
type SessionManager struct {
	store       *sessions.CookieStore
	name        string
	rememberFor time.Duration
}

func NewSessionManager(cfg SessionConfig) *SessionManager {
	// Ключи подписи и шифрования выводятся из SECRET_KEY
	hashKey := sha256.Sum256([]byte("session-auth:" + cfg.Secret))
	blockKey := sha256.Sum256([]byte("session-enc:" + cfg.Secret))

	store := sessions.NewCookieStore(hashKey[:], blockKey[:])
	// MaxAge на уровне store ограничивает и проверку подписи, поэтому ставим максимальный срок,
	// а для обычного логина отдаем cookie без Max-Age (живет до закрытия браузера).
	store.MaxAge(int(cfg.RememberFor.Seconds()))
	store.Options.MaxAge = 0
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.Secure
	store.Options.SameSite = http.SameSiteLaxMode

	return &SessionManager{
		store:       store,
		name:        cfg.Name,
		rememberFor: cfg.RememberFor,
	}
}

// session никогда не возвращает nil: битая или чужая cookie дает новую пустую сессию.
func (m *SessionManager) session(r *http.Request) *sessions.Session {
	// при ошибке декодирования store все равно отдает новую сессию,
	// и registry запроса кеширует именно ее
	s, _ := m.store.Get(r, m.name)
	if s == nil {
		s = sessions.NewSession(m.store, m.name)
		opts := *m.store.Options
		s.Options = &opts
		s.IsNew = true
	}
	return s
}

// Login привязывает сессию к пользователю. remember продлевает cookie до RememberFor.
func (m *SessionManager) Login(w http.ResponseWriter, r *http.Request, userID string, remember bool) error {
	s := m.session(r)
	s.Values[sessionUserIDKey] = userID
	s.Values[sessionRemember] = remember
	// новый CSRF токен после смены привилегий
	delete(s.Values, sessionCSRFKey)
	return m.save(w, r, s)
}

// Logout забывает пользователя, но сохраняет сессию для flash-сообщений.
func (m *SessionManager) Logout(w http.ResponseWriter, r *http.Request) error {
	s := m.session(r)
	delete(s.Values, sessionUserIDKey)
	delete(s.Values, sessionCSRFKey)
	delete(s.Values, sessionRemember)
	return m.save(w, r, s)
}

// save выставляет срок жизни cookie заново при каждой записи,
// иначе flash или CSRF токен "забыли" бы remember me.
func (m *SessionManager) save(w http.ResponseWriter, r *http.Request, s *sessions.Session) error {
	opts := *m.store.Options
	if remember, _ := s.Values[sessionRemember].(bool); remember {
		opts.MaxAge = int(m.rememberFor.Seconds())
	}
	s.Options = &opts
	return s.Save(r, w)
}

// UserID возвращает id залогиненного пользователя или "".
func (m *SessionManager) UserID(r *http.Request) string {
	id, _ := m.session(r).Values[sessionUserIDKey].(string)
	return id
}

func (m *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, message string) error {
	s := m.session(r)
	s.AddFlash(message)
	return m.save(w, r, s)
}

// Flashes забирает накопленные flash-сообщения (и удаляет их из сессии).
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) ([]string, error) {
	s := m.session(r)
	raw := s.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out, m.save(w, r, s)
}

// CSRFToken возвращает токен текущей сессии, создавая его при необходимости.
func (m *SessionManager) CSRFToken(w http.ResponseWriter, r *http.Request) (string, error) {
	s := m.session(r)
	if token, ok := s.Values[sessionCSRFKey].(string); ok && token != "" {
		return token, nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate csrf token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)
	s.Values[sessionCSRFKey] = token
	return token, m.save(w, r, s)
}

// ValidCSRFToken сравнивает присланный токен с токеном сессии за постоянное время.
func (m *SessionManager) ValidCSRFToken(r *http.Request, token string) bool {
	expected, _ := m.session(r).Values[sessionCSRFKey].(string)
	if expected == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(token)) == 1
}
