package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultResetTokenTTL = 10 * time.Minute

// ResetClaims - полезная нагрузка токена сброса пароля.
type ResetClaims struct {
	ResetPassword string `json:"reset_password"`
	jwt.RegisteredClaims
}

// ResetTokens выпускает и проверяет stateless токены сброса пароля (HS256).
// Отзыва нет: токен действителен до exp.
type ResetTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewResetTokens(secret string, ttl time.Duration) *ResetTokens {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &ResetTokens{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock подменяет источник времени (для тестов).
func (t *ResetTokens) WithClock(now func() time.Time) *ResetTokens {
	cp := *t
	cp.now = now
	return &cp
}

// Issue выпускает токен со сроком ttl от текущего момента.
func (t *ResetTokens) Issue(userID string) (string, error) {
	return t.IssueWithTTL(userID, t.ttl)
}

func (t *ResetTokens) IssueWithTTL(userID string, ttl time.Duration) (string, error) {
	claims := ResetClaims{
		ResetPassword: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(t.now().Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify возвращает id пользователя из токена.
// Любая проблема (подпись, алгоритм, срок, формат, пустой claim) дает ok == false.
func (t *ResetTokens) Verify(token string) (userID string, ok bool) {
	claims := &ResetClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid || claims.ResetPassword == "" {
		return "", false
	}
	return claims.ResetPassword, true
}
