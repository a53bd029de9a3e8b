package apperrors

import (
	"net/http"
)

/*
Фабрики и предопределенные переменные для ошибок домена микроблога.
*/

// =========================================================================
// Фабричные ФУНКЦИИ
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ
// =========================================================================

// --- Users ---

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

// ErrUsernameTaken - имя пользователя занято (и при регистрации, и при редактировании профиля).
var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"user",
	"Please use a different username.",
	http.StatusConflict,
)

var ErrEmailTaken = New(
	CodeAlreadyExists,
	"user",
	"Please use a different email address.",
	http.StatusConflict,
)

// --- Auth ---

// ErrInvalidCredentials намеренно не различает "нет такого пользователя" и "неверный пароль".
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - токен сброса пароля невалиден по любой причине.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrLoginRequired = New(
	CodeUnauthorized,
	"auth",
	"Please log in to access this page.",
	http.StatusUnauthorized,
)

var ErrInvalidCSRFToken = New(
	CodeForbidden,
	"auth",
	"The CSRF token is missing or invalid.",
	http.StatusForbidden,
)

var ErrRateLimited = New(
	CodeLimitExceeded,
	"auth",
	"Too many requests, please try again later.",
	http.StatusTooManyRequests,
)

// --- Follow graph ---

var ErrCannotFollowSelf = New(
	CodeInvalidOperation,
	"follow",
	"You cannot follow yourself!",
	http.StatusBadRequest,
)

var ErrCannotUnfollowSelf = New(
	CodeInvalidOperation,
	"follow",
	"You cannot unfollow yourself!",
	http.StatusBadRequest,
)

// --- Translation ---

var ErrTranslationNotConfigured = New(
	CodeExternalServiceError,
	"translate",
	"Error: the translation service is not configured.",
	http.StatusServiceUnavailable,
)

var ErrTranslationFailed = New(
	CodeExternalServiceError,
	"translate",
	"Error: the translation service failed.",
	http.StatusBadGateway,
)
