package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"microblog/internal/auth"
	"microblog/internal/i18n"
	"microblog/internal/logger"
	"microblog/internal/middleware"
	"microblog/internal/services/dto"
	"microblog/internal/validator"
	"microblog/pkg/apperrors"
	"microblog/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// formErrorKey - ошибка формы, не относящаяся к конкретному полю
const formErrorKey = "_form"

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
	sessions  *auth.SessionManager
	bundle    *i18n.Bundle
}

func NewBaseHandler(v *validator.Validator, sessions *auth.SessionManager, bundle *i18n.Bundle) *BaseHandler {
	return &BaseHandler{
		validator: v,
		sessions:  sessions,
		bundle:    bundle,
	}
}

// GetDB извлекает *gorm.DB (пул или транзакцию) из gin.Context
func (h *BaseHandler) GetDB(c *gin.Context) *gorm.DB {
	dbKey := string(contextkeys.DBContextKey)

	val, ok := c.Get(dbKey)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db key not found in context", "key", dbKey)
		panic("critical error: DBMiddleware did not set the db key")
	}

	db, ok := val.(*gorm.DB)
	if !ok {
		logger.CtxError(c.Request.Context(), "critical error: db in context is not *gorm.DB", "key", dbKey, "type", fmt.Sprintf("%T", val))
		panic("critical error: db in context has incorrect type")
	}

	return db
}

// ============================================================================
// 2. Привязка и валидация форм
// ============================================================================

// BindForm привязывает форму и валидирует ее. Сообщения об ошибках
// переведены на язык запроса; nil означает, что форма валидна.
func (h *BaseHandler) BindForm(c *gin.Context, obj interface{}) map[string]string {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind form", err, "path", c.Request.URL.Path)
		return map[string]string{formErrorKey: err.Error()}
	}

	trans := h.bundle.Translator(middleware.Locale(c))
	if err := h.validator.ValidateLocalized(obj, trans); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxDebug(ctx, "Form validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			return vErr.Errors
		}
		logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
		return map[string]string{formErrorKey: err.Error()}
	}
	return nil
}

// ============================================================================
// 3. Обработчики ошибок
// ============================================================================

// HandleServiceError отвечает JSON (API).
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Message,
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		apperrors.HandleError(c, appErr)
	} else {
		logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
		apperrors.HandleError(c, apperrors.InternalError(err))
	}
}

// HandlePageError отвечает HTML страницей 404 или 500.
func (h *BaseHandler) HandlePageError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.HTTPCode == http.StatusNotFound {
		h.NotFound(c)
		return
	}
	logger.CtxWithError(c.Request.Context(), "Page failed", err, "path", c.Request.URL.Path)
	h.Render(c, http.StatusInternalServerError, "500.html", gin.H{"Title": "An unexpected error has occurred"})
}

func (h *BaseHandler) NotFound(c *gin.Context) {
	h.Render(c, http.StatusNotFound, "404.html", gin.H{"Title": "File Not Found"})
}

const csrfExpiredMessage = "The form has expired. Please try again."

// CSRFFailed отвечает на запрос без действующего CSRF токена. Форма возвращает
// пользователя на предыдущую страницу с flash, AJAX и API получают 403 JSON.
func (h *BaseHandler) CSRFFailed(c *gin.Context) {
	switch {
	case c.Request.URL.Path == "/translate":
		c.AbortWithStatusJSON(http.StatusForbidden, dto.TranslateResponse{Text: h.T(c, csrfExpiredMessage)})
	case c.GetHeader(middleware.CSRFHeader) != "",
		strings.HasPrefix(c.Request.URL.Path, "/api/"),
		c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON:
		apperrors.HandleError(c, apperrors.ErrInvalidCSRFToken)
	default:
		back := "/index"
		if ref, err := url.Parse(c.Request.Referer()); err == nil && ref.Host == c.Request.Host {
			if next := SafeNext(ref.RequestURI()); next != "" {
				back = next
			}
		}
		h.FlashRedirect(c, back, csrfExpiredMessage)
	}
}

// ============================================================================
// 4. Рендеринг, flash и редиректы
// ============================================================================

// Render добавляет в данные шаблона общие поля: пользователя, flash-сообщения,
// CSRF токен и язык. Cookie сессии пишется до тела ответа.
func (h *BaseHandler) Render(c *gin.Context, status int, name string, data gin.H) {
	ctx := c.Request.Context()
	if data == nil {
		data = gin.H{}
	}

	flashes, err := h.sessions.Flashes(c.Writer, c.Request)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to read flashes", "error", err)
	}
	token, err := h.sessions.CSRFToken(c.Writer, c.Request)
	if err != nil {
		logger.CtxWarn(ctx, "Failed to issue CSRF token", "error", err)
	}

	data["Locale"] = middleware.Locale(c)
	data["Languages"] = h.bundle.Languages()
	data["CurrentUser"] = middleware.CurrentUser(c)
	data["Flashes"] = flashes
	data["CSRFToken"] = token
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = map[string]string{}
	}

	c.HTML(status, name, data)
}

// T переводит сообщение на язык запроса.
func (h *BaseHandler) T(c *gin.Context, key string, params ...string) string {
	return h.bundle.T(middleware.Locale(c), key, params...)
}

// Flash сохраняет переведенное flash-сообщение.
func (h *BaseHandler) Flash(c *gin.Context, key string, params ...string) {
	if err := h.sessions.AddFlash(c.Writer, c.Request, h.T(c, key, params...)); err != nil {
		logger.CtxWarn(c.Request.Context(), "Failed to save flash", "error", err)
	}
}

// FlashRedirect - flash + редирект (POST/Redirect/GET).
func (h *BaseHandler) FlashRedirect(c *gin.Context, location, key string, params ...string) {
	h.Flash(c, key, params...)
	c.Redirect(http.StatusFound, location)
}

// ============================================================================
// 5. Функции парсинга
// ============================================================================

func ParseQueryInt(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func ParsePagination(c *gin.Context, defaultPageSize int) (page int, pageSize int) {
	const defaultPage = 1
	const maxPageSize = 100

	page = ParseQueryInt(c, "page", defaultPage)
	if page <= 0 {
		page = defaultPage
	}

	pageSize = ParseQueryInt(c, "page_size", defaultPageSize)
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return page, pageSize
}

// SafeNext возвращает next, только если это относительный путь этого сайта.
func SafeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return ""
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ""
	}
	return next
}
