package handlers

import (
	"net/http"
	"time"

	"microblog/internal/middleware"
	"microblog/internal/services"
	"microblog/internal/services/dto"
	"microblog/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// RateLimit - ограничение POST запросов на формы входа и сброса пароля
type RateLimit struct {
	Counter  middleware.Counter
	Requests int
	Window   time.Duration
}

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	limit       RateLimit
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, limit RateLimit) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		limit:       limit,
	}
}

// RegisterRoutes регистрирует страницы входа, регистрации и сброса пароля
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	loginLimit := middleware.RateLimitMiddleware(h.limit.Counter, "login", h.limit.Requests, h.limit.Window)
	resetLimit := middleware.RateLimitMiddleware(h.limit.Counter, "reset", h.limit.Requests, h.limit.Window)

	rg.GET("/login", h.LoginPage)
	rg.POST("/login", loginLimit, h.Login)
	rg.GET("/logout", h.Logout)
	rg.GET("/register", h.RegisterPage)
	rg.POST("/register", h.Register)
	rg.GET("/reset_password_request", h.ResetRequestPage)
	rg.POST("/reset_password_request", resetLimit, h.ResetRequest)
	rg.GET("/reset_password/:token", h.ResetPasswordPage)
	rg.POST("/reset_password/:token", h.ResetPassword)
}

func (h *AuthHandler) redirectIfLoggedIn(c *gin.Context) bool {
	if middleware.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/index")
		return true
	}
	return false
}

func (h *AuthHandler) LoginPage(c *gin.Context) {
	if h.redirectIfLoggedIn(c) {
		return
	}
	h.Render(c, http.StatusOK, "login.html", gin.H{"Title": "Sign In", "Form": &dto.LoginRequest{}})
}

func (h *AuthHandler) Login(c *gin.Context) {
	if h.redirectIfLoggedIn(c) {
		return
	}

	var req dto.LoginRequest
	if errs := h.BindForm(c, &req); errs != nil {
		h.Render(c, http.StatusOK, "login.html", gin.H{"Title": "Sign In", "Form": &req, "Errors": errs})
		return
	}

	ctx := c.Request.Context()
	user, err := h.authService.Authenticate(ctx, h.GetDB(c), req.Username, req.Password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidCredentials) {
			h.FlashRedirect(c, c.Request.URL.RequestURI(), "Invalid username or password")
			return
		}
		h.HandlePageError(c, err)
		return
	}

	if err := h.sessions.Login(c.Writer, c.Request, user.ID, req.Remember()); err != nil {
		h.HandlePageError(c, err)
		return
	}

	next := SafeNext(c.Query("next"))
	if next == "" {
		next = "/index"
	}
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Writer, c.Request); err != nil {
		h.HandlePageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/index")
}

func (h *AuthHandler) RegisterPage(c *gin.Context) {
	if h.redirectIfLoggedIn(c) {
		return
	}
	h.Render(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": &dto.RegisterRequest{}})
}

// Register создает пользователя и сразу выполняет вход.
func (h *AuthHandler) Register(c *gin.Context) {
	if h.redirectIfLoggedIn(c) {
		return
	}

	var req dto.RegisterRequest
	render := func(errs map[string]string) {
		h.Render(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": &req, "Errors": errs})
	}

	if errs := h.BindForm(c, &req); errs != nil {
		render(errs)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), h.GetDB(c), &req)
	switch {
	case apperrors.Is(err, apperrors.ErrUsernameTaken):
		render(map[string]string{"username": h.T(c, apperrors.ErrUsernameTaken.Message)})
		return
	case apperrors.Is(err, apperrors.ErrEmailTaken):
		render(map[string]string{"email": h.T(c, apperrors.ErrEmailTaken.Message)})
		return
	case err != nil:
		h.HandlePageError(c, err)
		return
	}

	if err := h.sessions.Login(c.Writer, c.Request, user.ID, false); err != nil {
		h.HandlePageError(c, err)
		return
	}

	next := SafeNext(c.Query("next"))
	if next == "" {
		next = "/index"
	}
	h.FlashRedirect(c, next, "Congratulations, you are now a registered user!")
}

func (h *AuthHandler) ResetRequestPage(c *gin.Context) {
	if h.redirectIfLoggedIn(c) {
		return
	}
	h.Render(c, http.StatusOK, "reset_password_request.html", gin.H{"Title": "Reset Password", "Form": &dto.ResetPasswordRequest{}})
}

// ResetRequest отвечает одинаково для известного и неизвестного email.
func (h *AuthHandler) ResetRequest(c *gin.Context) {
	if h.redirectIfLoggedIn(c) {
		return
	}

	var req dto.ResetPasswordRequest
	if errs := h.BindForm(c, &req); errs != nil {
		h.Render(c, http.StatusOK, "reset_password_request.html", gin.H{"Title": "Reset Password", "Form": &req, "Errors": errs})
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), h.GetDB(c), req.Email); err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.FlashRedirect(c, "/login", "Check your email for the instructions to reset your password")
}

func (h *AuthHandler) ResetPasswordPage(c *gin.Context) {
	if h.redirectIfLoggedIn(c) {
		return
	}
	if _, err := h.authService.UserForResetToken(c.Request.Context(), h.GetDB(c), c.Param("token")); err != nil {
		c.Redirect(http.StatusFound, "/index")
		return
	}
	h.Render(c, http.StatusOK, "reset_password.html", gin.H{"Title": "Reset Password", "Form": &dto.ResetPasswordForm{}})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	if h.redirectIfLoggedIn(c) {
		return
	}

	ctx := c.Request.Context()
	db := h.GetDB(c)
	token := c.Param("token")

	if _, err := h.authService.UserForResetToken(ctx, db, token); err != nil {
		c.Redirect(http.StatusFound, "/index")
		return
	}

	var req dto.ResetPasswordForm
	if errs := h.BindForm(c, &req); errs != nil {
		h.Render(c, http.StatusOK, "reset_password.html", gin.H{"Title": "Reset Password", "Form": &req, "Errors": errs})
		return
	}

	if err := h.authService.ResetPassword(ctx, db, token, req.Password); err != nil {
		if apperrors.Is(err, apperrors.ErrInvalidToken) {
			c.Redirect(http.StatusFound, "/index")
			return
		}
		h.HandlePageError(c, err)
		return
	}
	h.FlashRedirect(c, "/login", "Your password has been reset.")
}
