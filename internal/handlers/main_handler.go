package handlers

import (
	"net/http"
	"net/url"

	"microblog/internal/middleware"
	"microblog/internal/services"
	"microblog/internal/services/dto"
	"microblog/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// MainHandler - страницы ленты, профиля и подписок
type MainHandler struct {
	*BaseHandler
	userService        services.UserService
	postService        services.PostService
	followService      services.FollowService
	translationService services.TranslationService
	postsPerPage       int
}

func NewMainHandler(
	base *BaseHandler,
	userService services.UserService,
	postService services.PostService,
	followService services.FollowService,
	translationService services.TranslationService,
	postsPerPage int,
) *MainHandler {
	return &MainHandler{
		BaseHandler:        base,
		userService:        userService,
		postService:        postService,
		followService:      followService,
		translationService: translationService,
		postsPerPage:       postsPerPage,
	}
}

// RegisterRoutes - все страницы здесь требуют входа
func (h *MainHandler) RegisterRoutes(rg *gin.RouterGroup) {
	protected := rg.Group("")
	protected.Use(middleware.RequireLogin(h.sessions, h.bundle))
	{
		protected.GET("/", h.Index)
		protected.POST("/", h.CreatePost)
		protected.GET("/index", h.Index)
		protected.POST("/index", h.CreatePost)
		protected.GET("/explore", h.Explore)
		protected.GET("/user/:username", h.User)
		protected.GET("/edit_profile", h.EditProfilePage)
		protected.POST("/edit_profile", h.EditProfile)
		protected.POST("/follow/:username", h.Follow)
		protected.POST("/unfollow/:username", h.Unfollow)
		protected.POST("/translate", h.Translate)
	}
}

func (h *MainHandler) page(c *gin.Context) int {
	page := ParseQueryInt(c, "page", 1)
	if page <= 0 {
		page = 1
	}
	return page
}

func (h *MainHandler) renderFeed(c *gin.Context, status int, form *dto.PostRequest, errs map[string]string) {
	user := middleware.CurrentUser(c)
	posts, err := h.postService.Feed(c.Request.Context(), h.GetDB(c), user.ID, h.page(c), h.postsPerPage)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, status, "index.html", gin.H{
		"Title":    "Home",
		"ShowForm": true,
		"Form":     form,
		"Errors":   errs,
		"Posts":    posts,
		"PageURL":  "/index",
	})
}

func (h *MainHandler) Index(c *gin.Context) {
	h.renderFeed(c, http.StatusOK, &dto.PostRequest{}, nil)
}

// CreatePost публикует пост и делает редирект, чтобы F5 не отправил форму повторно.
func (h *MainHandler) CreatePost(c *gin.Context) {
	var req dto.PostRequest
	if errs := h.BindForm(c, &req); errs != nil {
		h.renderFeed(c, http.StatusOK, &req, errs)
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.postService.Create(c.Request.Context(), h.GetDB(c), user.ID, req.Post); err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.CodeValidationFailed {
			errs, _ := appErr.Details.(map[string]string)
			h.renderFeed(c, http.StatusOK, &req, errs)
			return
		}
		h.HandlePageError(c, err)
		return
	}
	h.FlashRedirect(c, "/index", "Your post is now live!")
}

func (h *MainHandler) Explore(c *gin.Context) {
	posts, err := h.postService.Explore(c.Request.Context(), h.GetDB(c), h.page(c), h.postsPerPage)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}
	h.Render(c, http.StatusOK, "index.html", gin.H{
		"Title":   "Explore",
		"Posts":   posts,
		"PageURL": "/explore",
	})
}

func (h *MainHandler) User(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.GetDB(c)
	viewer := middleware.CurrentUser(c)

	profile, err := h.userService.GetProfile(ctx, db, c.Param("username"), viewer.ID)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}

	posts, err := h.postService.UserPosts(ctx, db, profile.User.ID, h.page(c), h.postsPerPage)
	if err != nil {
		h.HandlePageError(c, err)
		return
	}

	h.Render(c, http.StatusOK, "user.html", gin.H{
		"Title":   "User",
		"Profile": profile,
		"Posts":   posts,
		"PageURL": "/user/" + url.PathEscape(profile.User.Username),
	})
}

func (h *MainHandler) EditProfilePage(c *gin.Context) {
	user := middleware.CurrentUser(c)
	h.Render(c, http.StatusOK, "edit_profile.html", gin.H{
		"Title": "Edit Profile",
		"Form":  &dto.EditProfileRequest{Username: user.Username, AboutMe: user.AboutMe},
	})
}

func (h *MainHandler) EditProfile(c *gin.Context) {
	var req dto.EditProfileRequest
	render := func(errs map[string]string) {
		h.Render(c, http.StatusOK, "edit_profile.html", gin.H{"Title": "Edit Profile", "Form": &req, "Errors": errs})
	}

	if errs := h.BindForm(c, &req); errs != nil {
		render(errs)
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.userService.UpdateProfile(c.Request.Context(), h.GetDB(c), user.ID, &req); err != nil {
		if apperrors.Is(err, apperrors.ErrUsernameTaken) {
			render(map[string]string{"username": h.T(c, apperrors.ErrUsernameTaken.Message)})
			return
		}
		h.HandlePageError(c, err)
		return
	}
	h.FlashRedirect(c, "/edit_profile", "Your changes have been saved.")
}

func (h *MainHandler) Follow(c *gin.Context) {
	username := c.Param("username")
	user := middleware.CurrentUser(c)

	_, err := h.followService.Follow(c.Request.Context(), h.GetDB(c), user.ID, username)
	h.followOutcome(c, username, err, "You are following {0}!")
}

func (h *MainHandler) Unfollow(c *gin.Context) {
	username := c.Param("username")
	user := middleware.CurrentUser(c)

	_, err := h.followService.Unfollow(c.Request.Context(), h.GetDB(c), user.ID, username)
	h.followOutcome(c, username, err, "You are not following {0}.")
}

// followOutcome: неизвестный пользователь и попытка подписаться на себя
// сообщаются через flash, а не страницей ошибки.
func (h *MainHandler) followOutcome(c *gin.Context, username string, err error, success string) {
	profileURL := "/user/" + url.PathEscape(username)
	switch {
	case err == nil:
		h.FlashRedirect(c, profileURL, success, username)
	case apperrors.Is(err, apperrors.ErrUserNotFound):
		h.FlashRedirect(c, "/index", "User {0} not found.", username)
	case apperrors.Is(err, apperrors.ErrCannotFollowSelf):
		h.FlashRedirect(c, profileURL, apperrors.ErrCannotFollowSelf.Message)
	case apperrors.Is(err, apperrors.ErrCannotUnfollowSelf):
		h.FlashRedirect(c, profileURL, apperrors.ErrCannotUnfollowSelf.Message)
	default:
		h.HandlePageError(c, err)
	}
}

// Translate всегда отвечает {"text": ...}; при ошибке текст - переведенное сообщение об ошибке.
func (h *MainHandler) Translate(c *gin.Context) {
	var req dto.TranslateRequest
	if errs := h.BindForm(c, &req); errs != nil {
		c.JSON(http.StatusBadRequest, dto.TranslateResponse{Text: firstError(errs)})
		return
	}

	text, err := h.translationService.Translate(c.Request.Context(), req.Text, req.SourceLanguage, req.DestLanguage)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			c.JSON(http.StatusOK, dto.TranslateResponse{Text: h.T(c, appErr.Message)})
			return
		}
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TranslateResponse{Text: text})
}

func firstError(errs map[string]string) string {
	for _, field := range []string{"text", "dest_language", "source_language", formErrorKey} {
		if msg, ok := errs[field]; ok {
			return msg
		}
	}
	for _, msg := range errs {
		return msg
	}
	return ""
}
