package handlers

import (
	"net/http"

	"microblog/internal/services"
	"microblog/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// APIHandler - публичный read-only JSON API
type APIHandler struct {
	*BaseHandler
	userService  services.UserService
	postService  services.PostService
	postsPerPage int
}

func NewAPIHandler(base *BaseHandler, userService services.UserService, postService services.PostService, postsPerPage int) *APIHandler {
	return &APIHandler{
		BaseHandler:  base,
		userService:  userService,
		postService:  postService,
		postsPerPage: postsPerPage,
	}
}

func (h *APIHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("/:username", h.GetUser)
		users.GET("/:username/posts", h.GetUserPosts)
	}
	rg.GET("/explore", h.Explore)
}

// GetUser godoc
// @Summary Профиль пользователя
// @Description Возвращает публичный профиль со счетчиками подписок
// @Tags users
// @Produce json
// @Param username path string true "Имя пользователя"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} apperrors.ErrorResponse "Пользователь не найден"
// @Router /users/{username} [get]
func (h *APIHandler) GetUser(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), h.GetDB(c), c.Param("username"), "")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(profile))
}

// GetUserPosts godoc
// @Summary Посты пользователя
// @Description Посты автора, новые первыми
// @Tags users
// @Produce json
// @Param username path string true "Имя пользователя"
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы (до 100)"
// @Success 200 {object} dto.PostListResponse
// @Failure 404 {object} apperrors.ErrorResponse "Пользователь не найден"
// @Router /users/{username}/posts [get]
func (h *APIHandler) GetUserPosts(c *gin.Context) {
	ctx := c.Request.Context()
	db := h.GetDB(c)

	user, err := h.userService.GetByUsername(ctx, db, c.Param("username"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	page, pageSize := ParsePagination(c, h.postsPerPage)
	posts, err := h.postService.UserPosts(ctx, db, user.ID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostListResponse(posts))
}

// Explore godoc
// @Summary Все посты
// @Description Глобальная лента, новые первыми
// @Tags posts
// @Produce json
// @Param page query int false "Номер страницы"
// @Param page_size query int false "Размер страницы (до 100)"
// @Success 200 {object} dto.PostListResponse
// @Router /explore [get]
func (h *APIHandler) Explore(c *gin.Context) {
	page, pageSize := ParsePagination(c, h.postsPerPage)
	posts, err := h.postService.Explore(c.Request.Context(), h.GetDB(c), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewPostListResponse(posts))
}
