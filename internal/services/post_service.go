package services

import (
	"context"
	"math"
	"strings"

	"microblog/internal/logger"
	"microblog/internal/metrics"
	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/internal/services/dto"
	"microblog/internal/translate"
	"microblog/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	defaultPerPage = 25
	maxPerPage     = 100
)

type PostService interface {
	Create(ctx context.Context, db *gorm.DB, authorID, body string) (*models.Post, error)
	Feed(ctx context.Context, db *gorm.DB, userID string, page, perPage int) (*dto.PostPage, error)
	Explore(ctx context.Context, db *gorm.DB, page, perPage int) (*dto.PostPage, error)
	UserPosts(ctx context.Context, db *gorm.DB, userID string, page, perPage int) (*dto.PostPage, error)
}

type PostServiceImpl struct {
	postRepo repositories.PostRepository
	detect   func(string) string
}

func NewPostService(postRepo repositories.PostRepository) PostService {
	return &PostServiceImpl{
		postRepo: postRepo,
		detect:   translate.DetectLanguage,
	}
}

// Create сохраняет пост, определяя его язык. Неуверенное определение дает "".
func (s *PostServiceImpl) Create(ctx context.Context, db *gorm.DB, authorID, body string) (*models.Post, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.ValidationError(map[string]string{"post": "This field is required"})
	}
	if len([]rune(body)) > models.PostBodyMaxLen {
		return nil, apperrors.ValidationError(map[string]string{"post": "Must be at most 140 characters long"})
	}

	post := &models.Post{
		Body:     body,
		UserID:   authorID,
		Language: s.detect(body),
	}
	if err := s.postRepo.Create(db, post); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	lang := post.Language
	if lang == "" {
		lang = "unknown"
	}
	metrics.PostsCreated.WithLabelValues(lang).Inc()
	logger.CtxInfo(ctx, "Post created", "post_id", post.ID, "user_id", authorID, "language", post.Language)
	return post, nil
}

// Feed - свои посты и посты тех, на кого подписан userID, новые первыми.
func (s *PostServiceImpl) Feed(ctx context.Context, db *gorm.DB, userID string, page, perPage int) (*dto.PostPage, error) {
	page, perPage = normalizePage(page, perPage)
	posts, total, err := s.postRepo.FindFollowedPosts(db, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewPostPage(posts, total, page, perPage), nil
}

func (s *PostServiceImpl) Explore(ctx context.Context, db *gorm.DB, page, perPage int) (*dto.PostPage, error) {
	page, perPage = normalizePage(page, perPage)
	posts, total, err := s.postRepo.FindAll(db, perPage, (page-1)*perPage)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewPostPage(posts, total, page, perPage), nil
}

func (s *PostServiceImpl) UserPosts(ctx context.Context, db *gorm.DB, userID string, page, perPage int) (*dto.PostPage, error) {
	page, perPage = normalizePage(page, perPage)
	posts, total, err := s.postRepo.FindByAuthor(db, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return dto.NewPostPage(posts, total, page, perPage), nil
}

func normalizePage(page, perPage int) (int, int) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	// (page-1)*perPage не должно переполниться: страница за концом пустая
	if page > math.MaxInt/perPage {
		page = math.MaxInt / perPage
	}
	return page, perPage
}
