package dto

import (
	"time"

	"microblog/internal/models"
)

// PostRequest - форма нового поста
type PostRequest struct {
	Post string `form:"post" json:"post" validate:"required,max=140"`
}

// TranslateRequest - AJAX запрос перевода поста
type TranslateRequest struct {
	Text           string `form:"text" json:"text" validate:"required"`
	SourceLanguage string `form:"source_language" json:"source_language"`
	DestLanguage   string `form:"dest_language" json:"dest_language" validate:"required"`
}

// TranslateResponse - ответ перевода. Ошибки тоже приходят текстом.
type TranslateResponse struct {
	Text string `json:"text"`
}

// PostPage - страница ленты с навигацией
type PostPage struct {
	Items   []models.Post
	Page    int
	PerPage int
	Total   int64
	Pages   int
	HasNext bool
	HasPrev bool
	NextNum int
	PrevNum int
}

// NewPostPage считает навигацию по общему количеству записей.
func NewPostPage(items []models.Post, total int64, page, perPage int) *PostPage {
	p := &PostPage{
		Items:   items,
		Page:    page,
		PerPage: perPage,
		Total:   total,
	}
	if perPage > 0 {
		p.Pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	p.HasPrev = page > 1
	p.HasNext = page < p.Pages
	if p.HasPrev {
		p.PrevNum = page - 1
	}
	if p.HasNext {
		p.NextNum = page + 1
	}
	return p
}

// AuthorResponse - автор поста в JSON API
type AuthorResponse struct {
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// PostResponse - пост в JSON API
type PostResponse struct {
	ID        string         `json:"id"`
	Body      string         `json:"body"`
	Language  string         `json:"language,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	Author    AuthorResponse `json:"author"`
}

// PostListResponse - страница постов в JSON API
type PostListResponse struct {
	Posts    []PostResponse `json:"posts"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Total    int64          `json:"total"`
	Pages    int            `json:"pages"`
}

func NewPostListResponse(p *PostPage) *PostListResponse {
	resp := &PostListResponse{
		Posts:    make([]PostResponse, 0, len(p.Items)),
		Page:     p.Page,
		PageSize: p.PerPage,
		Total:    p.Total,
		Pages:    p.Pages,
	}
	for _, post := range p.Items {
		resp.Posts = append(resp.Posts, PostResponse{
			ID:        post.ID,
			Body:      post.Body,
			Language:  post.Language,
			CreatedAt: post.CreatedAt,
			Author: AuthorResponse{
				Username: post.Author.Username,
				Avatar:   post.Author.Avatar(36),
			},
		})
	}
	return resp
}
