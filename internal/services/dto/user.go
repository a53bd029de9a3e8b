package dto

import (
	"time"

	"microblog/internal/models"
)

// EditProfileRequest - форма редактирования профиля
type EditProfileRequest struct {
	Username string `form:"username" json:"username" validate:"required,max=64,username"`
	AboutMe  string `form:"about_me" json:"about_me" validate:"max=140"`
}

// ProfileView - данные страницы пользователя
type ProfileView struct {
	User        *models.User
	Followers   int64
	Following   int64
	IsSelf      bool
	IsFollowing bool
}

// ProfileResponse - профиль пользователя в JSON API
type ProfileResponse struct {
	Username  string     `json:"username"`
	AboutMe   string     `json:"about_me"`
	LastSeen  *time.Time `json:"last_seen,omitempty"`
	Avatar    string     `json:"avatar"`
	Followers int64      `json:"followers"`
	Following int64      `json:"following"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewProfileResponse(p *ProfileView) *ProfileResponse {
	resp := &ProfileResponse{
		Username:  p.User.Username,
		AboutMe:   p.User.AboutMe,
		Avatar:    p.User.Avatar(128),
		Followers: p.Followers,
		Following: p.Following,
		CreatedAt: p.User.CreatedAt,
	}
	if !p.User.LastSeen.IsZero() {
		lastSeen := p.User.LastSeen
		resp.LastSeen = &lastSeen
	}
	return resp
}
