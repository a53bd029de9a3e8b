package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const PostBodyMaxLen = 140

// Post неизменяем после создания: автор и текст задаются один раз.
type Post struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Body      string    `gorm:"size:140;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UserID    string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Language  string    `gorm:"size:5" json:"language"`

	Author User `gorm:"foreignKey:UserID" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
