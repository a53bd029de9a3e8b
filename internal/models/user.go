package models

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

const (
	UsernameMaxLen = 64
	EmailMaxLen    = 120
	AboutMeMaxLen  = 140
)

type User struct {
	BaseModel
	Username     string    `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"-"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	AboutMe      string    `gorm:"size:140" json:"about_me"`
	LastSeen     time.Time `json:"last_seen"`

	Posts []Post `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Avatar возвращает URL identicon-аватара Gravatar заданного размера.
func (u *User) Avatar(size int) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(u.Email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%s?d=identicon&s=%d", hex.EncodeToString(sum[:]), size)
}
