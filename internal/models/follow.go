package models

import "time"

// Follow - ребро направленного графа подписок.
// Составной первичный ключ не дает хранилищу записать одно ребро дважды.
// Петли (FollowerID == FollowedID) на уровне схемы не запрещены,
// их отсекает FollowService.
type Follow struct {
	FollowerID string    `gorm:"type:varchar(36);primaryKey"`
	FollowedID string    `gorm:"type:varchar(36);primaryKey;index"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}
