package repositories

import (
	"microblog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowRepository - операции над множеством ребер графа подписок.
// Повторные follow/unfollow - no-op, ошибок не возвращают.
type FollowRepository interface {
	Follow(db *gorm.DB, followerID, followedID string) error
	Unfollow(db *gorm.DB, followerID, followedID string) error
	IsFollowing(db *gorm.DB, followerID, followedID string) (bool, error)
	CountFollowers(db *gorm.DB, userID string) (int64, error)
	CountFollowing(db *gorm.DB, userID string) (int64, error)
}

type FollowRepositoryImpl struct{}

func NewFollowRepository() FollowRepository {
	return &FollowRepositoryImpl{}
}

// Follow вставляет ребро; ON CONFLICT DO NOTHING делает операцию идемпотентной,
// в том числе при конкурентных запросах на одну и ту же пару.
func (r *FollowRepositoryImpl) Follow(db *gorm.DB, followerID, followedID string) error {
	edge := &models.Follow{FollowerID: followerID, FollowedID: followedID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(edge).Error
}

func (r *FollowRepositoryImpl) Unfollow(db *gorm.DB, followerID, followedID string) error {
	return db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

func (r *FollowRepositoryImpl) IsFollowing(db *gorm.DB, followerID, followedID string) (bool, error) {
	var count int64
	err := db.Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	return count > 0, err
}

func (r *FollowRepositoryImpl) CountFollowers(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Follow{}).Where("followed_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FollowRepositoryImpl) CountFollowing(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
