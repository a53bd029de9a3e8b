package repositories

import (
	"microblog/internal/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	Create(db *gorm.DB, post *models.Post) error
	FindFollowedPosts(db *gorm.DB, userID string, limit, offset int) ([]models.Post, int64, error)
	FindAll(db *gorm.DB, limit, offset int) ([]models.Post, int64, error)
	FindByAuthor(db *gorm.DB, userID string, limit, offset int) ([]models.Post, int64, error)
}

type PostRepositoryImpl struct{}

func NewPostRepository() PostRepository {
	return &PostRepositoryImpl{}
}

func (r *PostRepositoryImpl) Create(db *gorm.DB, post *models.Post) error {
	return db.Create(post).Error
}

// FindFollowedPosts - лента: объединение собственных постов пользователя и постов
// тех, на кого он подписан. Условие OR по одной таблице дает каждый пост ровно один раз.
func (r *PostRepositoryImpl) FindFollowedPosts(db *gorm.DB, userID string, limit, offset int) ([]models.Post, int64, error) {
	followed := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Follow{}).
		Select("followed_id").
		Where("follower_id = ?", userID)
	scope := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("posts.user_id = ? OR posts.user_id IN (?)", userID, followed)
	}
	return r.page(db, scope, limit, offset)
}

func (r *PostRepositoryImpl) FindAll(db *gorm.DB, limit, offset int) ([]models.Post, int64, error) {
	return r.page(db, func(tx *gorm.DB) *gorm.DB { return tx }, limit, offset)
}

func (r *PostRepositoryImpl) FindByAuthor(db *gorm.DB, userID string, limit, offset int) ([]models.Post, int64, error) {
	scope := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("posts.user_id = ?", userID)
	}
	return r.page(db, scope, limit, offset)
}

// page считает total и выбирает страницу, новые посты первыми.
// id - детерминированный tie-break для постов с одинаковым временем.
func (r *PostRepositoryImpl) page(db *gorm.DB, scope func(*gorm.DB) *gorm.DB, limit, offset int) ([]models.Post, int64, error) {
	var (
		posts []models.Post
		total int64
	)

	if err := db.Model(&models.Post{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Model(&models.Post{}).Scopes(scope).
		Preload("Author").
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
