package repositories

import (
	"errors"
	"time"

	"microblog/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")
	ErrEmailTaken    = errors.New("email already taken")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	UsernameExists(db *gorm.DB, username string) (bool, error)
	EmailExists(db *gorm.DB, email string) (bool, error)
	UpdateProfile(db *gorm.DB, id, username, aboutMe string) error
	UpdatePassword(db *gorm.DB, id, passwordHash string) error
	TouchLastSeen(db *gorm.DB, id string, at time.Time) error
	List(db *gorm.DB, limit, offset int) ([]models.User, int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

// Create полагается на уникальные индексы: дубликат приходит как gorm.ErrDuplicatedKey,
// и мы уточняем, какое из полей занято.
func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	err := db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if exists, _ := r.UsernameExists(db, user.Username); exists {
			return ErrUsernameTaken
		}
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	return r.findOne(db, "id = ?", id)
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	return r.findOne(db, "username = ?", username)
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.findOne(db, "email = ?", email)
}

func (r *UserRepositoryImpl) findOne(db *gorm.DB, query string, arg interface{}) (*models.User, error) {
	var user models.User
	err := db.Where(query, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UsernameExists(db *gorm.DB, username string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) EmailExists(db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) UpdateProfile(db *gorm.DB, id, username, aboutMe string) error {
	result := db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"username": username,
		"about_me": aboutMe,
	})
	if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
		return ErrUsernameTaken
	}
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(db *gorm.DB, id, passwordHash string) error {
	result := db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// TouchLastSeen не трогает updated_at: визит пользователя - не изменение профиля.
func (r *UserRepositoryImpl) TouchLastSeen(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.User{}).Where("id = ?", id).UpdateColumn("last_seen", at).Error
}

func (r *UserRepositoryImpl) List(db *gorm.DB, limit, offset int) ([]models.User, int64, error) {
	var (
		users []models.User
		total int64
	)
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := db.Order("username ASC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}
