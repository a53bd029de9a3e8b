package services

import (
	"context"
	"strings"
	"time"

	"microblog/internal/logger"
	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/internal/services/dto"
	"microblog/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error)
	GetByUsername(ctx context.Context, db *gorm.DB, username string) (*models.User, error)
	GetProfile(ctx context.Context, db *gorm.DB, username, viewerID string) (*dto.ProfileView, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.EditProfileRequest) (*models.User, error)
	TouchLastSeen(ctx context.Context, db *gorm.DB, userID string) error
	List(ctx context.Context, db *gorm.DB, page, perPage int) ([]models.User, int64, error)
}

type UserServiceImpl struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
	now        func() time.Time
}

func NewUserService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) UserService {
	return &UserServiceImpl{
		userRepo:   userRepo,
		followRepo: followRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *UserServiceImpl) GetByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		return nil, mapUserRepoError(err)
	}
	return user, nil
}

func (s *UserServiceImpl) GetByUsername(ctx context.Context, db *gorm.DB, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(db, username)
	if err != nil {
		return nil, mapUserRepoError(err)
	}
	return user, nil
}

// GetProfile собирает страницу пользователя глазами viewerID (может быть пустым).
func (s *UserServiceImpl) GetProfile(ctx context.Context, db *gorm.DB, username, viewerID string) (*dto.ProfileView, error) {
	user, err := s.GetByUsername(ctx, db, username)
	if err != nil {
		return nil, err
	}

	view := &dto.ProfileView{User: user, IsSelf: viewerID != "" && viewerID == user.ID}

	if view.Followers, err = s.followRepo.CountFollowers(db, user.ID); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if view.Following, err = s.followRepo.CountFollowing(db, user.ID); err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	if viewerID != "" && !view.IsSelf {
		if view.IsFollowing, err = s.followRepo.IsFollowing(db, viewerID, user.ID); err != nil {
			return nil, apperrors.DatabaseError(err)
		}
	}
	return view, nil
}

// UpdateProfile проверяет уникальность нового имени только если оно изменилось.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.EditProfileRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	username := strings.TrimSpace(req.Username)
	if username != user.Username {
		exists, err := s.userRepo.UsernameExists(db, username)
		if err != nil {
			return nil, apperrors.DatabaseError(err)
		}
		if exists {
			return nil, apperrors.ErrUsernameTaken
		}
	}

	if err := s.userRepo.UpdateProfile(db, userID, username, req.AboutMe); err != nil {
		return nil, mapUserRepoError(err)
	}

	user.Username = username
	user.AboutMe = req.AboutMe
	logger.CtxInfo(ctx, "Profile updated", "user_id", userID)
	return user, nil
}

func (s *UserServiceImpl) TouchLastSeen(ctx context.Context, db *gorm.DB, userID string) error {
	if err := s.userRepo.TouchLastSeen(db, userID, s.now()); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (s *UserServiceImpl) List(ctx context.Context, db *gorm.DB, page, perPage int) ([]models.User, int64, error) {
	page, perPage = normalizePage(page, perPage)
	users, total, err := s.userRepo.List(db, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, apperrors.DatabaseError(err)
	}
	return users, total, nil
}
