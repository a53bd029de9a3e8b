package services

import (
	"context"

	"microblog/internal/logger"
	"microblog/internal/metrics"
	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/pkg/apperrors"

	"gorm.io/gorm"
)

// FollowService - политика над графом подписок: репозиторий допускает
// петлю A->A, сервис ее запрещает.
type FollowService interface {
	Follow(ctx context.Context, db *gorm.DB, followerID, username string) (*models.User, error)
	Unfollow(ctx context.Context, db *gorm.DB, followerID, username string) (*models.User, error)
	IsFollowing(ctx context.Context, db *gorm.DB, followerID, followedID string) (bool, error)
}

type FollowServiceImpl struct {
	userRepo   repositories.UserRepository
	followRepo repositories.FollowRepository
}

func NewFollowService(userRepo repositories.UserRepository, followRepo repositories.FollowRepository) FollowService {
	return &FollowServiceImpl{userRepo: userRepo, followRepo: followRepo}
}

// Follow идемпотентен: повторная подписка не ошибка.
func (s *FollowServiceImpl) Follow(ctx context.Context, db *gorm.DB, followerID, username string) (*models.User, error) {
	target, err := s.userRepo.FindByUsername(db, username)
	if err != nil {
		return nil, mapUserRepoError(err)
	}
	if target.ID == followerID {
		return nil, apperrors.ErrCannotFollowSelf
	}

	if err := s.followRepo.Follow(db, followerID, target.ID); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	metrics.FollowEvents.WithLabelValues("follow").Inc()
	logger.CtxInfo(ctx, "User followed", "follower_id", followerID, "followed_id", target.ID)
	return target, nil
}

func (s *FollowServiceImpl) Unfollow(ctx context.Context, db *gorm.DB, followerID, username string) (*models.User, error) {
	target, err := s.userRepo.FindByUsername(db, username)
	if err != nil {
		return nil, mapUserRepoError(err)
	}
	if target.ID == followerID {
		return nil, apperrors.ErrCannotUnfollowSelf
	}

	if err := s.followRepo.Unfollow(db, followerID, target.ID); err != nil {
		return nil, apperrors.DatabaseError(err)
	}

	metrics.FollowEvents.WithLabelValues("unfollow").Inc()
	logger.CtxInfo(ctx, "User unfollowed", "follower_id", followerID, "followed_id", target.ID)
	return target, nil
}

func (s *FollowServiceImpl) IsFollowing(ctx context.Context, db *gorm.DB, followerID, followedID string) (bool, error) {
	ok, err := s.followRepo.IsFollowing(db, followerID, followedID)
	if err != nil {
		return false, apperrors.DatabaseError(err)
	}
	return ok, nil
}
