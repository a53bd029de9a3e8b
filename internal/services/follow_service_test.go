package services_test

import (
	"context"
	"testing"

	"microblog/internal/repositories"
	"microblog/internal/testhelpers"
	"microblog/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowService_FollowUnfollow(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := newTestServices(t)
	ctx := context.Background()
	john := testhelpers.CreateUser(t, db, "john", "john@example.com", "x")
	susan := testhelpers.CreateUser(t, db, "susan", "susan@example.com", "x")

	target, err := svc.FollowService.Follow(ctx, db, john.ID, "susan")
	require.NoError(t, err)
	assert.Equal(t, susan.ID, target.ID)

	ok, err := svc.FollowService.IsFollowing(ctx, db, john.ID, susan.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// повторная подписка не ошибка
	_, err = svc.FollowService.Follow(ctx, db, john.ID, "susan")
	require.NoError(t, err)

	_, err = svc.FollowService.Unfollow(ctx, db, john.ID, "susan")
	require.NoError(t, err)
	ok, err = svc.FollowService.IsFollowing(ctx, db, john.ID, susan.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.FollowService.Unfollow(ctx, db, john.ID, "susan")
	assert.NoError(t, err)
}

func TestFollowService_RejectsSelf(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := newTestServices(t)
	ctx := context.Background()
	john := testhelpers.CreateUser(t, db, "john", "john@example.com", "x")

	_, err := svc.FollowService.Follow(ctx, db, john.ID, "john")
	assert.ErrorIs(t, err, apperrors.ErrCannotFollowSelf)

	_, err = svc.FollowService.Unfollow(ctx, db, john.ID, "john")
	assert.ErrorIs(t, err, apperrors.ErrCannotUnfollowSelf)

	// граф не изменился, хотя репозиторий петлю бы допустил
	ok, err := repositories.NewFollowRepository().IsFollowing(db, john.ID, john.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFollowService_UnknownUser(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := newTestServices(t)
	john := testhelpers.CreateUser(t, db, "john", "john@example.com", "x")

	_, err := svc.FollowService.Follow(context.Background(), db, john.ID, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
