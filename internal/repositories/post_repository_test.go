package repositories_test

import (
	"testing"
	"time"

	"microblog/internal/models"
	"microblog/internal/repositories"
	"microblog/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bodies(posts []models.Post) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Body)
	}
	return out
}

func TestPostRepository_FindFollowedPosts(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	posts := repositories.NewPostRepository()
	follows := repositories.NewFollowRepository()

	john := testhelpers.CreateUser(t, db, "john", "john@example.com", "pw")
	susan := testhelpers.CreateUser(t, db, "susan", "susan@example.com", "pw")
	mary := testhelpers.CreateUser(t, db, "mary", "mary@example.com", "pw")
	david := testhelpers.CreateUser(t, db, "david", "david@example.com", "pw")

	now := time.Now().UTC()
	testhelpers.CreatePost(t, db, john, "post from john", now.Add(1*time.Second))
	testhelpers.CreatePost(t, db, susan, "post from susan", now.Add(4*time.Second))
	testhelpers.CreatePost(t, db, mary, "post from mary", now.Add(3*time.Second))
	testhelpers.CreatePost(t, db, david, "post from david", now.Add(2*time.Second))

	require.NoError(t, follows.Follow(db, john.ID, susan.ID))
	require.NoError(t, follows.Follow(db, john.ID, david.ID))
	require.NoError(t, follows.Follow(db, susan.ID, mary.ID))
	require.NoError(t, follows.Follow(db, mary.ID, david.ID))

	cases := []struct {
		user *models.User
		want []string
	}{
		{john, []string{"post from susan", "post from david", "post from john"}},
		{susan, []string{"post from susan", "post from mary"}},
		{mary, []string{"post from mary", "post from david"}},
		{david, []string{"post from david"}},
	}

	for _, tc := range cases {
		t.Run(tc.user.Username, func(t *testing.T) {
			got, total, err := posts.FindFollowedPosts(db, tc.user.ID, 10, 0)
			require.NoError(t, err)
			assert.EqualValues(t, len(tc.want), total)
			assert.Equal(t, tc.want, bodies(got))
		})
	}
}

// Пост, чей автор одновременно "свой" и "подписка", встречается один раз.
func TestPostRepository_FindFollowedPosts_NoDuplicatesWithSelfEdge(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	posts := repositories.NewPostRepository()
	follows := repositories.NewFollowRepository()

	john := testhelpers.CreateUser(t, db, "john", "john@example.com", "pw")
	testhelpers.CreatePost(t, db, john, "only post", time.Now().UTC())
	require.NoError(t, follows.Follow(db, john.ID, john.ID))

	got, total, err := posts.FindFollowedPosts(db, john.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, []string{"only post"}, bodies(got))
}

func TestPostRepository_Pagination(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	posts := repositories.NewPostRepository()

	john := testhelpers.CreateUser(t, db, "john", "john@example.com", "pw")
	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		testhelpers.CreatePost(t, db, john, string(rune('a'+i)), base.Add(time.Duration(i)*time.Second))
	}

	page1, total, err := posts.FindByAuthor(db, john.ID, 2, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, []string{"e", "d"}, bodies(page1))

	page3, _, err := posts.FindAll(db, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, bodies(page3))
	assert.Equal(t, "john", page3[0].Author.Username, "автор должен подгружаться")
}
