package testhelpers

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"microblog/internal/auth"
	"microblog/internal/database"
	"microblog/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewTestDB открывает отдельную in-memory sqlite базу на каждый тест и мигрирует схему.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())

	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err, "не удалось открыть тестовую БД")
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser создает пользователя с захешированным паролем.
func CreateUser(t *testing.T, db *gorm.DB, username, email, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	require.NoError(t, db.Create(user).Error, "не удалось создать пользователя %s", username)
	return user
}

// CreatePost создает пост с явным временем создания.
func CreatePost(t *testing.T, db *gorm.DB, author *models.User, body string, at time.Time) *models.Post {
	t.Helper()

	post := &models.Post{Body: body, UserID: author.ID, CreatedAt: at}
	require.NoError(t, db.Create(post).Error)
	return post
}
