package web

import (
	"bytes"
	"testing"
	"time"

	"microblog/internal/i18n"
	"microblog/internal/models"
	"microblog/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_RenderIndex(t *testing.T) {
	bundle, err := i18n.New([]string{"en", "es"})
	require.NoError(t, err)
	tmpl, err := Templates(bundle)
	require.NoError(t, err)

	john := &models.User{Username: "john", Email: "john@example.com"}
	posts := []models.Post{
		{ID: "p1", Body: "hola <b>mundo</b>", Language: "es", CreatedAt: time.Now(), Author: *john},
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "index.html", map[string]interface{}{
		"Title":       "Home",
		"Locale":      "en",
		"Languages":   bundle.Languages(),
		"CurrentUser": john,
		"Flashes":     []string{"Your post is now live!"},
		"CSRFToken":   "tok",
		"ShowForm":    true,
		"Form":        &dto.PostRequest{},
		"Errors":      map[string]string{},
		"Posts":       dto.NewPostPage(posts, 1, 1, 25),
		"PageURL":     "/index",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Hi, john!")
	assert.Contains(t, out, "Your post is now live!")
	assert.Contains(t, out, `name="csrf_token" value="tok"`)
	assert.Contains(t, out, "hola &lt;b&gt;mundo&lt;/b&gt;")
	assert.Contains(t, out, "translation")
	assert.Contains(t, out, "gravatar.com/avatar/")
}

func TestTemplates_SpanishLabels(t *testing.T) {
	bundle, err := i18n.New([]string{"en", "es"})
	require.NoError(t, err)
	tmpl, err := Templates(bundle)
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "login.html", map[string]interface{}{
		"Title":     "Sign In",
		"Locale":    "es",
		"Languages": bundle.Languages(),
		"Form":      &dto.LoginRequest{},
		"Errors":    map[string]string{},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Recordarme")
	assert.Contains(t, buf.String(), "Contraseña")
}

func TestDict(t *testing.T) {
	m, err := dict("a", 1, "b", "x")
	require.NoError(t, err)
	assert.Equal(t, 1, m["a"])

	_, err = dict("a")
	assert.Error(t, err)
}
