package app_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"microblog/internal/models"
	"microblog/internal/services/dto"
	"microblog/internal/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymousRedirectedToLogin(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	client := ts.NewClient(t)

	resp, body := client.Get("/index")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Equal(t, "/index", resp.Request.URL.Query().Get("next"))
	assert.Contains(t, body, "Please log in to access this page.")
}

func TestRegisterLoginLogout(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	client := ts.NewClient(t)

	resp, body := client.Register("susan", "susan@example.com", "cat")
	assert.Equal(t, "/index", resp.Request.URL.Path)
	assert.Contains(t, body, "Congratulations, you are now a registered user!")

	// уже залогинен - страница входа уводит на главную
	resp, _ = client.Get("/login")
	assert.Equal(t, "/index", resp.Request.URL.Path)

	resp, _ = client.Get("/logout")
	assert.Equal(t, "/login", resp.Request.URL.Path)

	resp, body = client.Login("susan", "dog")
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "Invalid username or password")

	resp, _ = client.Login("susan", "cat")
	assert.Equal(t, "/index", resp.Request.URL.Path)
}

func TestLogin_RedirectsToNext(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	testhelpers.CreateUser(t, ts.DB, "susan", "susan@example.com", "cat")
	client := ts.NewClient(t)

	resp, _ := client.PostForm("/login?next=%2Fexplore", url.Values{"username": {"susan"}, "password": {"cat"}})
	assert.Equal(t, "/explore", resp.Request.URL.Path)

	client.Get("/logout")

	// внешний адрес игнорируется
	resp, _ = client.PostForm("/login?next=https%3A%2F%2Fevil.example.com", url.Values{"username": {"susan"}, "password": {"cat"}})
	assert.Equal(t, "/index", resp.Request.URL.Path)
	assert.Equal(t, strings.TrimPrefix(ts.Server.URL, "http://"), resp.Request.URL.Host)
}

func TestRegister_Validation(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	testhelpers.CreateUser(t, ts.DB, "susan", "susan@example.com", "cat")
	client := ts.NewClient(t)

	resp, body := client.Register("susan", "other@example.com", "cat")
	assert.Equal(t, "/register", resp.Request.URL.Path)
	assert.Contains(t, body, "Please use a different username.")

	resp, body = client.PostForm("/register", url.Values{
		"username":  {"john"},
		"email":     {"john@example.com"},
		"password":  {"cat"},
		"password2": {"dog"},
	})
	assert.Equal(t, "/register", resp.Request.URL.Path)
	assert.NotContains(t, body, "Congratulations")

	var count int64
	require.NoError(t, ts.DB.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFollowPostFeed(t *testing.T) {
	ts := testhelpers.NewTestServer(t)

	susan := ts.NewClient(t)
	susan.Register("susan", "susan@example.com", "cat")
	john := ts.NewClient(t)
	john.Register("john", "john@example.com", "dog")

	resp, body := john.PostForm("/index", url.Values{"post": {"hello from john"}})
	assert.Equal(t, "/index", resp.Request.URL.Path)
	assert.Contains(t, body, "Your post is now live!")
	assert.Contains(t, body, "hello from john")

	_, body = susan.Get("/index")
	assert.NotContains(t, body, "hello from john")
	_, body = susan.Get("/explore")
	assert.Contains(t, body, "hello from john")

	resp, body = susan.PostForm("/follow/john", nil)
	assert.Equal(t, "/user/john", resp.Request.URL.Path)
	assert.Contains(t, body, "You are following john!")
	assert.Contains(t, body, "1 followers")

	_, body = susan.Get("/index")
	assert.Contains(t, body, "hello from john")

	susan.PostForm("/index", url.Values{"post": {"susan was here"}})

	resp, body = susan.PostForm("/unfollow/john", nil)
	assert.Equal(t, "/user/john", resp.Request.URL.Path)
	assert.Contains(t, body, "You are not following john.")

	john.PostForm("/index", url.Values{"post": {"world"}})

	_, body = susan.Get("/index")
	assert.NotContains(t, body, "hello from john")
	assert.NotContains(t, body, "\">world</span>")
	assert.Contains(t, body, "susan was here")
}

func TestFollow_EdgeCases(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	client := ts.NewClient(t)
	client.Register("susan", "susan@example.com", "cat")

	resp, body := client.PostForm("/follow/nobody", nil)
	assert.Equal(t, "/index", resp.Request.URL.Path)
	assert.Contains(t, body, "User nobody not found.")

	resp, body = client.PostForm("/follow/susan", nil)
	assert.Equal(t, "/user/susan", resp.Request.URL.Path)
	assert.Contains(t, body, "You cannot follow yourself!")

	resp, body = client.PostForm("/unfollow/susan", nil)
	assert.Equal(t, "/user/susan", resp.Request.URL.Path)
	assert.Contains(t, body, "You cannot unfollow yourself!")
}

func TestCreatePost_TooLong(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	client := ts.NewClient(t)
	client.Register("susan", "susan@example.com", "cat")

	resp, body := client.PostForm("/index", url.Values{"post": {strings.Repeat("a", 141)}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "Your post is now live!")

	var count int64
	require.NoError(t, ts.DB.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUserPage(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	client := ts.NewClient(t)
	client.Register("susan", "susan@example.com", "cat")

	resp, body := client.Get("/user/susan")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Edit your profile")

	resp, _ = client.Get("/user/nobody")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = client.Get("/no/such/page")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEditProfile(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	testhelpers.CreateUser(t, ts.DB, "john", "john@example.com", "dog")
	client := ts.NewClient(t)
	client.Register("susan", "susan@example.com", "cat")

	resp, body := client.PostForm("/edit_profile", url.Values{"username": {"susan2"}, "about_me": {"I like cats"}})
	assert.Equal(t, "/edit_profile", resp.Request.URL.Path)
	assert.Contains(t, body, "Your changes have been saved.")

	_, body = client.Get("/user/susan2")
	assert.Contains(t, body, "I like cats")

	_, body = client.PostForm("/edit_profile", url.Values{"username": {"john"}})
	assert.Contains(t, body, "Please use a different username.")
}

var resetLinkRe = regexp.MustCompile(`/reset_password/([A-Za-z0-9_\-.]+)`)

func TestPasswordReset(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	testhelpers.CreateUser(t, ts.DB, "susan", "susan@example.com", "cat")
	client := ts.NewClient(t)

	resp, body := client.PostForm("/reset_password_request", url.Values{"email": {"susan@example.com"}})
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "Check your email for the instructions to reset your password")

	require.Eventually(t, func() bool { return len(ts.Mail.Sent()) == 1 }, 2*time.Second, 10*time.Millisecond)
	msg := ts.Mail.Sent()[0]
	assert.Equal(t, []string{"susan@example.com"}, msg.To)
	assert.Equal(t, "[Microblog] Reset Your Password", msg.Subject)

	match := resetLinkRe.FindStringSubmatch(msg.Body)
	require.Len(t, match, 2, "в письме нет ссылки сброса")
	token := match[1]

	resp, _ = client.Get("/reset_password/" + token)
	assert.Equal(t, "/reset_password/"+token, resp.Request.URL.Path)

	resp, body = client.PostForm("/reset_password/"+token, url.Values{"password": {"newcat"}, "password2": {"newcat"}})
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "Your password has been reset.")

	resp, _ = client.Login("susan", "cat")
	assert.Equal(t, "/login", resp.Request.URL.Path)
	resp, _ = client.Login("susan", "newcat")
	assert.Equal(t, "/index", resp.Request.URL.Path)
}

func TestPasswordReset_UnknownEmailAndBadToken(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	client := ts.NewClient(t)

	resp, body := client.PostForm("/reset_password_request", url.Values{"email": {"nobody@example.com"}})
	assert.Equal(t, "/login", resp.Request.URL.Path)
	assert.Contains(t, body, "Check your email for the instructions to reset your password")
	assert.Never(t, func() bool { return len(ts.Mail.Sent()) > 0 }, 200*time.Millisecond, 20*time.Millisecond)

	// неверный токен уводит на главную, а она - на вход
	resp, _ = client.Get("/reset_password/not-a-token")
	assert.Equal(t, "/login", resp.Request.URL.Path)
}

func TestTranslate(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	client := ts.NewClient(t)
	client.Register("susan", "susan@example.com", "cat")

	resp, body := client.PostForm("/translate", url.Values{
		"text":            {"Hola mundo"},
		"source_language": {"es"},
		"dest_language":   {"en"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.TranslateResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "[en] Hola mundo", out.Text)

	resp, _ = client.PostForm("/translate", url.Values{"text": {"Hola"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAPI(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	john := testhelpers.CreateUser(t, ts.DB, "john", "john@example.com", "dog")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		testhelpers.CreatePost(t, ts.DB, john, "post "+string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
	}
	client := ts.NewClient(t)

	resp, body := client.Get("/api/v1/users/john")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var profile dto.ProfileResponse
	require.NoError(t, json.Unmarshal([]byte(body), &profile))
	assert.Equal(t, "john", profile.Username)
	assert.Contains(t, profile.Avatar, "gravatar.com")

	resp, _ = client.Get("/api/v1/users/nobody")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = client.Get("/api/v1/users/john/posts?page=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.PostListResponse
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.EqualValues(t, 5, list.Total)
	assert.Equal(t, 2, list.Pages)
	require.Len(t, list.Posts, 2)
	// новые первыми: на второй странице самые старые
	assert.Equal(t, "post b", list.Posts[0].Body)
	assert.Equal(t, "post a", list.Posts[1].Body)
	assert.Equal(t, "john", list.Posts[0].Author.Username)

	resp, body = client.Get("/api/v1/explore?page_size=10")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Len(t, list.Posts, 5)
}

func TestHealth(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	client := ts.NewClient(t)

	resp, body := client.Get("/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"ok"`)
	assert.Contains(t, body, `"database":"ok"`)
}

func TestLocaleSwitch(t *testing.T) {
	ts := testhelpers.NewTestServer(t)
	client := ts.NewClient(t)

	resp, _ := client.Get("/login?lang=es")
	assert.Equal(t, "es", resp.Header.Get("Content-Language"))

	// выбор запоминается в cookie
	resp, _ = client.Get("/login")
	assert.Equal(t, "es", resp.Header.Get("Content-Language"))
}
