package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kidspace/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(a *Authenticator) *gin.Engine {
	r := gin.New()
	whoami := func(c *gin.Context) {
		user, ok := GetUserFromRequest(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user.Nickname})
	}
	r.GET("/private", a.AuthMiddleware(), whoami)
	r.GET("/admin", a.AuthMiddleware(), AdminMiddleware(), whoami)
	r.GET("/optional", a.OptionalAuth(), whoami)
	return r
}

func get(r http.Handler, path string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func TestAuthenticator_IssueAndParse(t *testing.T) {
	a := NewAuthenticator("test-secret")
	token, expiresAt, err := a.IssueToken(models.User{ID: 3, Nickname: "kid", IsAdmin: true})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(DefaultTokenTTL), expiresAt, time.Minute)

	claims, err := a.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), claims.UserID)
	assert.Equal(t, "kid", claims.Nickname)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "3", claims.Subject)
}

func TestAuthenticator_RejectsBadTokens(t *testing.T) {
	a := NewAuthenticator("test-secret")
	token, _, err := a.IssueToken(models.User{ID: 3, Nickname: "kid"})
	require.NoError(t, err)

	_, err = NewAuthenticator("other-secret").ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewAuthenticator("test-secret")
	expired.Now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	_, err = expired.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = a.ParseToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthMiddleware(t *testing.T) {
	a := NewAuthenticator("test-secret")
	r := protectedRouter(a)
	token, _, err := a.IssueToken(models.User{ID: 1, Nickname: "kid"})
	require.NoError(t, err)

	w := get(r, "/private", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"No token provided"}`, w.Body.String())

	w = get(r, "/private", bearer("garbage"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/private", bearer(token))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"kid"}`, w.Body.String())

	w = get(r, "/private", func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminMiddleware(t *testing.T) {
	a := NewAuthenticator("test-secret")
	r := protectedRouter(a)
	kid, _, _ := a.IssueToken(models.User{ID: 1, Nickname: "kid"})
	admin, _, _ := a.IssueToken(models.User{ID: 2, Nickname: "Admin", IsAdmin: true})

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", bearer(kid)).Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", bearer(admin)).Code)
}

func TestOptionalAuth(t *testing.T) {
	a := NewAuthenticator("test-secret")
	r := protectedRouter(a)
	token, _, _ := a.IssueToken(models.User{ID: 1, Nickname: "kid"})

	assert.JSONEq(t, `{"user":null}`, get(r, "/optional", nil).Body.String())
	assert.JSONEq(t, `{"user":null}`, get(r, "/optional", bearer("garbage")).Body.String())
	assert.JSONEq(t, `{"user":"kid"}`, get(r, "/optional", bearer(token)).Body.String())
}
