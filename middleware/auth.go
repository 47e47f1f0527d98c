package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kidspace/models"
	"kidspace/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	AuthCookieName  = "access_token"
	DefaultTokenTTL = 24 * time.Hour

	userContextKey = "user"
)

const (
	ErrNoTokenProvided     = "No token provided"
	ErrInvalidExpiredToken = "Invalid or expired token"
	ErrAdminRequired       = "Admin privileges required"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload of an access token
type Claims struct {
	UserID   uint   `json:"user_id"`
	Nickname string `json:"nickname"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// Authenticator issues and checks HS256 tokens signed with the app secret
type Authenticator struct {
	secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret), TTL: DefaultTokenTTL, Now: time.Now}
}

// IssueToken signs a token for user and returns it with its expiry
func (a *Authenticator) IssueToken(user models.User) (string, time.Time, error) {
	now := a.Now()
	expiresAt := now.Add(a.TTL)
	claims := Claims{
		UserID:   user.ID,
		Nickname: user.Nickname,
		IsAdmin:  user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (a *Authenticator) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(a.Now))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SetCookieToken stores the token as an HTTP-only cookie
func SetCookieToken(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

func ClearCookieToken(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AuthCookieName, "", -1, "/", "", secure, true)
}

// tokenFromRequest reads the bearer header first, then the cookie
func tokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware rejects requests without a valid token
func (a *Authenticator) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, ErrNoTokenProvided)
			c.Abort()
			return
		}
		claims, err := a.ParseToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, ErrInvalidExpiredToken)
			c.Abort()
			return
		}
		c.Set(userContextKey, claims.User())
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and never rejects
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if claims, err := a.ParseToken(token); err == nil {
				c.Set(userContextKey, claims.User())
			}
		}
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUserFromRequest(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, ErrNoTokenProvided)
			c.Abort()
			return
		}
		if !user.IsAdmin {
			response.Error(c, http.StatusForbidden, ErrAdminRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserFromRequest returns the user attached by the auth middlewares
func GetUserFromRequest(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func (cl *Claims) User() *models.User {
	return &models.User{ID: cl.UserID, Nickname: cl.Nickname, IsAdmin: cl.IsAdmin}
}
