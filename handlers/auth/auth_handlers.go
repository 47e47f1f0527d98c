package auth

import (
	"errors"
	"net/http"

	"kidspace/middleware"
	"kidspace/models"
	"kidspace/services"
	"kidspace/utils/response"

	"github.com/gin-gonic/gin"
)

// Login issues a token for an existing nickname
// @Summary Login
// @Description Exchange a nickname for an access token, also set as a cookie. Admin accounts also need the password.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login Request"
// @Success 200 {object} AuthResponse
// @Failure 400,401,404,500 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Users.Login(c.Request.Context(), req.Nickname, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBadPassword):
			response.Error(c, http.StatusUnauthorized, ErrInvalidCredentials)
		case errors.Is(err, services.ErrNotFound):
			response.Error(c, http.StatusNotFound, ErrUserNotFound)
		default:
			response.FromServiceError(c, err, ErrUserNotFound)
		}
		return
	}
	h.respondWithToken(c, http.StatusOK, user)
}

// Register creates a new user and logs it in
// @Summary Register
// @Description Create a non admin user with a unique nickname
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Register Request"
// @Success 201 {object} AuthResponse
// @Failure 400,409,500 {object} map[string]string
// @Router /auth/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.Users.Create(c.Request.Context(), req.Nickname)
	if err != nil {
		response.FromServiceError(c, err, ErrUserCreateFailed)
		return
	}
	h.respondWithToken(c, http.StatusCreated, user)
}

// CheckAuth returns the user behind the current token
// @Summary Check authentication
// @Tags Auth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401,404 {object} map[string]string
// @Router /auth/check [get]
// @Security Bearer
func (h *Handler) CheckAuth(c *gin.Context) {
	claimed, _ := middleware.GetUserFromRequest(c)
	user, err := h.Users.GetByID(c.Request.Context(), claimed.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.Error(c, http.StatusNotFound, ErrUserNotFound)
			return
		}
		response.FromServiceError(c, err, ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Logout clears the auth cookie
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	middleware.ClearCookieToken(c, h.SecureCookies)
	c.JSON(http.StatusOK, gin.H{"message": ErrLogoutSuccess})
}

func (h *Handler) respondWithToken(c *gin.Context, status int, user models.User) {
	token, expiresAt, err := h.Auth.IssueToken(user)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, ErrTokenGenerateFailed)
		return
	}
	middleware.SetCookieToken(c, token, h.Auth.TTL, h.SecureCookies)
	c.JSON(status, AuthResponse{Token: token, ExpiresAt: expiresAt.Unix(), User: user})
}
