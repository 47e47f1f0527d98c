package challenges

import (
	"errors"
	"net/http"
	"strconv"

	"kidspace/middleware"
	"kidspace/services"
	"kidspace/utils/response"

	"github.com/gin-gonic/gin"
)

// GetChallenges lists approved challenges
// @Summary List challenges
// @Description Get every approved challenge, newest first
// @Tags Challenges
// @Produce json
// @Success 200 {array} models.Challenge
// @Failure 500 {object} map[string]string
// @Router /challenges [get]
func (h *Handler) GetChallenges(c *gin.Context) {
	challenges, err := h.Challenges.ListApproved(c.Request.Context())
	if err != nil {
		response.FromServiceError(c, err, ErrFailedToGetChallenges)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

// GetChallenge returns one challenge
// @Summary Get a challenge
// @Description Unapproved challenges are only returned to their creator and to admins
// @Tags Challenges
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} models.Challenge
// @Failure 400,404,500 {object} map[string]string
// @Router /challenges/{id} [get]
func (h *Handler) GetChallenge(c *gin.Context) {
	id, ok := challengeID(c)
	if !ok {
		return
	}
	viewer, _ := middleware.GetUserFromRequest(c)
	challenge, err := h.Challenges.Get(c.Request.Context(), id, viewer)
	if err != nil {
		notFoundOr(c, err, ErrFailedToGetChallenges)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// CreateChallenge proposes a new challenge
// @Summary Propose a challenge
// @Description The challenge stays hidden until an admin approves it
// @Tags Challenges
// @Accept json
// @Produce json
// @Param request body CreateChallengeRequest true "Challenge"
// @Success 201 {object} models.Challenge
// @Failure 400,401,500 {object} map[string]string
// @Router /challenges [post]
// @Security Bearer
func (h *Handler) CreateChallenge(c *gin.Context) {
	user, _ := middleware.GetUserFromRequest(c)

	var req CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	challenge, err := h.Challenges.Create(c.Request.Context(), user.ID, req.Title, req.Description)
	if err != nil {
		notFoundOr(c, err, ErrFailedToCreateChallenge)
		return
	}
	c.JSON(http.StatusCreated, challenge)
}

// challengeID parses the :id path parameter, answering 400 when it is not a positive integer
func challengeID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, ErrInvalidChallengeID)
		return 0, false
	}
	return uint(id), true
}

func notFoundOr(c *gin.Context, err error, fallback string) {
	if errors.Is(err, services.ErrUnknownUser) {
		// token outlived its user
		response.Error(c, http.StatusUnauthorized, middleware.ErrInvalidExpiredToken)
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
		return
	}
	response.FromServiceError(c, err, fallback)
}
