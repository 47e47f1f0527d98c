package admin

import (
	"errors"
	"net/http"
	"strconv"

	"kidspace/middleware"
	"kidspace/services"
	"kidspace/utils/response"

	"github.com/gin-gonic/gin"
)

// GetPending returns every challenge and solution waiting for approval
// @Summary Moderation queue
// @Tags Admin
// @Produce json
// @Success 200 {object} PendingResponse
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/pending [get]
// @Security Bearer
func (h *Handler) GetPending(c *gin.Context) {
	ctx := c.Request.Context()
	challenges, err := h.Challenges.ListPending(ctx)
	if err != nil {
		response.FromServiceError(c, err, ErrFailedToGetPending)
		return
	}
	solutions, err := h.Solutions.ListPending(ctx)
	if err != nil {
		response.FromServiceError(c, err, ErrFailedToGetPending)
		return
	}
	c.JSON(http.StatusOK, PendingResponse{Challenges: challenges, Solutions: solutions})
}

// ApproveChallenge makes a challenge public
// @Summary Approve a challenge
// @Tags Admin
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {object} models.Challenge
// @Failure 400,401,403,404,500 {object} map[string]string
// @Router /admin/challenges/{id}/approve [put]
// @Security Bearer
func (h *Handler) ApproveChallenge(c *gin.Context) {
	admin, _ := middleware.GetUserFromRequest(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	challenge, err := h.Challenges.Approve(c.Request.Context(), admin.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.Error(c, http.StatusNotFound, ErrChallengeNotFound)
			return
		}
		response.FromServiceError(c, err, ErrFailedToApprove)
		return
	}
	c.JSON(http.StatusOK, challenge)
}

// ApproveSolution makes a solution visible in its challenge gallery
// @Summary Approve a solution
// @Tags Admin
// @Produce json
// @Param id path int true "Solution ID"
// @Success 200 {object} models.Solution
// @Failure 400,401,403,404,500 {object} map[string]string
// @Router /admin/solutions/{id}/approve [put]
// @Security Bearer
func (h *Handler) ApproveSolution(c *gin.Context) {
	admin, _ := middleware.GetUserFromRequest(c)
	id, ok := pathID(c)
	if !ok {
		return
	}
	solution, err := h.Solutions.Approve(c.Request.Context(), admin.ID, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			response.Error(c, http.StatusNotFound, ErrSolutionNotFound)
			return
		}
		response.FromServiceError(c, err, ErrFailedToApprove)
		return
	}
	c.JSON(http.StatusOK, solution)
}

// Export downloads users, challenges and solutions as a spreadsheet
// @Summary Export submissions
// @Tags Admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 401,403,500 {object} map[string]string
// @Router /admin/export [get]
// @Security Bearer
func (h *Handler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	users, err := h.Users.List(ctx)
	if err != nil {
		response.FromServiceError(c, err, ErrFailedToExport)
		return
	}
	challenges, err := h.Challenges.ListAll(ctx)
	if err != nil {
		response.FromServiceError(c, err, ErrFailedToExport)
		return
	}
	solutions, err := h.Solutions.ListAll(ctx)
	if err != nil {
		response.FromServiceError(c, err, ErrFailedToExport)
		return
	}

	xlsx, err := buildWorkbook(users, challenges, solutions)
	if err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, ErrFailedToExport)
		return
	}
	defer xlsx.Close()

	c.Header("Content-Disposition", `attachment; filename="`+ExportFileName+`"`)
	c.Header("Content-Type", ExportContentType)
	c.Status(http.StatusOK)
	if err := xlsx.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, ErrInvalidID)
		return 0, false
	}
	return uint(id), true
}
