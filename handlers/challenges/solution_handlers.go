package challenges

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"kidspace/middleware"
	"kidspace/services"
	"kidspace/utils/response"

	"github.com/gin-gonic/gin"
)

// GetSolutions lists the approved solutions of an approved challenge
// @Summary List solutions
// @Tags Solutions
// @Produce json
// @Param id path int true "Challenge ID"
// @Success 200 {array} models.Solution
// @Failure 400,404,500 {object} map[string]string
// @Router /challenges/{id}/solutions [get]
func (h *Handler) GetSolutions(c *gin.Context) {
	id, ok := challengeID(c)
	if !ok {
		return
	}
	solutions, err := h.Solutions.ListApprovedForChallenge(c.Request.Context(), id)
	if err != nil {
		notFoundOr(c, err, ErrFailedToGetSolutions)
		return
	}
	c.JSON(http.StatusOK, solutions)
}

// CreateSolution submits a solution to an approved challenge
// @Summary Submit a solution
// @Description Send JSON, or a multipart form with an optional "image" file. Every field is optional.
// @Tags Solutions
// @Accept json,mpfd
// @Produce json
// @Param id path int true "Challenge ID"
// @Param request body CreateSolutionRequest false "Solution"
// @Success 201 {object} models.Solution
// @Failure 400,401,404,429,500 {object} map[string]string
// @Router /challenges/{id}/solutions [post]
// @Security Bearer
func (h *Handler) CreateSolution(c *gin.Context) {
	user, _ := middleware.GetUserFromRequest(c)
	id, ok := challengeID(c)
	if !ok {
		return
	}

	var req CreateSolutionRequest
	input := services.SolutionInput{ChallengeID: id, UserID: user.ID}

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageUploadSize+(1<<20))
		if err := c.ShouldBind(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		header, err := c.FormFile(imageFormField)
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			response.Error(c, http.StatusBadRequest, ErrInvalidImageUpload)
			return
		default:
			file, err := openImage(header)
			if err != nil {
				response.Error(c, http.StatusBadRequest, err.Error())
				return
			}
			defer file.Close()
			input.Image = &services.ImageUpload{
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Body:        file,
			}
		}
	} else if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	input.Content = req.Content
	input.Link = req.Link

	solution, err := h.Solutions.Create(c.Request.Context(), input)
	if err != nil {
		notFoundOr(c, err, ErrFailedToCreateSolution)
		return
	}
	c.JSON(http.StatusCreated, solution)
}

// openImage checks the size and type of an uploaded file
func openImage(header *multipart.FileHeader) (multipart.File, error) {
	if header.Size > MaxImageUploadSize {
		return nil, errors.New("image is larger than 5MB")
	}
	if ct := header.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, errors.New(ErrInvalidImageUpload)
	}
	return header.Open()
}
