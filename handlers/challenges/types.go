package challenges

import (
	"kidspace/middleware"
	"kidspace/services"
)

// Error messages constants
const (
	ErrChallengeNotFound       = "Challenge not found"
	ErrInvalidChallengeID      = "Invalid challenge ID"
	ErrFailedToGetChallenges   = "Failed to get challenges"
	ErrFailedToCreateChallenge = "Failed to create challenge"
	ErrFailedToGetSolutions    = "Failed to get solutions"
	ErrFailedToCreateSolution  = "Failed to create solution"
	ErrInvalidImageUpload      = "Invalid image upload"
)

const (
	MaxImageUploadSize = 5 << 20
	imageFormField     = "image"
)

// CreateChallengeRequest model for proposing a challenge
type CreateChallengeRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// CreateSolutionRequest model for a JSON solution. Multipart forms use the same field names
// plus an optional "image" file.
type CreateSolutionRequest struct {
	Content *string `json:"content" form:"content"`
	Link    *string `json:"link" form:"link"`
}

type Handler struct {
	Challenges *services.ChallengeService
	Solutions  *services.SolutionService
	Auth       *middleware.Authenticator
}

func NewHandler(challenges *services.ChallengeService, solutions *services.SolutionService, auth *middleware.Authenticator) *Handler {
	return &Handler{Challenges: challenges, Solutions: solutions, Auth: auth}
}
