package admin

import (
	"kidspace/models"
	"kidspace/services"
)

// Error messages constants
const (
	ErrInvalidID          = "Invalid ID"
	ErrChallengeNotFound  = "Challenge not found"
	ErrSolutionNotFound   = "Solution not found"
	ErrFailedToGetPending = "Failed to get pending submissions"
	ErrFailedToApprove    = "Failed to approve"
	ErrFailedToExport     = "Failed to export submissions"
)

const (
	ExportFileName    = "kidspace-export.xlsx"
	ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// PendingResponse is the moderation queue
type PendingResponse struct {
	Challenges []models.Challenge `json:"challenges"`
	Solutions  []models.Solution  `json:"solutions"`
}

type Handler struct {
	Users      *services.UserService
	Challenges *services.ChallengeService
	Solutions  *services.SolutionService
}

func NewHandler(users *services.UserService, challenges *services.ChallengeService, solutions *services.SolutionService) *Handler {
	return &Handler{Users: users, Challenges: challenges, Solutions: solutions}
}
