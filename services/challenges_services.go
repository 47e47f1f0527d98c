package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"kidspace/database"
	"kidspace/metrics"
	"kidspace/models"

	"gorm.io/gorm"
)

const MaxTitleLength = 150

type ChallengeService struct {
	DB       *gorm.DB
	Notifier ApprovalNotifier
}

func NewChallengeService(db *gorm.DB, notifier ApprovalNotifier) *ChallengeService {
	return &ChallengeService{DB: db, Notifier: notifier}
}

// Create stores a new challenge, unapproved until an admin flips it
func (s *ChallengeService) Create(ctx context.Context, userID uint, title, description string) (models.Challenge, error) {
	defer metrics.RecordDBOperation("create", "challenges", time.Now())

	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return models.Challenge{}, fmt.Errorf("%w: title must be 1 to %d characters", ErrInvalid, MaxTitleLength)
	}
	if description == "" {
		return models.Challenge{}, fmt.Errorf("%w: description is required", ErrInvalid)
	}

	row := database.ChallengeRow{Title: title, Description: description, CreatedBy: userID}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		creator, err := actingUser(tx, userID)
		if err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		row.Creator = creator
		return nil
	})
	if err != nil {
		return models.Challenge{}, translate(err)
	}
	return row.ToModel(), nil
}

// ListApproved returns the public listing, newest first
func (s *ChallengeService) ListApproved(ctx context.Context) ([]models.Challenge, error) {
	return s.list(ctx, s.DB.Where("approved = ?", true), "created_at DESC, id DESC")
}

// ListPending returns challenges waiting for an admin, oldest first
func (s *ChallengeService) ListPending(ctx context.Context) ([]models.Challenge, error) {
	return s.list(ctx, s.DB.Where("approved = ?", false), "created_at ASC, id ASC")
}

func (s *ChallengeService) ListAll(ctx context.Context) ([]models.Challenge, error) {
	return s.list(ctx, s.DB, "created_at DESC, id DESC")
}

func (s *ChallengeService) list(ctx context.Context, q *gorm.DB, order string) ([]models.Challenge, error) {
	defer metrics.RecordDBOperation("list", "challenges", time.Now())

	var rows []database.ChallengeRow
	if err := q.WithContext(ctx).Preload("Creator").Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return database.ChallengesToModels(rows), nil
}

// Get returns one challenge. Unapproved challenges are only visible to
// their creator and to admins; everybody else gets ErrNotFound.
func (s *ChallengeService) Get(ctx context.Context, id uint, viewer *models.User) (models.Challenge, error) {
	var row database.ChallengeRow
	if err := s.DB.WithContext(ctx).Preload("Creator").First(&row, id).Error; err != nil {
		return models.Challenge{}, translate(err)
	}
	if !row.Approved && !canSeeUnapproved(viewer, row.CreatedBy) {
		return models.Challenge{}, ErrNotFound
	}
	return row.ToModel(), nil
}

// Approve flips the approval flag. Only admins may do it; approving twice is a no-op.
func (s *ChallengeService) Approve(ctx context.Context, adminID, id uint) (models.Challenge, error) {
	defer metrics.RecordDBOperation("approve", "challenges", time.Now())

	var row database.ChallengeRow
	alreadyApproved := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := requireAdmin(tx, adminID); err != nil {
			return err
		}
		if err := tx.Preload("Creator").First(&row, id).Error; err != nil {
			return err
		}
		if row.Approved {
			alreadyApproved = true
			return nil
		}
		if err := tx.Model(&row).Update("approved", true).Error; err != nil {
			return err
		}
		row.Approved = true
		return nil
	})
	if err != nil {
		return models.Challenge{}, translate(err)
	}

	if !alreadyApproved {
		metrics.Approvals.WithLabelValues(KindChallenge).Inc()
		if s.Notifier != nil {
			s.Notifier.NotifyApproval(KindChallenge, row.ID, row.Title)
		}
	}
	return row.ToModel(), nil
}

func canSeeUnapproved(viewer *models.User, ownerID uint) bool {
	return viewer != nil && (viewer.IsAdmin || viewer.ID == ownerID)
}

// CountPending returns how many challenges and solutions wait for approval
func CountPending(ctx context.Context, db *gorm.DB) (challenges int64, solutions int64, err error) {
	if err = db.WithContext(ctx).Model(&database.ChallengeRow{}).Where("approved = ?", false).Count(&challenges).Error; err != nil {
		return 0, 0, err
	}
	if err = db.WithContext(ctx).Model(&database.SolutionRow{}).Where("approved = ?", false).Count(&solutions).Error; err != nil {
		return 0, 0, err
	}
	return challenges, solutions, nil
}
