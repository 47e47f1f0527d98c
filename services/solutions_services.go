package services

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"kidspace/config"
	"kidspace/database"
	"kidspace/metrics"
	"kidspace/models"
	"kidspace/storage"

	"gorm.io/gorm"
)

const (
	MaxLinkLength      = 500
	MaxImagePathLength = 300
)

// ImageUpload is an image sent along with a solution
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// SolutionInput carries what a user submits. Every field but the ids is optional.
type SolutionInput struct {
	ChallengeID uint
	UserID      uint
	Content     *string
	Link        *string
	Image       *ImageUpload
}

type SolutionService struct {
	DB        *gorm.DB
	Store     storage.Store
	RateLimit config.RateLimitConfig
	Notifier  ApprovalNotifier
	Now       func() time.Time
}

func NewSolutionService(db *gorm.DB, store storage.Store, notifier ApprovalNotifier) *SolutionService {
	return &SolutionService{
		DB:        db,
		Store:     store,
		RateLimit: config.DefaultSubmissionRateLimit,
		Notifier:  notifier,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a solution for an approved challenge. The new solution is unapproved.
func (s *SolutionService) Create(ctx context.Context, in SolutionInput) (models.Solution, error) {
	defer metrics.RecordDBOperation("create", "solutions", time.Now())

	content := normalize(in.Content)
	link := normalize(in.Link)
	if link != nil {
		if len(*link) > MaxLinkLength {
			return models.Solution{}, fmt.Errorf("%w: link is longer than %d characters", ErrInvalid, MaxLinkLength)
		}
		if u, err := url.ParseRequestURI(*link); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return models.Solution{}, fmt.Errorf("%w: link must be an http(s) URL", ErrInvalid)
		}
	}

	var challenge database.ChallengeRow
	if err := s.DB.WithContext(ctx).First(&challenge, in.ChallengeID).Error; err != nil {
		return models.Solution{}, translate(err)
	}
	if !challenge.Approved {
		return models.Solution{}, ErrNotFound
	}

	if err := s.checkRateLimit(ctx, in.UserID); err != nil {
		return models.Solution{}, err
	}

	var imagePath *string
	var imageKey string
	if in.Image != nil {
		if s.Store == nil {
			return models.Solution{}, fmt.Errorf("%w: image uploads are disabled", ErrInvalid)
		}
		imageKey = storage.ImageKey(challenge.Title, in.Image.Filename)
		p, err := s.Store.Save(ctx, imageKey, in.Image.ContentType, in.Image.Body)
		if err != nil {
			return models.Solution{}, fmt.Errorf("failed to store image: %w", err)
		}
		if len(p) > MaxImagePathLength {
			_ = s.Store.Delete(ctx, imageKey)
			return models.Solution{}, fmt.Errorf("%w: image path is too long", ErrInvalid)
		}
		imagePath = &p
	}

	row := database.SolutionRow{
		Content:     content,
		Link:        link,
		ImagePath:   imagePath,
		ChallengeID: challenge.ID,
		CreatedBy:   in.UserID,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		author, err := actingUser(tx, in.UserID)
		if err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		row.Author = author
		return nil
	})
	if err != nil {
		if imageKey != "" {
			_ = s.Store.Delete(ctx, imageKey)
		}
		return models.Solution{}, translate(err)
	}
	return row.ToModel(), nil
}

// checkRateLimit counts the user's recent submissions against both cooldown windows
func (s *SolutionService) checkRateLimit(ctx context.Context, userID uint) error {
	if s.RateLimit.Disabled() {
		return nil
	}
	now := s.Now()

	windows := []struct {
		threshold int
		window    time.Duration
	}{
		{s.RateLimit.AttemptsThreshold2, s.RateLimit.CooldownDuration2},
		{s.RateLimit.AttemptsThreshold1, s.RateLimit.CooldownDuration1},
	}
	for _, w := range windows {
		if w.threshold <= 0 {
			continue
		}
		var count int64
		err := s.DB.WithContext(ctx).Model(&database.SolutionRow{}).
			Where("created_by = ? AND created_at > ?", userID, now.Add(-w.window)).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count >= int64(w.threshold) {
			return ErrRateLimited
		}
	}
	return nil
}

// ListApprovedForChallenge is the public gallery of an approved challenge
func (s *SolutionService) ListApprovedForChallenge(ctx context.Context, challengeID uint) ([]models.Solution, error) {
	var challenge database.ChallengeRow
	if err := s.DB.WithContext(ctx).First(&challenge, challengeID).Error; err != nil {
		return nil, translate(err)
	}
	if !challenge.Approved {
		return nil, ErrNotFound
	}
	return s.list(ctx, s.DB.Where("challenge_id = ? AND approved = ?", challengeID, true), "created_at DESC, id DESC")
}

// ListPending returns solutions waiting for an admin, oldest first
func (s *SolutionService) ListPending(ctx context.Context) ([]models.Solution, error) {
	return s.list(ctx, s.DB.Where("approved = ?", false), "created_at ASC, id ASC")
}

func (s *SolutionService) ListAll(ctx context.Context) ([]models.Solution, error) {
	return s.list(ctx, s.DB, "created_at DESC, id DESC")
}

func (s *SolutionService) list(ctx context.Context, q *gorm.DB, order string) ([]models.Solution, error) {
	defer metrics.RecordDBOperation("list", "solutions", time.Now())

	var rows []database.SolutionRow
	if err := q.WithContext(ctx).Preload("Author").Order(order).Find(&rows).Error; err != nil {
		return nil, err
	}
	return database.SolutionsToModels(rows), nil
}

// Approve flips the approval flag of a solution. Admins only.
func (s *SolutionService) Approve(ctx context.Context, adminID, id uint) (models.Solution, error) {
	defer metrics.RecordDBOperation("approve", "solutions", time.Now())

	var row database.SolutionRow
	alreadyApproved := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := requireAdmin(tx, adminID); err != nil {
			return err
		}
		if err := tx.Preload("Author").Preload("Challenge").First(&row, id).Error; err != nil {
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
		return models.Solution{}, translate(err)
	}

	if !alreadyApproved {
		metrics.Approvals.WithLabelValues(KindSolution).Inc()
		if s.Notifier != nil {
			title := ""
			if row.Challenge != nil {
				title = row.Challenge.Title
			}
			s.Notifier.NotifyApproval(KindSolution, row.ID, title)
		}
	}
	return row.ToModel(), nil
}

// normalize turns blank strings into nil
func normalize(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
