package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"kidspace/database"
	"kidspace/metrics"
	"kidspace/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MaxNicknameLength = 80

type UserService struct {
	DB *gorm.DB

	adminPasswordHash []byte
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// Create registers a new, non admin user
func (s *UserService) Create(ctx context.Context, nickname string) (models.User, error) {
	defer metrics.RecordDBOperation("create", "users", time.Now())

	nickname = strings.TrimSpace(nickname)
	if nickname == "" || utf8.RuneCountInString(nickname) > MaxNicknameLength {
		return models.User{}, fmt.Errorf("%w: nickname must be 1 to %d characters", ErrInvalid, MaxNicknameLength)
	}

	row := database.UserRow{Nickname: nickname}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&database.UserRow{}).Where("nickname = ?", nickname).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return models.User{}, translate(err)
	}
	return row.ToModel(), nil
}

// SetAdminPassword hashes the secret admins must present to log in.
// Without one, admin logins are refused.
func (s *UserService) SetAdminPassword(password string) error {
	if password == "" {
		s.adminPasswordHash = nil
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	s.adminPasswordHash = hash
	return nil
}

// Login resolves nickname to a user. Kids log in by nickname alone, admins
// also need the configured password.
func (s *UserService) Login(ctx context.Context, nickname, password string) (models.User, error) {
	user, err := s.GetByNickname(ctx, nickname)
	if err != nil {
		return models.User{}, err
	}
	if !user.IsAdmin {
		return user, nil
	}
	if s.adminPasswordHash == nil || password == "" {
		return models.User{}, ErrBadPassword
	}
	if err := bcrypt.CompareHashAndPassword(s.adminPasswordHash, []byte(password)); err != nil {
		return models.User{}, ErrBadPassword
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (models.User, error) {
	var row database.UserRow
	if err := s.DB.WithContext(ctx).First(&row, id).Error; err != nil {
		return models.User{}, translate(err)
	}
	return row.ToModel(), nil
}

func (s *UserService) GetByNickname(ctx context.Context, nickname string) (models.User, error) {
	var row database.UserRow
	err := s.DB.WithContext(ctx).Where("nickname = ?", strings.TrimSpace(nickname)).Take(&row).Error
	if err != nil {
		return models.User{}, translate(err)
	}
	return row.ToModel(), nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var rows []database.UserRow
	if err := s.DB.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.ToModel())
	}
	return users, nil
}

// actingUser loads the user a request acts as, ErrUnknownUser when the
// account no longer exists
func actingUser(tx *gorm.DB, userID uint) (*database.UserRow, error) {
	var user database.UserRow
	if err := tx.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return &user, nil
}

// requireAdmin loads the acting user inside tx and checks the admin flag
func requireAdmin(tx *gorm.DB, userID uint) (database.UserRow, error) {
	var admin database.UserRow
	if err := tx.First(&admin, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return admin, ErrForbidden
		}
		return admin, err
	}
	if !admin.IsAdmin {
		return admin, ErrForbidden
	}
	return admin, nil
}
