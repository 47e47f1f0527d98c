package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrConflict    = errors.New("already exists")
	ErrInvalid     = errors.New("invalid input")
	ErrRateLimited = errors.New("too many submissions, please wait a few minutes")
	ErrBadPassword = errors.New("invalid credentials")

	// ErrUnknownUser is the acting user missing from the store, a token
	// that outlived its account
	ErrUnknownUser = fmt.Errorf("%w: user", ErrNotFound)
)

// translate maps store errors onto the service sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}

// ApprovalNotifier is told about every approval flip
type ApprovalNotifier interface {
	NotifyApproval(kind string, id uint, title string)
}

const (
	KindChallenge = "challenge"
	KindSolution  = "solution"
)
