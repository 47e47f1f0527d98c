package services

import (
	"context"
	"sync"
	"testing"

	"kidspace/database"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type approvalCall struct {
	Kind  string
	ID    uint
	Title string
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []approvalCall
}

func (n *recordingNotifier) NotifyApproval(kind string, id uint, title string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, approvalCall{kind, id, title})
}

func mustUser(t *testing.T, db *gorm.DB, nickname string, admin bool) database.UserRow {
	t.Helper()
	row := database.UserRow{Nickname: nickname, IsAdmin: admin}
	require.NoError(t, db.Create(&row).Error)
	return row
}

func mustApprovedChallenge(t *testing.T, db *gorm.DB, creator uint, title string) database.ChallengeRow {
	t.Helper()
	row := database.ChallengeRow{Title: title, Description: "Describe it", CreatedBy: creator}
	require.NoError(t, db.Create(&row).Error)
	require.NoError(t, db.Model(&row).Update("approved", true).Error)
	row.Approved = true
	return row
}

func strPtr(s string) *string { return &s }

var ctx = context.Background()
