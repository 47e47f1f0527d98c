package database_test

import (
	"testing"
	"time"

	"kidspace/database"
	"kidspace/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_DefaultsAndTimestamps(t *testing.T) {
	db := dbtest.Open(t)

	user := database.UserRow{Nickname: "luna"}
	require.NoError(t, db.Create(&user).Error)
	assert.False(t, user.IsAdmin)

	before := time.Now().UTC().Add(-time.Second)
	challenge := database.ChallengeRow{Title: "Moon phases", Description: "Draw them for a week", CreatedBy: user.ID}
	require.NoError(t, db.Create(&challenge).Error)

	var stored database.ChallengeRow
	require.NoError(t, db.First(&stored, challenge.ID).Error)
	assert.False(t, stored.Approved)
	assert.True(t, stored.CreatedAt.After(before))

	solution := database.SolutionRow{ChallengeID: challenge.ID, CreatedBy: user.ID}
	require.NoError(t, db.Create(&solution).Error)

	var storedSolution database.SolutionRow
	require.NoError(t, db.First(&storedSolution, solution.ID).Error)
	assert.False(t, storedSolution.Approved)
	assert.Nil(t, storedSolution.Content)
	assert.Nil(t, storedSolution.Link)
	assert.Nil(t, storedSolution.ImagePath)
}

func TestSchema_NicknameAndPlanetNameAreUnique(t *testing.T) {
	db := dbtest.Open(t)

	require.NoError(t, db.Create(&database.UserRow{Nickname: "comet"}).Error)
	assert.Error(t, db.Create(&database.UserRow{Nickname: "comet"}).Error)

	require.NoError(t, db.Create(&database.PlanetRow{Name: "Mars", Description: "red"}).Error)
	assert.Error(t, db.Create(&database.PlanetRow{Name: "Mars", Description: "still red"}).Error)
}

func TestSchema_ForeignKeysAreEnforced(t *testing.T) {
	db := dbtest.Open(t)

	err := db.Create(&database.ChallengeRow{Title: "Orphan", Description: "no creator", CreatedBy: 4242}).Error
	assert.Error(t, err)

	user := database.UserRow{Nickname: "nova"}
	require.NoError(t, db.Create(&user).Error)

	err = db.Create(&database.SolutionRow{ChallengeID: 4242, CreatedBy: user.ID}).Error
	assert.Error(t, err)
}

func TestRowConversion_Preloads(t *testing.T) {
	db := dbtest.Open(t)

	user := database.UserRow{Nickname: "orbit"}
	require.NoError(t, db.Create(&user).Error)
	challenge := database.ChallengeRow{Title: "Star map", Description: "Find the Big Dipper", CreatedBy: user.ID}
	require.NoError(t, db.Create(&challenge).Error)

	var row database.ChallengeRow
	require.NoError(t, db.Preload("Creator").First(&row, challenge.ID).Error)

	m := row.ToModel()
	require.NotNil(t, m.Creator)
	assert.Equal(t, "orbit", m.Creator.Nickname)
	assert.Equal(t, "Star map", m.Title)
}
