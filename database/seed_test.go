package database_test

import (
	"context"
	"errors"
	"testing"

	"kidspace/database"
	"kidspace/database/dbtest"
	"kidspace/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func planetNames(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var names []string
	require.NoError(t, db.Model(&database.PlanetRow{}).Order("id").Pluck("name", &names).Error)
	return names
}

func TestSeedPlanets_InsertsNineThenNothing(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	inserted, err := database.SeedPlanets(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 9, inserted)
	assert.Equal(t, []string{
		"Mercury", "Venus", "Earth", "Mars", "Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
	}, planetNames(t, db))

	inserted, err = database.SeedPlanets(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Len(t, planetNames(t, db), 9)
}

func TestSeedPlanets_SkipsNonEmptyTable(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&database.PlanetRow{Name: "Ceres", Description: "A dwarf planet in the asteroid belt."}).Error)

	inserted, err := database.SeedPlanets(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)
	assert.Equal(t, []string{"Ceres"}, planetNames(t, db))
}

func TestSeedPlanets_PropagatesStoreErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := database.OpenWithDialector(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), nil)
	require.NoError(t, err)

	connErr := errors.New("connection reset by peer")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `planets`").WillReturnError(connErr)
	mock.ExpectRollback()

	inserted, err := database.SeedPlanets(context.Background(), db)
	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	assert.Equal(t, 0, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPlanets_RollsBackFailedInsert(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := database.OpenWithDialector(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), nil)
	require.NoError(t, err)

	dupErr := errors.New("Error 1062: Duplicate entry 'Earth' for key 'idx_planets_name'")
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `planets`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("INSERT INTO `planets`").WillReturnError(dupErr)
	mock.ExpectRollback()

	inserted, err := database.SeedPlanets(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert planets")
	assert.Equal(t, 0, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureAdmin_CreatesThenReuses(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	admin, created, err := database.EnsureAdmin(ctx, db)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, models.AdminNickname, admin.Nickname)
	assert.True(t, admin.IsAdmin)

	again, created, err := database.EnsureAdmin(ctx, db)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, admin.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&database.UserRow{}).Where("nickname = ?", models.AdminNickname).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureAdmin_PromotesExistingUser(t *testing.T) {
	db := dbtest.Open(t)
	require.NoError(t, db.Create(&database.UserRow{Nickname: models.AdminNickname}).Error)

	admin, created, err := database.EnsureAdmin(context.Background(), db)
	require.NoError(t, err)
	assert.False(t, created)
	assert.True(t, admin.IsAdmin)

	var row database.UserRow
	require.NoError(t, db.Where("nickname = ?", models.AdminNickname).Take(&row).Error)
	assert.True(t, row.IsAdmin)
}

func TestBootstrap_RepeatedRunsKeepOneAdminAndNinePlanets(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		report, err := database.Bootstrap(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, 9, report.PlanetsSeeded)
		assert.True(t, report.AdminCreated)
		assert.Equal(t, `Initialized the database: 9 planets seeded, admin user "Admin" ready.`, report.String())
	}

	var admins []database.UserRow
	require.NoError(t, db.Where("nickname = ?", models.AdminNickname).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, admins[0].IsAdmin)
	assert.Len(t, planetNames(t, db), 9)
}

func TestBootstrap_WipesExistingData(t *testing.T) {
	db := dbtest.Open(t)
	ctx := context.Background()

	user := database.UserRow{Nickname: "astro_kid"}
	require.NoError(t, db.Create(&user).Error)
	challenge := database.ChallengeRow{Title: "Build a rocket", Description: "Use a bottle", CreatedBy: user.ID}
	require.NoError(t, db.Create(&challenge).Error)
	require.NoError(t, db.Create(&database.SolutionRow{ChallengeID: challenge.ID, CreatedBy: user.ID}).Error)

	_, err := database.Bootstrap(ctx, db)
	require.NoError(t, err)

	var users, challenges, solutions int64
	db.Model(&database.UserRow{}).Count(&users)
	db.Model(&database.ChallengeRow{}).Count(&challenges)
	db.Model(&database.SolutionRow{}).Count(&solutions)
	assert.EqualValues(t, 1, users)
	assert.Zero(t, challenges)
	assert.Zero(t, solutions)
}

func TestBootstrap_EarthIsOurHomePlanet(t *testing.T) {
	db := dbtest.Open(t)
	_, err := database.Bootstrap(context.Background(), db)
	require.NoError(t, err)

	var earth []database.PlanetRow
	require.NoError(t, db.Where("name = ?", "Earth").Find(&earth).Error)
	require.Len(t, earth, 1)
	assert.Contains(t, earth[0].Description, "home planet")
	require.NotNil(t, earth[0].FunFact)
	assert.NotEmpty(t, *earth[0].FunFact)
}
