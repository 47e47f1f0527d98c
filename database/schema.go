package database

import (
	"time"

	"kidspace/models"
)

// The row types below are the storage mapping of the plain structs in
// models. Table names, constraints and defaults live here only.

type UserRow struct {
	ID       uint   `gorm:"primaryKey"`
	Nickname string `gorm:"type:varchar(80);uniqueIndex;not null"`
	IsAdmin  bool   `gorm:"not null;default:false"`
}

func (UserRow) TableName() string { return "users" }

type ChallengeRow struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"type:varchar(150);not null"`
	Description string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
	Approved    bool      `gorm:"not null;default:false;index"`
	CreatedBy   uint      `gorm:"not null;index"`
	Creator     *UserRow  `gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT"`
}

func (ChallengeRow) TableName() string { return "challenges" }

type SolutionRow struct {
	ID          uint          `gorm:"primaryKey"`
	Content     *string       `gorm:"type:text"`
	Link        *string       `gorm:"type:varchar(500)"`
	ImagePath   *string       `gorm:"type:varchar(300)"`
	CreatedAt   time.Time     `gorm:"not null;autoCreateTime"`
	Approved    bool          `gorm:"not null;default:false;index"`
	ChallengeID uint          `gorm:"not null;index"`
	CreatedBy   uint          `gorm:"not null;index"`
	Challenge   *ChallengeRow `gorm:"foreignKey:ChallengeID;constraint:OnDelete:RESTRICT"`
	Author      *UserRow      `gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT"`
}

func (SolutionRow) TableName() string { return "solutions" }

type PlanetRow struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"type:varchar(50);uniqueIndex;not null"`
	Description string  `gorm:"type:text;not null"`
	FunFact     *string `gorm:"type:text"`
}

func (PlanetRow) TableName() string { return "planets" }

// AllTables lists the row types in dependency order, parents first
func AllTables() []interface{} {
	return []interface{}{
		&UserRow{},
		&PlanetRow{},
		&ChallengeRow{},
		&SolutionRow{},
	}
}

func (r UserRow) ToModel() models.User {
	return models.User{ID: r.ID, Nickname: r.Nickname, IsAdmin: r.IsAdmin}
}

func (r ChallengeRow) ToModel() models.Challenge {
	c := models.Challenge{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt,
		Approved:    r.Approved,
		CreatedBy:   r.CreatedBy,
	}
	if r.Creator != nil {
		creator := r.Creator.ToModel()
		c.Creator = &creator
	}
	return c
}

func (r SolutionRow) ToModel() models.Solution {
	s := models.Solution{
		ID:          r.ID,
		Content:     r.Content,
		Link:        r.Link,
		ImagePath:   r.ImagePath,
		CreatedAt:   r.CreatedAt,
		Approved:    r.Approved,
		ChallengeID: r.ChallengeID,
		CreatedBy:   r.CreatedBy,
	}
	if r.Author != nil {
		author := r.Author.ToModel()
		s.Author = &author
	}
	return s
}

func (r PlanetRow) ToModel() models.Planet {
	return models.Planet{ID: r.ID, Name: r.Name, Description: r.Description, FunFact: r.FunFact}
}

func PlanetRowFromModel(p models.Planet) PlanetRow {
	return PlanetRow{ID: p.ID, Name: p.Name, Description: p.Description, FunFact: p.FunFact}
}

// ChallengesToModels converts a slice of rows
func ChallengesToModels(rows []ChallengeRow) []models.Challenge {
	out := make([]models.Challenge, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToModel())
	}
	return out
}

// SolutionsToModels converts a slice of rows
func SolutionsToModels(rows []SolutionRow) []models.Solution {
	out := make([]models.Solution, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToModel())
	}
	return out
}

// PlanetsToModels converts a slice of rows
func PlanetsToModels(rows []PlanetRow) []models.Planet {
	out := make([]models.Planet, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToModel())
	}
	return out
}
