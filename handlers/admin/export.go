package admin

import (
	"time"

	"kidspace/models"

	"github.com/xuri/excelize/v2"
)

const (
	UsersSheet      = "Users"
	ChallengesSheet = "Challenges"
	SolutionsSheet  = "Solutions"
)

// buildWorkbook lays out one sheet per table, header row first
func buildWorkbook(users []models.User, challenges []models.Challenge, solutions []models.Solution) (*excelize.File, error) {
	xlsx := excelize.NewFile()

	// NewFile starts with "Sheet1"
	if err := xlsx.SetSheetName("Sheet1", UsersSheet); err != nil {
		return nil, err
	}
	userRows := [][]interface{}{{"ID", "Nickname", "Admin"}}
	for _, u := range users {
		userRows = append(userRows, []interface{}{u.ID, u.Nickname, u.IsAdmin})
	}
	if err := writeRows(xlsx, UsersSheet, userRows); err != nil {
		return nil, err
	}

	challengeRows := [][]interface{}{{"ID", "Title", "Description", "Created At", "Approved", "Created By"}}
	for _, ch := range challenges {
		challengeRows = append(challengeRows, []interface{}{
			ch.ID, ch.Title, ch.Description, ch.CreatedAt.Format(time.RFC3339), ch.Approved, authorName(ch.Creator, ch.CreatedBy),
		})
	}
	if err := writeRows(xlsx, ChallengesSheet, challengeRows); err != nil {
		return nil, err
	}

	solutionRows := [][]interface{}{{"ID", "Challenge ID", "Content", "Link", "Image", "Created At", "Approved", "Created By"}}
	for _, s := range solutions {
		solutionRows = append(solutionRows, []interface{}{
			s.ID, s.ChallengeID, deref(s.Content), deref(s.Link), deref(s.ImagePath),
			s.CreatedAt.Format(time.RFC3339), s.Approved, authorName(s.Author, s.CreatedBy),
		})
	}
	if err := writeRows(xlsx, SolutionsSheet, solutionRows); err != nil {
		return nil, err
	}
	return xlsx, nil
}

func writeRows(xlsx *excelize.File, sheet string, rows [][]interface{}) error {
	if idx, _ := xlsx.GetSheetIndex(sheet); idx == -1 {
		if _, err := xlsx.NewSheet(sheet); err != nil {
			return err
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := xlsx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func authorName(u *models.User, id uint) interface{} {
	if u != nil {
		return u.Nickname
	}
	return id
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
