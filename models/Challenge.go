package models

import "time"

// Challenge is a space themed task proposed by a user, hidden until approved
type Challenge struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Approved    bool      `json:"approved"`
	CreatedBy   uint      `json:"created_by"`
	Creator     *User     `json:"creator,omitempty"`
}
