package models

import "time"

// Solution is a user's answer to a challenge: some text, a link, an image, or any mix.
// All three may be empty.
type Solution struct {
	ID          uint      `json:"id"`
	Content     *string   `json:"content"`
	Link        *string   `json:"link"`
	ImagePath   *string   `json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
	Approved    bool      `json:"approved"`
	ChallengeID uint      `json:"challenge_id"`
	CreatedBy   uint      `json:"created_by"`
	Author      *User     `json:"author,omitempty"`
}
