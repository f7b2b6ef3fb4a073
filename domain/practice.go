package domain

import "time"

// PracticeTypeTextRecitation tags attempts made against a stored passage.
const PracticeTypeTextRecitation = "text_recitation"

// Practice is one scored attempt. Rows are append-only: attempts are inserted
// once and never updated, so the history always reflects what happened.
type Practice struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"index" json:"user_id"`
	TextID       uint      `gorm:"index" json:"text_id"`
	PracticeType string    `json:"practice_type"`
	Score        int       `json:"score"`
	CreatedAt    time.Time `json:"created_at"`
}
