package domain

import "time"

// RecitationText is a stored passage a user practices against. Content comes
// from OCR or is typed by the user; it always belongs to exactly one user.
type RecitationText struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"create_time"`
}
