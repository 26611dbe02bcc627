package models

import (
	"time"
)

// Review is one user's scored opinion of a title. The composite unique
// index closes the create race: two concurrent creations by the same author
// cannot both commit, the second gets a unique violation that the service
// maps to the same "already reviewed" validation error as the pre-check.
type Review struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TitleID  uint   `gorm:"not null;uniqueIndex:idx_reviews_title_author" json:"-"`
	Title    Title  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AuthorID uint   `gorm:"not null;uniqueIndex:idx_reviews_title_author" json:"-"`
	Author   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Text     string `gorm:"type:text;not null" json:"text"`
	// Score is constrained to [1,10] at validation time.
	Score   int       `gorm:"not null" json:"score"`
	PubDate time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
}
