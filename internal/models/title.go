package models

import (
	"time"
)

// Title is a reviewable cataloged work. Rating is derived from review
// scores and refreshed by the title service on read; it is never written
// directly by clients.
type Title struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:300;not null" json:"name"`
	Year        *int      `gorm:"index" json:"year"`
	Description *string   `gorm:"size:1000" json:"description"`
	Rating      *int      `json:"rating"`
	CategoryID  *uint     `json:"-"`
	Category    *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category"`
	Genres      []Genre   `gorm:"many2many:title_genres;constraint:OnDelete:CASCADE" json:"genre"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
