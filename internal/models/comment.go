package models

import (
	"time"
)

// Comment is a reply on a review. Deleting the review cascades here.
type Comment struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	ReviewID uint      `gorm:"not null;index" json:"-"`
	Review   Review    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	AuthorID uint      `gorm:"not null;index" json:"-"`
	Author   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"autoCreateTime;index" json:"pub_date"`
}
