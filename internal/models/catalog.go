package models

// Category groups titles (film, book, music ...). Addressed by slug.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"size:300;not null;uniqueIndex" json:"name"`
	Slug string `gorm:"size:50;not null;uniqueIndex" json:"slug"`
}

// Genre tags titles (drama, rock ...). Addressed by slug.
type Genre struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"size:300;not null;uniqueIndex" json:"name"`
	Slug string `gorm:"size:50;not null;uniqueIndex" json:"slug"`
}
