package models

import "time"

// Item represents a tracked movie or show
type Item struct {
	ID    uint64 `json:"id" gorm:"primaryKey;autoIncrement" boltholdKey:"ID"`
	Title string `json:"title" gorm:"not null" validate:"required"`

	// Kind and Status are free-form; see the constants in types.go
	Kind     string  `json:"kind" gorm:"not null;index" boltholdIndex:"Kind"`
	Director *string `json:"director"`
	Genre    *string `json:"genre"`
	Platform *string `json:"platform" gorm:"index"`
	Status   string  `json:"status" gorm:"not null;index" boltholdIndex:"Status"`

	// Progress
	TotalEpisodes   int `json:"total_episodes" gorm:"not null"`
	EpisodesWatched int `json:"episodes_watched" gorm:"not null" validate:"gte=0"`

	// Review
	Rating *float64 `json:"rating"`
	Review *string  `json:"review" gorm:"type:text"`
	Notes  *string  `json:"notes" gorm:"type:text"`

	RuntimeMinutes *int    `json:"runtime_minutes"`
	ImageURL       *string `json:"image_url"`

	// Set from the controller clock, never by the storage engine
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime:false;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime:false"`
}

// NewItem returns an item carrying the creation defaults
func NewItem(now time.Time) *Item {
	return &Item{
		Kind:      KindMovie,
		Status:    StatusWishlist,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// HasRating reports whether a rating has been recorded
func (i *Item) HasRating() bool {
	return i.Rating != nil
}
