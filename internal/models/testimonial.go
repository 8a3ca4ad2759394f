package models

import "time"

type Testimonial struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null" json:"name"`
	Message string `gorm:"type:text;not null" json:"message"`

	// Main testimonial media, image or video.
	Media MediaRef `gorm:"embedded;embeddedPrefix:media_" json:"media"`

	Approved bool `gorm:"not null;default:false;index" json:"approved"`

	CreatedByID uint  `gorm:"not null;index" json:"-"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
