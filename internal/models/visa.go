package models

import "time"

type Visa struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Country     string `gorm:"size:100;not null;index" json:"country"` // country the visa applies to
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`

	Requirements   StringList `gorm:"serializer:json" json:"requirements"`
	ProcessingTime string     `gorm:"size:100" json:"processingTime"` // e.g. "2-4 weeks"
	Fee            string     `gorm:"size:100" json:"fee"`            // e.g. "USD 160"

	Image MediaRef `gorm:"embedded;embeddedPrefix:image_" json:"image"`

	CreatedByID uint  `gorm:"not null;index" json:"-"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
