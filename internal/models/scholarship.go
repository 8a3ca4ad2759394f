package models

import "time"

type Scholarship struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Institution string `gorm:"size:200;not null" json:"institution"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	HostCountry string `gorm:"size:100;not null;index" json:"hostCountry"`
	Category    string `gorm:"size:100;not null;index" json:"category"` // "Masters", "PhD", "Undergrad", ...

	EligibleCountries StringList `gorm:"serializer:json" json:"eligibleCountries"`
	Reward            string     `gorm:"size:255" json:"reward"`
	Stipend           string     `gorm:"size:255" json:"stipend"` // free text, e.g. "€1000/month"
	Deadline          *time.Time `json:"deadline,omitempty"`

	Image MediaRef `gorm:"embedded;embeddedPrefix:image_" json:"image"`

	HealthInsurance bool `gorm:"not null;default:false" json:"healthInsurance"`
	IeltsRequired   bool `gorm:"not null;default:false" json:"ieltsRequired"`
	FullyFunded     bool `gorm:"not null;default:false" json:"fullyFunded"`

	CreatedByID uint  `gorm:"not null;index" json:"-"`
	CreatedBy   *User `gorm:"foreignKey:CreatedByID" json:"createdBy,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
