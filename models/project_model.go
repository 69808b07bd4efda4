package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is one entry in the portfolio gallery. Titles and descriptions
// carry both English and Arabic copies so the frontend never needs a second
// fetch when the language toggles.
type Project struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	TitleAr       string    `gorm:"size:255" json:"title_ar"`
	Description   string    `gorm:"type:text" json:"description"`
	DescriptionAr string    `gorm:"type:text" json:"description_ar"`
	MediaURL      string    `gorm:"size:512" json:"media_url"`
	SortOrder     int       `gorm:"default:0" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
