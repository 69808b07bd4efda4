package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name    string    `gorm:"size:100;not null" json:"name"`
	Rating  int       `gorm:"not null" json:"rating"`
	Comment string    `gorm:"type:text;not null" json:"comment"`

	// sha256 hex of the delete token; the raw token is returned once at
	// creation and never stored or serialized.
	DeleteTokenHash string `gorm:"size:64;not null" json:"-"`

	Reply *OwnerReply `gorm:"foreignkey:ReviewID" json:"reply,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
