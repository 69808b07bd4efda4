package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OwnerReply struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReviewID uuid.UUID `gorm:"type:uuid;not null;unique" json:"review_id"`
	Body     string    `gorm:"type:text;not null" json:"body"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *OwnerReply) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
