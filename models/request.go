package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// TargetLocation is one acceptable destination post. Priority reflects the
// order the owner listed them in; it does not influence scoring.
type TargetLocation struct {
	City     string `json:"city"`
	District string `json:"district"`
	Priority int    `json:"priority"`
}

// ExchangeRequest is a participant's posted swap offer. Only the owner
// mutates it; matching reads it and only considers active rows.
type ExchangeRequest struct {
	Id              string                                  `json:"id" gorm:"primaryKey"`
	UserId          string                                  `json:"user_id" gorm:"not null;index"`
	CurrentCity     string                                  `json:"current_city" gorm:"not null"`
	CurrentDistrict string                                  `json:"current_district" gorm:"not null"`
	TargetLocations datatypes.JSONSlice[TargetLocation]     `json:"target_locations" gorm:"type:jsonb;not null"`
	Institution     string                                  `json:"institution" gorm:"not null"`
	Department      string                                  `json:"department" gorm:"not null"`
	Position        string                                  `json:"position" gorm:"not null"`
	Active          bool                                    `json:"active" gorm:"index"`
	CreatedAt       time.Time                               `json:"created_at"`
	UpdatedAt       time.Time                               `json:"updated_at"`
}

func (request *ExchangeRequest) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	request.Id = uuid.NewString()
	return
}
