package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityKind classifies entries in the dashboard's recent activity feed.
type ActivityKind string

const (
	ActivityLogin       ActivityKind = "login"
	ActivityLogout      ActivityKind = "logout"
	ActivityLoadCreated ActivityKind = "load_created"
	ActivityDeleted     ActivityKind = "resource_deleted"
	ActivityUpdated     ActivityKind = "resource_updated"
)

// Activity is one row of the recent activity feed.
type Activity struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time    `gorm:"index" json:"createdAt"`
	UserID    string       `gorm:"index" json:"userId"`
	Kind      ActivityKind `gorm:"size:32" json:"kind"`
	Subject   string       `gorm:"size:200" json:"subject"`
	Detail    string       `gorm:"size:1000" json:"detail,omitempty"`
}

// BeforeCreate assigns the primary key.
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
