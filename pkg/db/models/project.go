package models

import (
	"time"

	"gorm.io/gorm"
)

// Project statuses as shown in the back office.
const (
	ProjectStatusPlanning   = "planning"
	ProjectStatusInProgress = "in_progress"
	ProjectStatusOnHold     = "on_hold"
	ProjectStatusCompleted  = "completed"
	ProjectStatusCancelled  = "cancelled"
)

const (
	ProjectPriorityLow    = "low"
	ProjectPriorityMedium = "medium"
	ProjectPriorityHigh   = "high"
)

// Project represents a public investment project listed in the catalog
type Project struct {
	ID          uint    `gorm:"primaryKey"`
	Code        string  `gorm:"type:text;not null;uniqueIndex"`
	Name        string  `gorm:"type:text;not null"`
	Category    string  `gorm:"type:text;not null;index"`
	Priority    string  `gorm:"type:text;not null;default:medium"`
	Status      string  `gorm:"type:text;not null;default:planning;index"`
	Responsible string  `gorm:"type:text"`
	Department  string  `gorm:"type:text"`
	Budget      float64 `gorm:"default:0"`

	StartDate    *time.Time
	EndDate      *time.Time
	DisplayOrder int  `gorm:"default:0"`
	IsActive     bool `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
