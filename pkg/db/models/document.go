package models

import (
	"time"

	"gorm.io/gorm"
)

// Document represents a downloadable document published on the portal
type Document struct {
	ID               uint   `gorm:"primaryKey"`
	Name             string `gorm:"type:text;not null"`
	Description      string `gorm:"type:text"`
	File             string `gorm:"type:text"`
	OriginalFilename string `gorm:"type:text"`
	MimeType         string `gorm:"type:text"`
	FileSize         int64  `gorm:"default:0"`
	DisplayOrder     int    `gorm:"default:0"`
	IsActive         bool   `gorm:"not null"`

	// Optional owning family
	FamilyID *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Family *Family `gorm:"foreignKey:FamilyID;references:ID"`
}
