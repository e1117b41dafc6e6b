package models

import (
	"time"

	"gorm.io/gorm"
)

// Family groups documents and procedures under one heading
type Family struct {
	ID           uint   `gorm:"primaryKey"`
	Code         string `gorm:"type:text;not null;uniqueIndex"`
	Name         string `gorm:"type:text;not null"`
	Icon         string `gorm:"type:text"`
	DisplayOrder int    `gorm:"default:0"`
	IsActive     bool   `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relationships
	Documents []Document `gorm:"foreignKey:FamilyID"`
}
