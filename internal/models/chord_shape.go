package models

import (
	"time"

	"gorm.io/gorm"
)

// ChordShape is a hand-authored fingering in the shape catalogue
type ChordShape struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	RootPC    int            `gorm:"not null;uniqueIndex:idx_shape_root_quality_position" json:"root_pc"`
	Quality   string         `gorm:"not null;uniqueIndex:idx_shape_root_quality_position" json:"quality"` // canonical token
	Position  int            `gorm:"not null;default:0;uniqueIndex:idx_shape_root_quality_position" json:"position"`
	Shape     string         `gorm:"not null" json:"shape"` // chart notation, lowest string first ("x32010")
	Source    string         `gorm:"default:'seed'" json:"source"`
}

// TableName keeps the table name stable if the type is renamed
func (ChordShape) TableName() string {
	return "chord_shapes"
}
