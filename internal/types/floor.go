package types

import (
	"time"

	"github.com/google/uuid"
)

// Floor is one generated museum floor: its rooms, summary topics and a small
// sample of representative items.
type Floor struct {
	ID      uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	Label   string        `gorm:"column:label;size:255" json:"label"`
	Level   int           `gorm:"column:level;index" json:"level"`
	Rooms   []*Room       `gorm:"foreignKey:FloorID;references:ID" json:"rooms,omitempty"`
	Topics  []*FloorTopic `gorm:"foreignKey:FloorID;references:ID" json:"topics,omitempty"`
	Samples []*Item       `gorm:"many2many:floor_items" json:"samples,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Floor) TableName() string { return "floor" }
