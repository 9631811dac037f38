package types

import (
	"time"

	"github.com/google/uuid"
)

// FloorTopic is one summary entry on a floor: a topical ancestor group and
// the aggregate number of the floor's items that fall under it.
type FloorTopic struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID uuid.UUID `gorm:"type:uuid;not null;index" json:"group_id"`
	Group   *Group    `gorm:"foreignKey:GroupID;references:ID" json:"group,omitempty"`
	FloorID uuid.UUID `gorm:"type:uuid;not null;index" json:"floor_id"`
	Label   string    `gorm:"column:label;size:255" json:"label"`
	Size    int       `gorm:"column:size" json:"size"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (FloorTopic) TableName() string { return "floor_topic" }
