package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Room is one physical room on a floor, representing exactly one leaf group.
// A room is never reassigned to a different group.
type Room struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FloorID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"floor_id"`
	Floor        *Floor         `gorm:"foreignKey:FloorID;references:ID" json:"floor,omitempty"`
	GroupID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"group_id"`
	Group        *Group         `gorm:"foreignKey:GroupID;references:ID" json:"group,omitempty"`
	SampleItemID *uuid.UUID     `gorm:"type:uuid" json:"sample_item_id"`
	Number       string         `gorm:"column:number;size:16" json:"number"`
	Label        string         `gorm:"column:label;size:255" json:"label"`
	Position     datatypes.JSON `gorm:"column:position" json:"position"`
	Items        []*Item        `gorm:"foreignKey:RoomID;references:ID" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Room) TableName() string { return "room" }
