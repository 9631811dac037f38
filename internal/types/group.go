package types

import (
	"time"

	"github.com/google/uuid"
)

// Split kinds recording which algorithm created a group.
const (
	SplitBasic     = "basic"
	SplitSimilar   = "similar"
	SplitAttribute = "attribute"
	SplitTime      = "time"
	SplitParent    = "parent"
	SplitInner     = "inner"
)

// Group is one node of the topical taxonomy. Groups form a tree; only leaf
// groups hold items once the hierarchy is finalized.
type Group struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ParentID *uuid.UUID `gorm:"type:uuid;index" json:"parent_id"`
	Parent   *Group     `gorm:"foreignKey:ParentID;references:ID" json:"parent,omitempty"`
	Children []*Group   `gorm:"foreignKey:ParentID;references:ID" json:"children,omitempty"`
	Value    string     `gorm:"column:value;size:255;index" json:"value"`
	Label    string     `gorm:"column:label;size:255" json:"label"`
	Split    string     `gorm:"column:split;size:64" json:"split"`
	Items    []*Item    `gorm:"foreignKey:GroupID;references:ID" json:"items,omitempty"`
	Room     *Room      `gorm:"foreignKey:GroupID;references:ID" json:"room,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Group) TableName() string { return "item_group" }
