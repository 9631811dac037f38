package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Attribute keys this core reads or writes on the item attribute bag.
const (
	AttrCategories  = "_categories"
	AttrTopicVector = "topic_vector"
)

// Item is one catalogue object. The attribute bag is owned by the catalogue
// loader; this core only derives AttrCategories and assigns GroupID, RoomID
// and Sequence.
type Item struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	GroupID    *uuid.UUID        `gorm:"type:uuid;index" json:"group_id"`
	Group      *Group            `gorm:"foreignKey:GroupID;references:ID" json:"group,omitempty"`
	RoomID     *uuid.UUID        `gorm:"type:uuid;index" json:"room_id"`
	Sequence   *int              `gorm:"column:sequence" json:"sequence,omitempty"`
	Attributes datatypes.JSONMap `gorm:"column:attributes" json:"attributes"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Item) TableName() string { return "item" }

// MalformedFieldError reports an attribute value that cannot be parsed as
// the type a pipeline stage requires.
type MalformedFieldError struct {
	ItemID uuid.UUID
	Field  string
	Value  interface{}
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("item %s: malformed field %q: %v", e.ItemID, e.Field, e.Value)
}

// StringList reads an attribute holding a list of strings. Missing or blank
// entries are skipped; a missing attribute yields nil.
func (i *Item) StringList(key string) []string {
	raw, ok := i.Attributes[key]
	if !ok || raw == nil {
		return nil
	}
	var out []string
	switch vals := raw.(type) {
	case []string:
		for _, v := range vals {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	case []interface{}:
		for _, v := range vals {
			if s, ok := v.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// Categories returns the derived category set written by the category
// expansion stage.
func (i *Item) Categories() []string {
	return i.StringList(AttrCategories)
}

func (i *Item) SetCategories(categories []string) {
	if i.Attributes == nil {
		i.Attributes = datatypes.JSONMap{}
	}
	vals := make([]interface{}, len(categories))
	for idx, c := range categories {
		vals[idx] = c
	}
	i.Attributes[AttrCategories] = vals
}

// TopicVector returns the fixed-length topic probability vector produced by
// the external topic model, or nil when absent.
func (i *Item) TopicVector() []float32 {
	raw, ok := i.Attributes[AttrTopicVector]
	if !ok || raw == nil {
		return nil
	}
	switch vals := raw.(type) {
	case []float32:
		return vals
	case []interface{}:
		out := make([]float32, 0, len(vals))
		for _, v := range vals {
			f, ok := v.(float64)
			if !ok {
				return nil
			}
			out = append(out, float32(f))
		}
		return out
	}
	return nil
}

// Year reads the configured temporal attribute. The second return is false
// when the field is absent or blank; a present but non-numeric value is a
// MalformedFieldError.
func (i *Item) Year(field string) (int, bool, error) {
	raw, ok := i.Attributes[field]
	if !ok || raw == nil {
		return 0, false, nil
	}
	switch v := raw.(type) {
	case float64:
		return int(v), true, nil
	case int:
		return v, true, nil
	case string:
		v = strings.TrimSpace(v)
		if v == "" {
			return 0, false, nil
		}
		year, err := strconv.Atoi(v)
		if err != nil {
			return 0, false, &MalformedFieldError{ItemID: i.ID, Field: field, Value: raw}
		}
		return year, true, nil
	default:
		return 0, false, &MalformedFieldError{ItemID: i.ID, Field: field, Value: raw}
	}
}
