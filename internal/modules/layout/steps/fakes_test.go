package steps

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

// memStore backs in-memory repository fakes so the layout steps can be
// tested without a database.
type memStore struct {
	items   []*types.Item
	groups  []*types.Group
	rooms   []*types.Room
	floors  []*types.Floor
	topics  []*types.FloorTopic
	samples map[uuid.UUID][]*types.Item
}

type memItemRepo struct{ store *memStore }

func (r *memItemRepo) Create(_ context.Context, _ *gorm.DB, items []*types.Item) ([]*types.Item, error) {
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		r.store.items = append(r.store.items, item)
	}
	return items, nil
}

func (r *memItemRepo) GetAll(_ context.Context, _ *gorm.DB) ([]*types.Item, error) {
	return append([]*types.Item(nil), r.store.items...), nil
}

func (r *memItemRepo) GetUngrouped(_ context.Context, _ *gorm.DB) ([]*types.Item, error) {
	var out []*types.Item
	for _, item := range r.store.items {
		if item.GroupID == nil {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memItemRepo) GetByGroupID(_ context.Context, _ *gorm.DB, groupID uuid.UUID) ([]*types.Item, error) {
	var out []*types.Item
	for _, item := range r.store.items {
		if item.GroupID != nil && *item.GroupID == groupID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memItemRepo) GetByRoomID(_ context.Context, _ *gorm.DB, roomID uuid.UUID) ([]*types.Item, error) {
	var out []*types.Item
	for _, item := range r.store.items {
		if item.RoomID != nil && *item.RoomID == roomID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memItemRepo) GetByRoomIDs(_ context.Context, _ *gorm.DB, roomIDs []uuid.UUID) ([]*types.Item, error) {
	want := map[uuid.UUID]bool{}
	for _, id := range roomIDs {
		want[id] = true
	}
	var out []*types.Item
	for _, item := range r.store.items {
		if item.RoomID != nil && want[*item.RoomID] {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memItemRepo) AssignGroup(_ context.Context, _ *gorm.DB, itemIDs []uuid.UUID, groupID *uuid.UUID) error {
	want := map[uuid.UUID]bool{}
	for _, id := range itemIDs {
		want[id] = true
	}
	for _, item := range r.store.items {
		if want[item.ID] {
			item.GroupID = groupID
		}
	}
	return nil
}

func (r *memItemRepo) AssignRoom(_ context.Context, _ *gorm.DB, itemIDs []uuid.UUID, roomID uuid.UUID) error {
	want := map[uuid.UUID]bool{}
	for _, id := range itemIDs {
		want[id] = true
	}
	for _, item := range r.store.items {
		if want[item.ID] {
			id := roomID
			item.RoomID = &id
		}
	}
	return nil
}

func (r *memItemRepo) SetSequence(_ context.Context, _ *gorm.DB, itemID uuid.UUID, sequence int) error {
	for _, item := range r.store.items {
		if item.ID == itemID {
			s := sequence
			item.Sequence = &s
		}
	}
	return nil
}

func (r *memItemRepo) UpdateAttributes(_ context.Context, _ *gorm.DB, _ *types.Item) error {
	return nil
}

type memGroupRepo struct{ store *memStore }

func (r *memGroupRepo) Create(_ context.Context, _ *gorm.DB, groups []*types.Group) ([]*types.Group, error) {
	for _, g := range groups {
		if g.ID == uuid.Nil {
			g.ID = uuid.New()
		}
		r.store.groups = append(r.store.groups, g)
	}
	return groups, nil
}

func (r *memGroupRepo) GetAll(_ context.Context, _ *gorm.DB) ([]*types.Group, error) {
	return append([]*types.Group(nil), r.store.groups...), nil
}

func (r *memGroupRepo) GetByValue(_ context.Context, _ *gorm.DB, value string) (*types.Group, error) {
	for _, g := range r.store.groups {
		if g.Value == value {
			return g, nil
		}
	}
	return nil, nil
}

func (r *memGroupRepo) GetRoots(_ context.Context, _ *gorm.DB) ([]*types.Group, error) {
	var out []*types.Group
	for _, g := range r.store.groups {
		if g.ParentID == nil {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *memGroupRepo) SetParent(_ context.Context, _ *gorm.DB, groupID uuid.UUID, parentID *uuid.UUID) error {
	for _, g := range r.store.groups {
		if g.ID == groupID {
			g.ParentID = parentID
		}
	}
	return nil
}

func (r *memGroupRepo) Delete(_ context.Context, _ *gorm.DB, groupID uuid.UUID) error {
	kept := r.store.groups[:0]
	for _, g := range r.store.groups {
		if g.ID != groupID {
			kept = append(kept, g)
		}
	}
	r.store.groups = kept
	return nil
}

type memRoomRepo struct{ store *memStore }

func (r *memRoomRepo) Create(_ context.Context, _ *gorm.DB, rooms []*types.Room) ([]*types.Room, error) {
	for _, room := range rooms {
		if room.ID == uuid.Nil {
			room.ID = uuid.New()
		}
		r.store.rooms = append(r.store.rooms, room)
	}
	return rooms, nil
}

func (r *memRoomRepo) GetAll(_ context.Context, _ *gorm.DB) ([]*types.Room, error) {
	return append([]*types.Room(nil), r.store.rooms...), nil
}

func (r *memRoomRepo) GetByFloorID(_ context.Context, _ *gorm.DB, floorID uuid.UUID) ([]*types.Room, error) {
	var out []*types.Room
	for _, room := range r.store.rooms {
		if room.FloorID == floorID {
			out = append(out, room)
		}
	}
	return out, nil
}

func (r *memRoomRepo) SetSample(_ context.Context, _ *gorm.DB, roomID uuid.UUID, itemID uuid.UUID) error {
	for _, room := range r.store.rooms {
		if room.ID == roomID {
			id := itemID
			room.SampleItemID = &id
		}
	}
	return nil
}

type memFloorRepo struct{ store *memStore }

func (r *memFloorRepo) Create(_ context.Context, _ *gorm.DB, floors []*types.Floor) ([]*types.Floor, error) {
	for _, floor := range floors {
		if floor.ID == uuid.Nil {
			floor.ID = uuid.New()
		}
		r.store.floors = append(r.store.floors, floor)
	}
	return floors, nil
}

func (r *memFloorRepo) GetAll(_ context.Context, _ *gorm.DB) ([]*types.Floor, error) {
	return append([]*types.Floor(nil), r.store.floors...), nil
}

func (r *memFloorRepo) ReplaceSamples(_ context.Context, _ *gorm.DB, floor *types.Floor, items []*types.Item) error {
	if r.store.samples == nil {
		r.store.samples = map[uuid.UUID][]*types.Item{}
	}
	r.store.samples[floor.ID] = items
	return nil
}

type memFloorTopicRepo struct{ store *memStore }

func (r *memFloorTopicRepo) Create(_ context.Context, _ *gorm.DB, topics []*types.FloorTopic) ([]*types.FloorTopic, error) {
	for _, topic := range topics {
		if topic.ID == uuid.Nil {
			topic.ID = uuid.New()
		}
		r.store.topics = append(r.store.topics, topic)
	}
	return topics, nil
}

func (r *memFloorTopicRepo) DeleteAll(_ context.Context, _ *gorm.DB) error {
	r.store.topics = nil
	return nil
}

func newID() uuid.UUID { return uuid.New() }

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func groupedItem(groupID uuid.UUID, attrs datatypes.JSONMap) *types.Item {
	id := groupID
	return &types.Item{ID: uuid.New(), GroupID: &id, Attributes: attrs}
}

func vectorAttrs(vec ...float64) datatypes.JSONMap {
	vals := make([]interface{}, len(vec))
	for i, v := range vec {
		vals[i] = v
	}
	return datatypes.JSONMap{types.AttrTopicVector: vals}
}
