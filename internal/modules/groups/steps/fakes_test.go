package steps

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

// memStore is an in-memory stand-in for the item and group repositories so
// step orchestration can be tested without a database.
type memStore struct {
	items  []*types.Item
	groups []*types.Group
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

type fakeHierarchies struct {
	hierarchies map[string][][]string
}

func (f *fakeHierarchies) Hierarchies(_ context.Context, term string) [][]string {
	return f.hierarchies[term]
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("dev")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}
