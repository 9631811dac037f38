package steps

import (
	"context"
	"testing"

	"github.com/openmuseum/museum-map-backend/internal/types"
)

func summariesDeps(store *memStore, t *testing.T) GenerateSummariesDeps {
	return GenerateSummariesDeps{
		Log:    testLogger(t),
		Items:  &memItemRepo{store: store},
		Groups: &memGroupRepo{store: store},
		Rooms:  &memRoomRepo{store: store},
		Floors: &memFloorRepo{store: store},
		Topics: &memFloorTopicRepo{store: store},
	}
}

// buildFloor seeds one floor with a room per group, each holding the given
// number of items.
func buildFloor(store *memStore, sizes map[string]int) *types.Floor {
	floor := &types.Floor{ID: newID(), Label: "Floor 0", Level: 0}
	store.floors = append(store.floors, floor)
	for value, n := range sizes {
		g := &types.Group{ID: newID(), Value: value, Label: value, Split: types.SplitBasic}
		store.groups = append(store.groups, g)
		room := &types.Room{ID: newID(), FloorID: floor.ID, GroupID: g.ID, Label: value}
		store.rooms = append(store.rooms, room)
		for i := 0; i < n; i++ {
			item := groupedItem(g.ID, nil)
			roomID := room.ID
			item.RoomID = &roomID
			store.items = append(store.items, item)
		}
	}
	return floor
}

func TestGenerateSummariesRoomSampleIsStable(t *testing.T) {
	store := &memStore{}
	buildFloor(store, map[string]int{"vases": 5})
	out, err := GenerateSummaries(context.Background(), summariesDeps(store, t), GenerateSummariesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Rooms != 1 {
		t.Fatalf("sampled %d rooms, want 1", out.Rooms)
	}
	room := store.rooms[0]
	if room.SampleItemID == nil {
		t.Fatalf("room sample not set")
	}
	items, _ := (&memItemRepo{store: store}).GetByRoomID(context.Background(), nil, room.ID)
	if *room.SampleItemID != items[len(items)/2].ID {
		t.Fatalf("sample should be the middle item of the room")
	}
}

func TestGenerateSummariesTopicsCoverTwoThirds(t *testing.T) {
	store := &memStore{}
	buildFloor(store, map[string]int{"vases": 60, "bowls": 30, "coins": 10})
	out, err := GenerateSummaries(context.Background(), summariesDeps(store, t), GenerateSummariesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 60 of 100 is below the share bound, adding 30 crosses it; coins never
	// becomes a topic.
	if out.Topics != 2 || len(store.topics) != 2 {
		t.Fatalf("expected two floor topics, got %d", len(store.topics))
	}
	if store.topics[0].Size != 60 || store.topics[1].Size != 30 {
		t.Fatalf("topics should be ranked by size: %+v", store.topics)
	}
}

func TestGenerateSummariesClimbsPastSplitGroups(t *testing.T) {
	store := &memStore{}
	floor := &types.Floor{ID: newID(), Label: "Floor 0", Level: 0}
	store.floors = append(store.floors, floor)
	basic := &types.Group{ID: newID(), Value: "vases", Label: "Vase", Split: types.SplitBasic}
	timeA := &types.Group{ID: newID(), Value: "1900", Label: "Vase - 1900s", Split: types.SplitTime, ParentID: &basic.ID}
	timeB := &types.Group{ID: newID(), Value: "1950", Label: "Vase - 1950s", Split: types.SplitTime, ParentID: &basic.ID}
	store.groups = append(store.groups, basic, timeA, timeB)
	for _, g := range []*types.Group{timeA, timeB} {
		room := &types.Room{ID: newID(), FloorID: floor.ID, GroupID: g.ID}
		store.rooms = append(store.rooms, room)
		for i := 0; i < 20; i++ {
			item := groupedItem(g.ID, nil)
			roomID := room.ID
			item.RoomID = &roomID
			store.items = append(store.items, item)
		}
	}
	_, err := GenerateSummaries(context.Background(), summariesDeps(store, t), GenerateSummariesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both time rooms aggregate into one topic on the basic ancestor, with
	// the pluralized label.
	if len(store.topics) != 1 {
		t.Fatalf("expected one aggregated topic, got %+v", store.topics)
	}
	topic := store.topics[0]
	if topic.GroupID != basic.ID || topic.Size != 40 || topic.Label != "Vases" {
		t.Fatalf("unexpected topic: %+v", topic)
	}
}

func TestGenerateSummariesFloorSamples(t *testing.T) {
	store := &memStore{}
	floor := buildFloor(store, map[string]int{"vases": 45})
	_, err := GenerateSummaries(context.Background(), summariesDeps(store, t), GenerateSummariesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Stride 45/15 = 3 yields fifteen samples.
	if got := len(store.samples[floor.ID]); got != 15 {
		t.Fatalf("floor samples = %d, want 15", got)
	}
}

func TestGenerateSummariesDropsStaleTopics(t *testing.T) {
	store := &memStore{}
	floor := buildFloor(store, map[string]int{"vases": 10})
	store.topics = append(store.topics, &types.FloorTopic{ID: newID(), FloorID: floor.ID, Label: "Stale", Size: 99})
	_, err := GenerateSummaries(context.Background(), summariesDeps(store, t), GenerateSummariesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, topic := range store.topics {
		if topic.Label == "Stale" {
			t.Fatalf("stale topics should be deleted before regeneration")
		}
	}
}
