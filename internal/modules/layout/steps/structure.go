package steps

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/pkg/grouptree"
	"github.com/openmuseum/museum-map-backend/internal/pkg/phrase"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

type GenerateStructureDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Items  repos.ItemRepo
	Groups repos.GroupRepo
	Rooms  repos.RoomRepo
	Floors repos.FloorRepo
}

type GenerateStructureInput struct {
	Slots []RoomSlot
}

type GenerateStructureOutput struct {
	Floors int
	Rooms  int
}

// GenerateStructure assigns leaf groups to physical rooms. The floorplan
// template replays on every new floor; slots fill in template order with the
// next assignable group that fits the slot's capacity, and the related-first
// traversal order keeps topically close groups in adjacent rooms. A floor
// that cannot place a single group stops the run, otherwise oversized
// unsplittable groups would spawn empty floors forever.
func GenerateStructure(ctx context.Context, deps GenerateStructureDeps, in GenerateStructureInput) (GenerateStructureOutput, error) {
	out := GenerateStructureOutput{}
	if len(in.Slots) == 0 {
		return out, fmt.Errorf("generate structure: no room slots")
	}
	assigned := map[uuid.UUID]bool{}
	for level := 0; ; level++ {
		assignable, err := assignableGroups(ctx, deps, assigned)
		if err != nil {
			return out, err
		}
		if len(assignable) == 0 {
			break
		}
		floor := &types.Floor{Label: fmt.Sprintf("Floor %d", level), Level: level}
		if _, err := deps.Floors.Create(ctx, deps.DB, []*types.Floor{floor}); err != nil {
			return out, err
		}
		out.Floors++
		placed, err := fillFloor(ctx, deps, floor, in.Slots, assigned)
		if err != nil {
			return out, err
		}
		out.Rooms += placed
		if placed == 0 {
			deps.Log.Error("no group fits any room slot, stopping layout",
				"floor", floor.Level, "assignable", len(assignable))
			break
		}
	}
	deps.Log.Info("generated structure", "floors", out.Floors, "rooms", out.Rooms)
	return out, nil
}

// fillFloor walks the slot template once, placing at most one group per slot.
func fillFloor(ctx context.Context, deps GenerateStructureDeps, floor *types.Floor, slots []RoomSlot, assigned map[uuid.UUID]bool) (int, error) {
	nr := 1
	for _, slot := range slots {
		assignable, err := assignableGroups(ctx, deps, assigned)
		if err != nil {
			return nr - 1, err
		}
		itemsLeft := slot.Items
		splitsLeft := 1
		for _, ag := range assignable {
			if itemsLeft < len(ag.items) || splitsLeft <= 0 {
				break
			}
			if err := placeRoom(ctx, deps, floor, slot, nr, ag); err != nil {
				return nr - 1, err
			}
			itemsLeft -= len(ag.items)
			splitsLeft--
			assigned[ag.group.ID] = true
			nr++
		}
	}
	return nr - 1, nil
}

func placeRoom(ctx context.Context, deps GenerateStructureDeps, floor *types.Floor, slot RoomSlot, nr int, ag assignable) error {
	position, err := json.Marshal(slot.Position)
	if err != nil {
		return err
	}
	room := &types.Room{
		FloorID:  floor.ID,
		GroupID:  ag.group.ID,
		Number:   fmt.Sprintf("%d.%d", floor.Level, nr),
		Label:    phrase.Pluralize(ag.group.Label),
		Position: datatypes.JSON(position),
	}
	if _, err := deps.Rooms.Create(ctx, deps.DB, []*types.Room{room}); err != nil {
		return err
	}
	ids := make([]uuid.UUID, len(ag.items))
	for i, item := range ag.items {
		ids[i] = item.ID
	}
	if err := deps.Items.AssignRoom(ctx, deps.DB, ids, room.ID); err != nil {
		return err
	}
	deps.Log.Debug("placed room", "number", room.Number, "label", room.Label, "items", len(ids))
	return nil
}

type assignable struct {
	group *types.Group
	items []*types.Item
}

// assignableGroups returns the groups still needing a room, in a pre-order
// walk of the hierarchy so siblings and descendants stay adjacent.
func assignableGroups(ctx context.Context, deps GenerateStructureDeps, assigned map[uuid.UUID]bool) ([]assignable, error) {
	groups, err := deps.Groups.GetAll(ctx, deps.DB)
	if err != nil {
		return nil, err
	}
	items, err := deps.Items.GetAll(ctx, deps.DB)
	if err != nil {
		return nil, err
	}
	rooms, err := deps.Rooms.GetAll(ctx, deps.DB)
	if err != nil {
		return nil, err
	}
	roomed := map[uuid.UUID]bool{}
	for _, room := range rooms {
		roomed[room.GroupID] = true
	}
	itemsByGroup := map[uuid.UUID][]*types.Item{}
	for _, item := range items {
		if item.GroupID != nil {
			itemsByGroup[*item.GroupID] = append(itemsByGroup[*item.GroupID], item)
		}
	}
	byID := map[uuid.UUID]*types.Group{}
	nodes := make([]*grouptree.Node, 0, len(groups))
	for _, g := range groups {
		byID[g.ID] = g
		nodes = append(nodes, &grouptree.Node{
			ID:       g.ID,
			ParentID: g.ParentID,
			Value:    g.Value,
			Label:    g.Label,
			Split:    g.Split,
		})
	}
	tree := grouptree.New(nodes)
	var out []assignable
	for _, root := range tree.Roots() {
		tree.Walk(root.ID, func(n *grouptree.Node) {
			if !assigned[n.ID] && !roomed[n.ID] && len(itemsByGroup[n.ID]) > 0 {
				out = append(out, assignable{group: byID[n.ID], items: itemsByGroup[n.ID]})
			}
		})
	}
	return out, nil
}
