package steps

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

type MoveInnerItemsDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Items  repos.ItemRepo
	Groups repos.GroupRepo
}

type MoveInnerItemsInput struct{}

type MoveInnerItemsOutput struct {
	Moved int
}

// MoveInnerItems restores the leaves-only item invariant: a group holding
// both items and children gets a new child with the same value and label, and
// its direct items move into it. Repeats until only leaves hold items.
func MoveInnerItems(ctx context.Context, deps MoveInnerItemsDeps, _ MoveInnerItemsInput) (MoveInnerItemsOutput, error) {
	out := MoveInnerItemsOutput{}
	for {
		groups, err := deps.Groups.GetAll(ctx, deps.DB)
		if err != nil {
			return out, err
		}
		items, err := deps.Items.GetAll(ctx, deps.DB)
		if err != nil {
			return out, err
		}
		target, itemIDs := findInnerHolder(groups, items)
		if target == nil {
			break
		}
		child := &types.Group{
			ParentID: &target.ID,
			Value:    target.Value,
			Label:    target.Label,
			Split:    types.SplitInner,
		}
		if _, err := deps.Groups.Create(ctx, deps.DB, []*types.Group{child}); err != nil {
			return out, err
		}
		if err := deps.Items.AssignGroup(ctx, deps.DB, itemIDs, &child.ID); err != nil {
			return out, err
		}
		deps.Log.Debug("moved inner items", "value", target.Value, "items", len(itemIDs))
		out.Moved++
	}
	deps.Log.Info("moved inner items", "groups", out.Moved)
	return out, nil
}

// findInnerHolder returns the first group holding both direct items and
// children, with its direct item ids.
func findInnerHolder(groups []*types.Group, items []*types.Item) (*types.Group, []uuid.UUID) {
	itemsByGroup := map[uuid.UUID][]uuid.UUID{}
	for _, item := range items {
		if item.GroupID != nil {
			itemsByGroup[*item.GroupID] = append(itemsByGroup[*item.GroupID], item.ID)
		}
	}
	hasChildren := map[uuid.UUID]bool{}
	for _, g := range groups {
		if g.ParentID != nil {
			hasChildren[*g.ParentID] = true
		}
	}
	for _, g := range groups {
		if hasChildren[g.ID] && len(itemsByGroup[g.ID]) > 0 {
			return g, itemsByGroup[g.ID]
		}
	}
	return nil, nil
}
