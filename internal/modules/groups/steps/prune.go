package steps

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

type PruneSingleDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Items  repos.ItemRepo
	Groups repos.GroupRepo
}

type PruneSingleInput struct{}

type PruneSingleOutput struct {
	Pruned int
}

// PruneSingle collapses chain links: a group holding no items of its own and
// exactly one child is deleted and its child takes its place. Repeats until
// no such group remains.
func PruneSingle(ctx context.Context, deps PruneSingleDeps, _ PruneSingleInput) (PruneSingleOutput, error) {
	out := PruneSingleOutput{}
	for {
		groups, err := deps.Groups.GetAll(ctx, deps.DB)
		if err != nil {
			return out, err
		}
		items, err := deps.Items.GetAll(ctx, deps.DB)
		if err != nil {
			return out, err
		}
		target, child := findPrunable(groups, items)
		if target == nil {
			break
		}
		if err := deps.Groups.SetParent(ctx, deps.DB, child.ID, target.ParentID); err != nil {
			return out, err
		}
		if err := deps.Groups.Delete(ctx, deps.DB, target.ID); err != nil {
			return out, err
		}
		deps.Log.Debug("pruned group", "value", target.Value)
		out.Pruned++
	}
	deps.Log.Info("pruned single-child groups", "pruned", out.Pruned)
	return out, nil
}

// findPrunable returns the first empty single-child group and its child.
func findPrunable(groups []*types.Group, items []*types.Item) (*types.Group, *types.Group) {
	itemCounts := map[uuid.UUID]int{}
	for _, item := range items {
		if item.GroupID != nil {
			itemCounts[*item.GroupID]++
		}
	}
	children := map[uuid.UUID][]*types.Group{}
	for _, g := range groups {
		if g.ParentID != nil {
			children[*g.ParentID] = append(children[*g.ParentID], g)
		}
	}
	for _, g := range groups {
		if itemCounts[g.ID] == 0 && len(children[g.ID]) == 1 {
			return g, children[g.ID][0]
		}
	}
	return nil, nil
}
