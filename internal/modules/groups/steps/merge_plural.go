package steps

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/pkg/phrase"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

type MergeSingularPluralDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Items  repos.ItemRepo
	Groups repos.GroupRepo
}

type MergeSingularPluralInput struct{}

type MergeSingularPluralOutput struct {
	Merged int
}

// MergeSingularPlural folds groups whose values are the singular and plural
// form of the same word into one group. The scan restarts after every merge
// and the group keeping the original value survives; its counterpart's items
// move over before the duplicate is deleted.
func MergeSingularPlural(ctx context.Context, deps MergeSingularPluralDeps, _ MergeSingularPluralInput) (MergeSingularPluralOutput, error) {
	out := MergeSingularPluralOutput{}
	for {
		groups, err := deps.Groups.GetAll(ctx, deps.DB)
		if err != nil {
			return out, err
		}
		pair := findSingularPluralPair(groups)
		if pair == nil {
			break
		}
		keep, drop := pair[0], pair[1]
		items, err := deps.Items.GetByGroupID(ctx, deps.DB, drop.ID)
		if err != nil {
			return out, err
		}
		ids := make([]uuid.UUID, len(items))
		for i, item := range items {
			ids[i] = item.ID
		}
		if err := deps.Items.AssignGroup(ctx, deps.DB, ids, &keep.ID); err != nil {
			return out, err
		}
		if err := deps.Groups.Delete(ctx, deps.DB, drop.ID); err != nil {
			return out, err
		}
		deps.Log.Debug("merged groups", "kept", keep.Value, "dropped", drop.Value, "items", len(ids))
		out.Merged++
	}
	deps.Log.Info("merged singular and plural groups", "merged", out.Merged)
	return out, nil
}

// findSingularPluralPair returns the first {survivor, duplicate} pair where
// the duplicate's value is the singular form of the survivor's value.
func findSingularPluralPair(groups []*types.Group) []*types.Group {
	byValue := map[string][]*types.Group{}
	for _, g := range groups {
		byValue[g.Value] = append(byValue[g.Value], g)
	}
	for _, g := range groups {
		singular := phrase.Singularize(g.Value)
		for _, other := range byValue[singular] {
			if other.ID != g.ID {
				return []*types.Group{g, other}
			}
		}
	}
	return nil
}
