package steps

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

// GroupThreshold is the minimum number of occurrences a category needs across
// the ungrouped items before it becomes a group.
const GroupThreshold = 15

type GenerateDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Items  repos.ItemRepo
	Groups repos.GroupRepo
}

type GenerateInput struct {
	// Threshold overrides GroupThreshold when positive.
	Threshold int
}

type GenerateOutput struct {
	Created  int
	Assigned int
}

// Generate builds the basic groups. Categories are counted across the still
// ungrouped items; the least frequent category above the threshold claims its
// items first, so small specific groups form before broad generic ones
// swallow everything. Counting repeats after every assignment until no
// category is left above the threshold.
func Generate(ctx context.Context, deps GenerateDeps, in GenerateInput) (GenerateOutput, error) {
	threshold := in.Threshold
	if threshold <= 0 {
		threshold = GroupThreshold
	}
	out := GenerateOutput{}
	for {
		items, err := deps.Items.GetUngrouped(ctx, deps.DB)
		if err != nil {
			return out, err
		}
		category, ok := pickCategory(countCategories(items), threshold)
		if !ok {
			break
		}
		group, err := deps.Groups.GetByValue(ctx, deps.DB, category)
		if err != nil {
			return out, err
		}
		if group == nil {
			group = &types.Group{Value: category, Label: capitalize(category), Split: types.SplitBasic}
			if _, err := deps.Groups.Create(ctx, deps.DB, []*types.Group{group}); err != nil {
				return out, err
			}
			out.Created++
		}
		var itemIDs []uuid.UUID
		for _, item := range items {
			if hasCategory(item, category) {
				itemIDs = append(itemIDs, item.ID)
			}
		}
		if err := deps.Items.AssignGroup(ctx, deps.DB, itemIDs, &group.ID); err != nil {
			return out, err
		}
		out.Assigned += len(itemIDs)
		deps.Log.Debug("generated group", "value", category, "items", len(itemIDs))
	}
	deps.Log.Info("generated basic groups", "created", out.Created, "assigned", out.Assigned)
	return out, nil
}
