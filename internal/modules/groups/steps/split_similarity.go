package steps

import (
	"math"

	"github.com/openmuseum/museum-map-backend/internal/pkg/vecmath"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

// similarityChunk is the target size of a similarity-split child.
const similarityChunk = 100

// splitBySimilarity orders the items in a dispersal traversal over their
// topic vectors and cuts the traversal into near-equal chunks. Children keep
// the parent's value and label; the traversal order spreads lookalike items
// across the chunks.
func splitBySimilarity(parent *types.Group, items []*types.Item) []childPlan {
	if len(items) == 0 {
		return nil
	}
	vectors := make([][]float32, len(items))
	for i, item := range items {
		vectors[i] = item.TopicVector()
	}
	order := vecmath.DispersalOrder(vectors)
	limit := float64(len(items)) / math.Ceil(float64(len(items))/similarityChunk)

	newChild := func() childPlan {
		return childPlan{group: &types.Group{
			ParentID: &parent.ID,
			Value:    parent.Value,
			Label:    parent.Label,
			Split:    types.SplitSimilar,
		}}
	}
	plans := []childPlan{newChild()}
	count := 0
	for _, idx := range order {
		if float64(count) > limit {
			plans = append(plans, newChild())
			count = 0
		}
		last := &plans[len(plans)-1]
		last.itemIDs = append(last.itemIDs, items[idx].ID)
		count++
	}
	return plans
}
