package steps

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

// Size bounds for leaf groups. Leaves between SplitLower and SplitUpper are
// split by time first; leaves at SplitUpper or above try shared attribute
// values before falling back to time and similarity.
const (
	SplitLower = 120
	SplitUpper = 300
)

// splitAttributes are tried in order on very large leaves.
var splitAttributes = []string{"concepts", "subjects", "materials", "techniques"}

// SplitBounds carries the split thresholds. Zero fields fall back to the
// named defaults, so callers only set what they override.
type SplitBounds struct {
	Lower           int
	Upper           int
	YearCoverage    float64
	AttrMaxShare    float64
	AttrMinCount    int
	AttrMinCoverage float64
}

func (b SplitBounds) withDefaults() SplitBounds {
	if b.Lower <= 0 {
		b.Lower = SplitLower
	}
	if b.Upper <= 0 {
		b.Upper = SplitUpper
	}
	if b.YearCoverage <= 0 {
		b.YearCoverage = yearCoverage
	}
	if b.AttrMaxShare <= 0 {
		b.AttrMaxShare = attrMaxShare
	}
	if b.AttrMinCount <= 0 {
		b.AttrMinCount = attrMinCount
	}
	if b.AttrMinCoverage <= 0 {
		b.AttrMinCoverage = attrMinCoverage
	}
	return b
}

// childPlan is one child group to create together with the items it claims.
type childPlan struct {
	group   *types.Group
	itemIDs []uuid.UUID
}

type SplitLargeDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Items  repos.ItemRepo
	Groups repos.GroupRepo
}

type SplitLargeInput struct {
	// YearField is the item attribute holding the production year.
	YearField string
	// Bounds overrides the split thresholds where set.
	Bounds SplitBounds
}

type SplitLargeOutput struct {
	Splits int
}

// SplitLarge breaks oversized leaf groups into child groups until every leaf
// is below the size bounds. The scan restarts after each pass that split
// anything, so newly created children are themselves checked.
func SplitLarge(ctx context.Context, deps SplitLargeDeps, in SplitLargeInput) (SplitLargeOutput, error) {
	out := SplitLargeOutput{}
	bounds := in.Bounds.withDefaults()
	for {
		split, err := splitPass(ctx, deps, in.YearField, bounds)
		if err != nil {
			return out, err
		}
		if split == 0 {
			break
		}
		out.Splits += split
	}
	deps.Log.Info("split large groups", "splits", out.Splits)
	return out, nil
}

func splitPass(ctx context.Context, deps SplitLargeDeps, yearField string, bounds SplitBounds) (int, error) {
	groups, err := deps.Groups.GetAll(ctx, deps.DB)
	if err != nil {
		return 0, err
	}
	hasChildren := map[uuid.UUID]bool{}
	for _, g := range groups {
		if g.ParentID != nil {
			hasChildren[*g.ParentID] = true
		}
	}
	splits := 0
	for _, g := range groups {
		if hasChildren[g.ID] {
			continue
		}
		items, err := deps.Items.GetByGroupID(ctx, deps.DB, g.ID)
		if err != nil {
			return splits, err
		}
		plans, err := planSplit(g, items, yearField, bounds)
		if err != nil {
			return splits, err
		}
		// A single-child plan reproduces the parent and the scan would
		// never converge.
		if len(plans) < 2 {
			continue
		}
		if err := applyPlans(ctx, deps, plans); err != nil {
			return splits, err
		}
		deps.Log.Debug("split group", "value", g.Value, "items", len(items), "children", len(plans))
		splits++
	}
	return splits, nil
}

func planSplit(g *types.Group, items []*types.Item, yearField string, bounds SplitBounds) ([]childPlan, error) {
	n := len(items)
	switch {
	case n > bounds.Lower && n < bounds.Upper:
		plans, ok, err := splitByYear(g, items, yearField, bounds.YearCoverage)
		if err != nil || ok {
			return plans, err
		}
		return splitBySimilarity(g, items), nil
	case n >= bounds.Upper:
		for _, attr := range splitAttributes {
			if plans, ok := splitByAttribute(g, items, attr, bounds); ok {
				return plans, nil
			}
		}
		plans, ok, err := splitByYear(g, items, yearField, bounds.YearCoverage)
		if err != nil || ok {
			return plans, err
		}
		return splitBySimilarity(g, items), nil
	}
	return nil, nil
}

func applyPlans(ctx context.Context, deps SplitLargeDeps, plans []childPlan) error {
	for _, plan := range plans {
		if _, err := deps.Groups.Create(ctx, deps.DB, []*types.Group{plan.group}); err != nil {
			return err
		}
		if err := deps.Items.AssignGroup(ctx, deps.DB, plan.itemIDs, &plan.group.ID); err != nil {
			return err
		}
	}
	return nil
}
