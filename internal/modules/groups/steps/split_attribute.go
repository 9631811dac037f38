package steps

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/openmuseum/museum-map-backend/internal/types"
)

// Default attribute value bounds: a value is a usable split key when it is
// neither near-universal across the group nor too rare to form a group of its
// own, and the usable values together must cover most of the items.
const (
	attrMaxShare    = 0.6666
	attrMinCount    = 15
	attrMinCoverage = 0.9
)

// splitByAttribute partitions a group by the values of one list attribute.
// Children are created rarest value first, and an item goes to the first
// child whose value it carries. Items matching no value fall into a
// catch-all child keeping the parent's label.
func splitByAttribute(parent *types.Group, items []*types.Item, attr string, bounds SplitBounds) ([]childPlan, bool) {
	n := len(items)
	if n == 0 {
		return nil, false
	}
	counts := map[string]int{}
	for _, item := range items {
		for _, v := range item.StringList(attr) {
			counts[v]++
		}
	}
	type valueCount struct {
		value string
		count int
	}
	var qualifying []valueCount
	for _, v := range sortedValues(counts) {
		c := counts[v]
		if float64(c) < float64(n)*bounds.AttrMaxShare && c >= bounds.AttrMinCount {
			qualifying = append(qualifying, valueCount{value: v, count: c})
		}
	}
	if len(qualifying) == 0 {
		return nil, false
	}
	qualifies := map[string]bool{}
	for _, vc := range qualifying {
		qualifies[vc.value] = true
	}
	covered := 0
	for _, item := range items {
		for _, v := range item.StringList(attr) {
			if qualifies[v] {
				covered++
				break
			}
		}
	}
	if float64(covered)/float64(n) <= bounds.AttrMinCoverage {
		return nil, false
	}

	// Rarest first so specific values claim their items before common ones.
	sort.SliceStable(qualifying, func(i, j int) bool {
		if qualifying[i].count != qualifying[j].count {
			return qualifying[i].count < qualifying[j].count
		}
		return qualifying[i].value < qualifying[j].value
	})

	claimed := map[uuid.UUID]bool{}
	var plans []childPlan
	for _, vc := range qualifying {
		plan := childPlan{group: &types.Group{
			ParentID: &parent.ID,
			Value:    vc.value,
			Label:    fmt.Sprintf("%s - %s", parent.Label, vc.value),
			Split:    types.SplitAttribute,
		}}
		for _, item := range items {
			if claimed[item.ID] {
				continue
			}
			for _, v := range item.StringList(attr) {
				if v == vc.value {
					plan.itemIDs = append(plan.itemIDs, item.ID)
					claimed[item.ID] = true
					break
				}
			}
		}
		plans = append(plans, plan)
	}
	var rest []uuid.UUID
	for _, item := range items {
		if !claimed[item.ID] {
			rest = append(rest, item.ID)
		}
	}
	if len(rest) > 0 {
		plans = append(plans, childPlan{
			group: &types.Group{
				ParentID: &parent.ID,
				Value:    parent.Label,
				Label:    parent.Label,
				Split:    types.SplitAttribute,
			},
			itemIDs: rest,
		})
	}
	return plans, true
}
