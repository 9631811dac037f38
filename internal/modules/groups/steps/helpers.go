package steps

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/openmuseum/museum-map-backend/internal/pkg/grouptree"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

// capitalize upper-cases the first letter only; group labels keep the rest of
// the value untouched.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// countCategories tallies the lower-cased working categories across items.
// Repeated occurrences on one item count individually.
func countCategories(items []*types.Item) map[string]int {
	counts := map[string]int{}
	for _, item := range items {
		for _, c := range item.Categories() {
			counts[strings.ToLower(c)]++
		}
	}
	return counts
}

// pickCategory selects the least frequent category at or above the threshold.
// Ties resolve by label so repeated runs build the same groups.
func pickCategory(counts map[string]int, threshold int) (string, bool) {
	best := ""
	bestCount := 0
	for label, count := range counts {
		if count < threshold {
			continue
		}
		if best == "" || count < bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	return best, best != ""
}

func hasCategory(item *types.Item, category string) bool {
	for _, c := range item.Categories() {
		if strings.ToLower(c) == category {
			return true
		}
	}
	return false
}

// buildTree loads the group list into an in-memory tree with direct item ids
// attached, for cycle guarding and aggregate counting.
func buildTree(groups []*types.Group, items []*types.Item) *grouptree.Tree {
	byGroup := map[uuid.UUID][]uuid.UUID{}
	for _, item := range items {
		if item.GroupID != nil {
			byGroup[*item.GroupID] = append(byGroup[*item.GroupID], item.ID)
		}
	}
	nodes := make([]*grouptree.Node, 0, len(groups))
	for _, g := range groups {
		nodes = append(nodes, &grouptree.Node{
			ID:       g.ID,
			ParentID: g.ParentID,
			Value:    g.Value,
			Label:    g.Label,
			Split:    g.Split,
			Items:    byGroup[g.ID],
		})
	}
	return grouptree.New(nodes)
}

// sortedValues returns map keys in a stable order for deterministic iteration.
func sortedValues(counts map[string]int) []string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
