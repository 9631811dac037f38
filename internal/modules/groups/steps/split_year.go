package steps

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/openmuseum/museum-map-backend/internal/types"
)

// yearCoverage is the default share of items that must carry a year before a
// time split is attempted.
const yearCoverage = 0.95

// maxPeriodMerge keeps greedily coalescing adjacent periods while their
// combined size stays below this.
const maxPeriodMerge = 100

type period struct {
	starts []int
	count  int
}

// splitByYear partitions a group into time periods. Spans up to ten years
// stay whole; spans up to a century split into decades, anything longer into
// centuries. Sparse adjacent periods coalesce. Items without a year fall into
// a catch-all child keeping the parent's label.
func splitByYear(parent *types.Group, items []*types.Item, yearField string, coverage float64) ([]childPlan, bool, error) {
	if len(items) == 0 {
		return nil, false, nil
	}
	years := map[uuid.UUID]int{}
	for _, item := range items {
		year, ok, err := item.Year(yearField)
		if err != nil {
			return nil, false, err
		}
		if ok {
			years[item.ID] = year
		}
	}
	if float64(len(years))/float64(len(items)) <= coverage {
		return nil, false, nil
	}
	minYear, maxYear := 0, 0
	first := true
	for _, y := range years {
		if first || y < minYear {
			minYear = y
		}
		if first || y > maxYear {
			maxYear = y
		}
		first = false
	}
	span := maxYear - minYear
	if span <= 10 {
		return nil, false, nil
	}
	size := 10
	if span > 100 {
		size = 100
	}
	periods := bucketYears(items, years, minYear, maxYear, size)
	periods = coalescePeriods(periods)

	var plans []childPlan
	for _, p := range periods {
		lo := p.starts[0]
		hi := p.starts[len(p.starts)-1] + size
		var ids []uuid.UUID
		for _, item := range items {
			if y, ok := years[item.ID]; ok && y >= lo && y < hi {
				ids = append(ids, item.ID)
			}
		}
		plans = append(plans, childPlan{
			group: &types.Group{
				ParentID: &parent.ID,
				Value:    strconv.Itoa(lo),
				Label:    fmt.Sprintf("%s - %s", parent.Label, periodLabel(p, size)),
				Split:    types.SplitTime,
			},
			itemIDs: ids,
		})
	}
	var leftover []uuid.UUID
	for _, item := range items {
		if _, ok := years[item.ID]; !ok {
			leftover = append(leftover, item.ID)
		}
	}
	if len(leftover) > 0 {
		plans = append(plans, childPlan{
			group: &types.Group{
				ParentID: &parent.ID,
				Value:    parent.Label,
				Label:    parent.Label,
				Split:    types.SplitTime,
			},
			itemIDs: leftover,
		})
	}
	return plans, true, nil
}

// bucketYears counts items into fixed-size buckets, keeping only the
// non-empty ones in chronological order.
func bucketYears(items []*types.Item, years map[uuid.UUID]int, minYear, maxYear, size int) []period {
	var periods []period
	for start := floorTo(minYear, size); start <= floorTo(maxYear, size); start += size {
		count := 0
		for _, item := range items {
			if y, ok := years[item.ID]; ok && y >= start && y < start+size {
				count++
			}
		}
		if count > 0 {
			periods = append(periods, period{starts: []int{start}, count: count})
		}
	}
	return periods
}

func coalescePeriods(periods []period) []period {
	idx := 0
	for idx < len(periods)-1 {
		if periods[idx].count+periods[idx+1].count < maxPeriodMerge {
			periods[idx].starts = append(periods[idx].starts, periods[idx+1].starts...)
			periods[idx].count += periods[idx+1].count
			periods = append(periods[:idx+1], periods[idx+2:]...)
		} else {
			idx++
		}
	}
	return periods
}

func periodLabel(p period, size int) string {
	lo := p.starts[0]
	hi := p.starts[len(p.starts)-1]
	if size == 10 {
		if lo == hi {
			return fmt.Sprintf("%ds", lo)
		}
		return fmt.Sprintf("%ds-%ds", lo, hi)
	}
	if lo == hi {
		return fmt.Sprintf("%s century", ordinal(lo/100+1))
	}
	return fmt.Sprintf("%s-%s century", ordinal(lo/100+1), ordinal(hi/100+1))
}

func ordinal(n int) string {
	switch {
	case n%10 == 1 && n != 11:
		return fmt.Sprintf("%dst", n)
	case n%10 == 2 && n != 12:
		return fmt.Sprintf("%dnd", n)
	case n%10 == 3 && n != 13:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}

func floorTo(v, size int) int {
	if v < 0 && v%size != 0 {
		return (v/size - 1) * size
	}
	return v / size * size
}
