package steps

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/openmuseum/museum-map-backend/internal/types"
)

func newID() uuid.UUID { return uuid.New() }

func testItem(attrs datatypes.JSONMap) *types.Item {
	return &types.Item{ID: uuid.New(), Attributes: attrs}
}

func itemWithCategories(categories ...string) *types.Item {
	vals := make([]interface{}, len(categories))
	for i, c := range categories {
		vals[i] = c
	}
	return testItem(datatypes.JSONMap{types.AttrCategories: vals})
}

func itemWithYear(year string) *types.Item {
	return testItem(datatypes.JSONMap{"year": year})
}

func itemWithVector(vec ...float64) *types.Item {
	vals := make([]interface{}, len(vec))
	for i, v := range vec {
		vals[i] = v
	}
	return testItem(datatypes.JSONMap{types.AttrTopicVector: vals})
}

func planFor(plans []childPlan, value string) *childPlan {
	for i := range plans {
		if plans[i].group.Value == value {
			return &plans[i]
		}
	}
	return nil
}
