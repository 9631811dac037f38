package items

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/modules/items/steps"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
)

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Items repos.ItemRepo
	Vocab steps.Vocab
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

type (
	ExpandCategoriesInput  = steps.ExpandCategoriesInput
	ExpandCategoriesOutput = steps.ExpandCategoriesOutput
)

func (u Usecases) ExpandCategories(ctx context.Context, in ExpandCategoriesInput) (ExpandCategoriesOutput, error) {
	return steps.ExpandCategories(ctx, steps.ExpandCategoriesDeps{
		DB:    u.deps.DB,
		Log:   u.deps.Log,
		Items: u.deps.Items,
		Vocab: u.deps.Vocab,
	}, in)
}
