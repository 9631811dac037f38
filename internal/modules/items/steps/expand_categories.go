package steps

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/pkg/phrase"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

// Expansion names accepted in the hierarchy configuration.
const (
	ExpansionNLP = "nlp"
	ExpansionAAT = "aat"
)

// Vocab resolves a term to its merged broader-term chain. Lookup failures are
// handled inside the resolver and surface as an empty result.
type Vocab interface {
	Merged(ctx context.Context, term string) []string
}

type ExpandCategoriesDeps struct {
	DB    *gorm.DB
	Log   *logger.Logger
	Items repos.ItemRepo
	Vocab Vocab
}

type ExpandCategoriesInput struct {
	// HierarchyField is the item attribute holding the raw category list.
	HierarchyField string
	// Expansions names the enabled expansion passes (ExpansionNLP, ExpansionAAT).
	Expansions []string
}

type ExpandCategoriesOutput struct {
	Items int
}

// ExpandCategories derives the working category set for every item: the
// lower-cased raw categories, optionally widened with phrase decomposition
// candidates and merged vocabulary ancestor chains. Duplicates are kept on
// purpose; downstream grouping counts them as signal strength.
func ExpandCategories(ctx context.Context, deps ExpandCategoriesDeps, in ExpandCategoriesInput) (ExpandCategoriesOutput, error) {
	items, err := deps.Items.GetAll(ctx, deps.DB)
	if err != nil {
		return ExpandCategoriesOutput{}, err
	}
	nlp := hasExpansion(in.Expansions, ExpansionNLP)
	aat := hasExpansion(in.Expansions, ExpansionAAT)
	for _, item := range items {
		categories := expandItemCategories(ctx, item, in.HierarchyField, nlp, aat, deps.Vocab)
		item.SetCategories(categories)
		if err := deps.Items.UpdateAttributes(ctx, deps.DB, item); err != nil {
			return ExpandCategoriesOutput{}, err
		}
	}
	deps.Log.Info("expanded item categories", "items", len(items))
	return ExpandCategoriesOutput{Items: len(items)}, nil
}

func expandItemCategories(ctx context.Context, item *types.Item, field string, nlp, aat bool, vocab Vocab) []string {
	raw := item.StringList(field)
	categories := make([]string, 0, len(raw))
	for _, c := range raw {
		categories = append(categories, strings.ToLower(c))
	}
	if nlp {
		for _, c := range raw {
			categories = append(categories, phrase.Extract(strings.ToLower(c))...)
		}
	}
	if aat && vocab != nil {
		for _, c := range append([]string(nil), categories...) {
			categories = append(categories, vocab.Merged(ctx, c)...)
		}
	}
	return categories
}

func hasExpansion(expansions []string, name string) bool {
	for _, e := range expansions {
		if strings.EqualFold(strings.TrimSpace(e), name) {
			return true
		}
	}
	return false
}
