package steps

import (
	"context"
	"testing"

	"gorm.io/datatypes"

	"github.com/openmuseum/museum-map-backend/internal/types"
)

type fakeVocab struct {
	merged map[string][]string
	calls  []string
}

func (f *fakeVocab) Merged(_ context.Context, term string) []string {
	f.calls = append(f.calls, term)
	return f.merged[term]
}

func TestExpandItemCategoriesLowercasesRaw(t *testing.T) {
	item := &types.Item{Attributes: datatypes.JSONMap{
		"categories": []interface{}{"Oil Paintings"},
	}}
	got := expandItemCategories(context.Background(), item, "categories", false, false, nil)
	if len(got) != 1 || got[0] != "oil paintings" {
		t.Fatalf("unexpected categories: %#v", got)
	}
}

func TestExpandItemCategoriesAddsPhraseCandidates(t *testing.T) {
	item := &types.Item{Attributes: datatypes.JSONMap{
		"categories": []interface{}{"Oil Paintings"},
	}}
	got := expandItemCategories(context.Background(), item, "categories", true, false, nil)
	if len(got) != 2 || got[0] != "oil paintings" || got[1] != "paintings" {
		t.Fatalf("unexpected categories: %#v", got)
	}
}

func TestExpandItemCategoriesExpandsVocabularyOverAllCandidates(t *testing.T) {
	vocab := &fakeVocab{merged: map[string][]string{
		"paintings": {"visual works", "objects"},
	}}
	item := &types.Item{Attributes: datatypes.JSONMap{
		"categories": []interface{}{"Oil Paintings"},
	}}
	got := expandItemCategories(context.Background(), item, "categories", true, true, vocab)
	want := []string{"oil paintings", "paintings", "visual works", "objects"}
	if len(got) != len(want) {
		t.Fatalf("unexpected categories: %#v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("category %d: got %q want %q", i, got[i], want[i])
		}
	}
	// The vocabulary pass covers the raw category and every phrase candidate.
	if len(vocab.calls) != 2 || vocab.calls[0] != "oil paintings" || vocab.calls[1] != "paintings" {
		t.Fatalf("unexpected vocab lookups: %#v", vocab.calls)
	}
}

func TestExpandItemCategoriesKeepsDuplicates(t *testing.T) {
	item := &types.Item{Attributes: datatypes.JSONMap{
		"categories": []interface{}{"vases", "Vases"},
	}}
	got := expandItemCategories(context.Background(), item, "categories", true, false, nil)
	if len(got) != 2 || got[0] != "vases" || got[1] != "vases" {
		t.Fatalf("duplicates should be preserved: %#v", got)
	}
}

func TestExpandItemCategoriesMissingField(t *testing.T) {
	item := &types.Item{Attributes: datatypes.JSONMap{}}
	got := expandItemCategories(context.Background(), item, "categories", true, true, &fakeVocab{})
	if len(got) != 0 {
		t.Fatalf("expected no categories, got %#v", got)
	}
}

func TestHasExpansion(t *testing.T) {
	expansions := []string{"NLP", " aat "}
	if !hasExpansion(expansions, ExpansionNLP) || !hasExpansion(expansions, ExpansionAAT) {
		t.Fatalf("expected both expansions enabled")
	}
	if hasExpansion(nil, ExpansionNLP) {
		t.Fatalf("nil expansion list should disable everything")
	}
}
