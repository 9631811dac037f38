package steps

import (
	"context"
	"testing"

	"github.com/openmuseum/museum-map-backend/internal/types"
)

func parentsDeps(store *memStore, vocab Vocab, t *testing.T) AddParentsDeps {
	return AddParentsDeps{
		Log:    testLogger(t),
		Items:  &memItemRepo{store: store},
		Groups: &memGroupRepo{store: store},
		Vocab:  vocab,
	}
}

func groupByValue(store *memStore, value string) *types.Group {
	for _, g := range store.groups {
		if g.Value == value {
			return g
		}
	}
	return nil
}

func TestAddParentsFromVocabularyChain(t *testing.T) {
	store := &memStore{}
	store.groups = append(store.groups, &types.Group{ID: newID(), Value: "vases", Label: "Vases", Split: types.SplitBasic})
	vocab := &fakeHierarchies{hierarchies: map[string][][]string{
		"vases": {{"containers", "objects"}},
	}}
	out, err := AddParents(context.Background(), parentsDeps(store, vocab, t), AddParentsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Created != 2 || out.Attached != 2 {
		t.Fatalf("created %d attached %d, want 2 and 2", out.Created, out.Attached)
	}
	vases := groupByValue(store, "vases")
	containers := groupByValue(store, "containers")
	objects := groupByValue(store, "objects")
	if containers == nil || objects == nil {
		t.Fatalf("ancestor groups missing: %+v", store.groups)
	}
	if containers.Split != types.SplitParent || containers.Label != "Containers" {
		t.Fatalf("unexpected parent group: %+v", containers)
	}
	if vases.ParentID == nil || *vases.ParentID != containers.ID {
		t.Fatalf("vases not attached to containers")
	}
	if containers.ParentID == nil || *containers.ParentID != objects.ID {
		t.Fatalf("containers not attached to objects")
	}
	if objects.ParentID != nil {
		t.Fatalf("chain top should stay a root")
	}
}

func TestAddParentsStopsAtParentedAncestor(t *testing.T) {
	store := &memStore{}
	top := &types.Group{ID: newID(), Value: "objects", Label: "Objects", Split: types.SplitParent}
	mid := &types.Group{ID: newID(), Value: "containers", Label: "Containers", Split: types.SplitParent, ParentID: &top.ID}
	store.groups = append(store.groups, top, mid,
		&types.Group{ID: newID(), Value: "vases", Label: "Vases", Split: types.SplitBasic})
	vocab := &fakeHierarchies{hierarchies: map[string][][]string{
		"vases": {{"containers", "objects", "things"}},
	}}
	out, err := AddParents(context.Background(), parentsDeps(store, vocab, t), AddParentsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// containers already has a parent, so the walk stops there and the
	// "things" group is never created.
	if groupByValue(store, "things") != nil {
		t.Fatalf("walk should stop at an already parented ancestor")
	}
	if out.Created != 0 || out.Attached != 1 {
		t.Fatalf("created %d attached %d, want 0 and 1", out.Created, out.Attached)
	}
}

func TestAddParentsPhraseFallback(t *testing.T) {
	store := &memStore{}
	parent := &types.Group{ID: newID(), Value: "vases", Label: "Vases", Split: types.SplitBasic}
	child := &types.Group{ID: newID(), Value: "big vases", Label: "Big vases", Split: types.SplitBasic}
	store.groups = append(store.groups, parent, child)
	vocab := &fakeHierarchies{hierarchies: map[string][][]string{}}
	_, err := AddParents(context.Background(), parentsDeps(store, vocab, t), AddParentsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Fatalf("phrase fallback should attach big vases under vases")
	}
}

func TestAddParentsPhraseFallbackMatchesPlural(t *testing.T) {
	store := &memStore{}
	parent := &types.Group{ID: newID(), Value: "vases", Label: "Vases", Split: types.SplitBasic}
	child := &types.Group{ID: newID(), Value: "ming vase", Label: "Ming vase", Split: types.SplitBasic}
	store.groups = append(store.groups, parent, child)
	vocab := &fakeHierarchies{hierarchies: map[string][][]string{}}
	_, err := AddParents(context.Background(), parentsDeps(store, vocab, t), AddParentsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != parent.ID {
		t.Fatalf("phrase fallback should match the pluralized value")
	}
}

func TestAddParentsCombinedHeuristicPrefersDeepLargeGroups(t *testing.T) {
	store := &memStore{}
	shallow := &types.Group{ID: newID(), Value: "objects", Label: "Objects", Split: types.SplitParent}
	deepTop := &types.Group{ID: newID(), Value: "works", Label: "Works", Split: types.SplitParent}
	deep := &types.Group{ID: newID(), Value: "ceramics", Label: "Ceramics", Split: types.SplitParent, ParentID: &deepTop.ID}
	child := &types.Group{ID: newID(), Value: "funerary urns", Label: "Funerary urns", Split: types.SplitBasic}
	store.groups = append(store.groups, shallow, deepTop, deep, child)
	vocab := &fakeHierarchies{hierarchies: map[string][][]string{
		"urns": {{"ceramics"}, {"objects"}},
	}}
	_, err := AddParents(context.Background(), parentsDeps(store, vocab, t), AddParentsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if child.ParentID == nil || *child.ParentID != deep.ID {
		t.Fatalf("combined heuristic should pick the deeper group, got %+v", child.ParentID)
	}
}

func TestAddParentsSkipValue(t *testing.T) {
	store := &memStore{}
	g := &types.Group{ID: newID(), Value: "styles and periods", Label: "Styles and periods", Split: types.SplitBasic}
	other := &types.Group{ID: newID(), Value: "eras", Label: "Eras", Split: types.SplitBasic}
	store.groups = append(store.groups, g, other)
	vocab := &fakeHierarchies{hierarchies: map[string][][]string{
		"styles": {{"eras"}},
	}}
	_, err := AddParents(context.Background(), parentsDeps(store, vocab, t), AddParentsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.ParentID != nil {
		t.Fatalf("skip-listed value should not go through the combined heuristic")
	}
}

func TestAddParentsRejectsCycles(t *testing.T) {
	store := &memStore{}
	g := &types.Group{ID: newID(), Value: "vases", Label: "Vases", Split: types.SplitBasic}
	store.groups = append(store.groups, g)
	vocab := &fakeHierarchies{hierarchies: map[string][][]string{
		"vases": {{"vases"}},
	}}
	out, err := AddParents(context.Background(), parentsDeps(store, vocab, t), AddParentsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Attached != 0 || g.ParentID != nil {
		t.Fatalf("self attach must be rejected")
	}
}
