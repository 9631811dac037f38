package steps

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/jinzhu/inflection"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/pkg/grouptree"
	"github.com/openmuseum/museum-map-backend/internal/pkg/phrase"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

// Vocab resolves a term to its broader-term hierarchies, nearest ancestor
// first. Lookup failures surface as an empty result.
type Vocab interface {
	Hierarchies(ctx context.Context, term string) [][]string
}

// defaultSkipValues are group values that produce nonsense parents when run
// through the combined heuristic.
var defaultSkipValues = []string{"styles and periods"}

type AddParentsDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Items  repos.ItemRepo
	Groups repos.GroupRepo
	Vocab  Vocab
}

type AddParentsInput struct {
	// SkipValues overrides defaultSkipValues when non-nil.
	SkipValues []string
}

type AddParentsOutput struct {
	Attached int
	Created  int
}

// AddParents gives every root group a broader parent where one can be found.
// Vocabulary hierarchies are tried first, walking the ancestor chain nearest
// first and creating missing parents along the way. Roots without vocabulary
// coverage fall back to phrase candidates matched against existing groups,
// then to a combined heuristic ranking groups found in the candidates'
// hierarchies by depth and size. Every attach passes the cycle guard; a
// rejected attach is logged and skipped.
func AddParents(ctx context.Context, deps AddParentsDeps, in AddParentsInput) (AddParentsOutput, error) {
	skipValues := in.SkipValues
	if skipValues == nil {
		skipValues = defaultSkipValues
	}
	skip := map[string]bool{}
	for _, v := range skipValues {
		skip[v] = true
	}

	groups, err := deps.Groups.GetAll(ctx, deps.DB)
	if err != nil {
		return AddParentsOutput{}, err
	}
	items, err := deps.Items.GetAll(ctx, deps.DB)
	if err != nil {
		return AddParentsOutput{}, err
	}
	st := &parentState{
		deps:    deps,
		tree:    buildTree(groups, items),
		byValue: map[string]*types.Group{},
	}
	byID := map[uuid.UUID]*types.Group{}
	for _, g := range groups {
		byID[g.ID] = g
		if _, ok := st.byValue[g.Value]; !ok {
			st.byValue[g.Value] = g
		}
	}

	rootRows, err := deps.Groups.GetRoots(ctx, deps.DB)
	if err != nil {
		return AddParentsOutput{}, err
	}
	// Resolve to the snapshot instances so attaches stay visible through
	// byValue lookups later in the walk.
	var roots []*types.Group
	for _, row := range rootRows {
		if g, ok := byID[row.ID]; ok {
			roots = append(roots, g)
		}
	}
	for _, root := range roots {
		handled, err := st.attachViaVocab(ctx, root)
		if err != nil {
			return st.out, err
		}
		if handled {
			continue
		}
		attached, err := st.attachViaPhrase(ctx, root)
		if err != nil {
			return st.out, err
		}
		if attached || skip[root.Value] {
			continue
		}
		if err := st.attachViaCombined(ctx, root); err != nil {
			return st.out, err
		}
	}
	deps.Log.Info("added parent groups", "attached", st.out.Attached, "created", st.out.Created)
	return st.out, nil
}

type parentState struct {
	deps    AddParentsDeps
	tree    *grouptree.Tree
	byValue map[string]*types.Group
	out     AddParentsOutput
}

// attachViaVocab walks the group up its vocabulary ancestor chain. The walk
// stops at the first ancestor that already has a parent of its own. Returns
// true when the group has vocabulary coverage at all, whether or not an
// attach happened, so the fallbacks only run for uncovered groups.
func (st *parentState) attachViaVocab(ctx context.Context, g *types.Group) (bool, error) {
	hierarchies := st.deps.Vocab.Hierarchies(ctx, g.Value)
	if len(hierarchies) == 0 {
		return false, nil
	}
	for _, hierarchy := range hierarchies {
		mapped := false
		current := g
		for _, term := range hierarchy {
			parent, err := st.ensureGroup(ctx, term)
			if err != nil {
				return true, err
			}
			if err := st.attach(ctx, current, parent); err != nil {
				return true, err
			}
			mapped = true
			current = parent
			if current.ParentID != nil {
				break
			}
		}
		if mapped {
			return true, nil
		}
	}
	return true, nil
}

// attachViaPhrase matches phrase candidates against existing group values,
// singular or plural.
func (st *parentState) attachViaPhrase(ctx context.Context, g *types.Group) (bool, error) {
	for _, candidate := range phrase.Extract(g.Value) {
		parent := st.byValue[candidate]
		if parent == nil {
			parent = st.byValue[inflection.Plural(candidate)]
		}
		if parent == nil || parent.ID == g.ID {
			continue
		}
		if err := st.attach(ctx, g, parent); err != nil {
			return false, err
		}
		return g.ParentID != nil, nil
	}
	return false, nil
}

// attachViaCombined looks up each phrase candidate's hierarchies and ranks
// every existing group found in them, deepest and largest first. Hierarchies
// containing the group's own value are skipped; they would invert the tree.
func (st *parentState) attachViaCombined(ctx context.Context, g *types.Group) error {
	type candidate struct {
		group *types.Group
		depth int
		size  int
	}
	for _, term := range phrase.Extract(g.Value) {
		var candidates []candidate
		seen := map[string]bool{}
		for _, hierarchy := range st.deps.Vocab.Hierarchies(ctx, term) {
			if containsValue(hierarchy, g.Value) {
				continue
			}
			for _, value := range hierarchy {
				pg := st.byValue[value]
				if pg == nil || pg.ID == g.ID || seen[pg.Value] {
					continue
				}
				seen[pg.Value] = true
				candidates = append(candidates, candidate{
					group: pg,
					depth: st.tree.Depth(pg.ID),
					size:  len(st.tree.Node(pg.ID).Items),
				})
			}
		}
		if len(candidates) == 0 {
			continue
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].depth != candidates[j].depth {
				return candidates[i].depth > candidates[j].depth
			}
			if candidates[i].size != candidates[j].size {
				return candidates[i].size > candidates[j].size
			}
			return candidates[i].group.Value < candidates[j].group.Value
		})
		return st.attach(ctx, g, candidates[0].group)
	}
	return nil
}

func (st *parentState) ensureGroup(ctx context.Context, value string) (*types.Group, error) {
	if g, ok := st.byValue[value]; ok {
		return g, nil
	}
	g := &types.Group{Value: value, Label: capitalize(value), Split: types.SplitParent}
	if _, err := st.deps.Groups.Create(ctx, st.deps.DB, []*types.Group{g}); err != nil {
		return nil, err
	}
	st.byValue[value] = g
	st.tree.Add(&grouptree.Node{ID: g.ID, Value: g.Value, Label: g.Label, Split: g.Split})
	st.out.Created++
	return g, nil
}

// attach re-parents child under parent, in the tree first so a cycle is
// caught before anything is persisted. A rejected attach is not an error.
func (st *parentState) attach(ctx context.Context, child, parent *types.Group) error {
	if child.ParentID != nil && *child.ParentID == parent.ID {
		return nil
	}
	if err := st.tree.Attach(child.ID, &parent.ID); err != nil {
		st.deps.Log.Warn("rejected parent attach", "child", child.Value, "parent", parent.Value, "error", err)
		return nil
	}
	if err := st.deps.Groups.SetParent(ctx, st.deps.DB, child.ID, &parent.ID); err != nil {
		return err
	}
	child.ParentID = &parent.ID
	st.out.Attached++
	return nil
}

func containsValue(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
