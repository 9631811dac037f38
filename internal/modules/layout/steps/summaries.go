package steps

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/pkg/phrase"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

// topicShare caps the floor topic list: topics are emitted largest first
// until they cover this share of the floor's items.
const topicShare = 0.66666

// sampleStride picks roughly this many sample items per floor.
const sampleStride = 15

type GenerateSummariesDeps struct {
	DB     *gorm.DB
	Log    *logger.Logger
	Items  repos.ItemRepo
	Groups repos.GroupRepo
	Rooms  repos.RoomRepo
	Floors repos.FloorRepo
	Topics repos.FloorTopicRepo
}

type GenerateSummariesInput struct{}

type GenerateSummariesOutput struct {
	Rooms  int
	Topics int
}

// GenerateSummaries refreshes the presentation metadata: a sample item per
// room, and per floor the dominant topics plus a spread of sample items.
// Existing floor topics are dropped first so the step can rerun after a
// layout change.
func GenerateSummaries(ctx context.Context, deps GenerateSummariesDeps, _ GenerateSummariesInput) (GenerateSummariesOutput, error) {
	out := GenerateSummariesOutput{}
	if err := deps.Topics.DeleteAll(ctx, deps.DB); err != nil {
		return out, err
	}
	rooms, err := deps.Rooms.GetAll(ctx, deps.DB)
	if err != nil {
		return out, err
	}
	for _, room := range rooms {
		items, err := deps.Items.GetByRoomID(ctx, deps.DB, room.ID)
		if err != nil {
			return out, err
		}
		if len(items) == 0 {
			continue
		}
		// The middle item of the ordered room, a stable representative.
		sample := items[len(items)/2]
		if err := deps.Rooms.SetSample(ctx, deps.DB, room.ID, sample.ID); err != nil {
			return out, err
		}
		out.Rooms++
	}
	groups, err := deps.Groups.GetAll(ctx, deps.DB)
	if err != nil {
		return out, err
	}
	items, err := deps.Items.GetAll(ctx, deps.DB)
	if err != nil {
		return out, err
	}
	floors, err := deps.Floors.GetAll(ctx, deps.DB)
	if err != nil {
		return out, err
	}
	for _, floor := range floors {
		topics, err := summariseFloor(ctx, deps, floor, groups, items)
		if err != nil {
			return out, err
		}
		out.Topics += topics
	}
	deps.Log.Info("generated summaries", "rooms", out.Rooms, "topics", out.Topics)
	return out, nil
}

func summariseFloor(ctx context.Context, deps GenerateSummariesDeps, floor *types.Floor, groups []*types.Group, items []*types.Item) (int, error) {
	rooms, err := deps.Rooms.GetByFloorID(ctx, deps.DB, floor.ID)
	if err != nil {
		return 0, err
	}
	if len(rooms) == 0 {
		return 0, nil
	}
	byID := map[uuid.UUID]*types.Group{}
	for _, g := range groups {
		byID[g.ID] = g
	}
	itemCounts := map[uuid.UUID]int{}
	for _, item := range items {
		if item.GroupID != nil {
			itemCounts[*item.GroupID]++
		}
	}

	sizes := map[uuid.UUID]int{}
	labels := map[uuid.UUID]string{}
	for _, room := range rooms {
		g := byID[room.GroupID]
		if g == nil {
			continue
		}
		size := itemCounts[g.ID]
		topic := climbToTopic(g, byID)
		sizes[topic.ID] += size
		labels[topic.ID] = topic.Label
	}
	type topicSize struct {
		id    uuid.UUID
		size  int
		label string
	}
	ranked := make([]topicSize, 0, len(sizes))
	total := 0
	for id, size := range sizes {
		ranked = append(ranked, topicSize{id: id, size: size, label: labels[id]})
		total += size
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].size != ranked[j].size {
			return ranked[i].size > ranked[j].size
		}
		return ranked[i].label < ranked[j].label
	})
	created := 0
	subTotal := 0
	for _, ts := range ranked {
		subTotal += ts.size
		topic := &types.FloorTopic{
			GroupID: ts.id,
			FloorID: floor.ID,
			Label:   phrase.Pluralize(ts.label),
			Size:    ts.size,
		}
		if _, err := deps.Topics.Create(ctx, deps.DB, []*types.FloorTopic{topic}); err != nil {
			return created, err
		}
		created++
		if float64(subTotal)/float64(total) > topicShare {
			break
		}
	}

	roomIDs := make([]uuid.UUID, len(rooms))
	for i, room := range rooms {
		roomIDs[i] = room.ID
	}
	floorItems, err := deps.Items.GetByRoomIDs(ctx, deps.DB, roomIDs)
	if err != nil {
		return created, err
	}
	stride := len(floorItems) / sampleStride
	if stride < 1 {
		stride = 1
	}
	var samples []*types.Item
	for i := 0; i < len(floorItems); i += stride {
		samples = append(samples, floorItems[i])
	}
	if err := deps.Floors.ReplaceSamples(ctx, deps.DB, floor, samples); err != nil {
		return created, err
	}
	return created, nil
}

// climbToTopic walks past the split groups produced by size normalization up
// to the nearest topical ancestor.
func climbToTopic(g *types.Group, byID map[uuid.UUID]*types.Group) *types.Group {
	for isSplitKind(g.Split) && g.ParentID != nil {
		parent := byID[*g.ParentID]
		if parent == nil {
			break
		}
		g = parent
	}
	return g
}

func isSplitKind(split string) bool {
	switch split {
	case types.SplitTime, types.SplitSimilar, types.SplitAttribute, types.SplitInner:
		return true
	}
	return false
}
