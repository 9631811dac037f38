package steps

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/pkg/vecmath"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
)

type OrderItemsDeps struct {
	DB    *gorm.DB
	Log   *logger.Logger
	Items repos.ItemRepo
	Rooms repos.RoomRepo
}

type OrderItemsInput struct{}

type OrderItemsOutput struct {
	Rooms int
}

// OrderItems sequences each room's items in a dispersal traversal over their
// topic vectors, so a visitor walking the room in sequence order sees the
// variety early instead of clusters of lookalikes.
func OrderItems(ctx context.Context, deps OrderItemsDeps, _ OrderItemsInput) (OrderItemsOutput, error) {
	out := OrderItemsOutput{}
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
		vectors := make([][]float32, len(items))
		for i, item := range items {
			vectors[i] = item.TopicVector()
		}
		for sequence, idx := range vecmath.DispersalOrder(vectors) {
			if err := deps.Items.SetSequence(ctx, deps.DB, items[idx].ID, sequence); err != nil {
				return out, err
			}
		}
		out.Rooms++
	}
	deps.Log.Info("ordered room items", "rooms", out.Rooms)
	return out, nil
}
