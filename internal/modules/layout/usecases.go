package layout

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/modules/layout/steps"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
)

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Items  repos.ItemRepo
	Groups repos.GroupRepo
	Rooms  repos.RoomRepo
	Floors repos.FloorRepo
	Topics repos.FloorTopicRepo
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

type (
	RoomSlot     = steps.RoomSlot
	RoomPosition = steps.RoomPosition

	GenerateStructureInput  = steps.GenerateStructureInput
	GenerateStructureOutput = steps.GenerateStructureOutput

	GenerateSummariesInput  = steps.GenerateSummariesInput
	GenerateSummariesOutput = steps.GenerateSummariesOutput

	OrderItemsInput  = steps.OrderItemsInput
	OrderItemsOutput = steps.OrderItemsOutput
)

// LoadSlots reads the floorplan template from a YAML config file.
func LoadSlots(path string) ([]RoomSlot, error) { return steps.LoadSlots(path) }

func (u Usecases) GenerateStructure(ctx context.Context, in GenerateStructureInput) (GenerateStructureOutput, error) {
	return steps.GenerateStructure(ctx, steps.GenerateStructureDeps{
		DB:     u.deps.DB,
		Log:    u.deps.Log,
		Items:  u.deps.Items,
		Groups: u.deps.Groups,
		Rooms:  u.deps.Rooms,
		Floors: u.deps.Floors,
	}, in)
}

func (u Usecases) GenerateSummaries(ctx context.Context, in GenerateSummariesInput) (GenerateSummariesOutput, error) {
	return steps.GenerateSummaries(ctx, steps.GenerateSummariesDeps{
		DB:     u.deps.DB,
		Log:    u.deps.Log,
		Items:  u.deps.Items,
		Groups: u.deps.Groups,
		Rooms:  u.deps.Rooms,
		Floors: u.deps.Floors,
		Topics: u.deps.Topics,
	}, in)
}

func (u Usecases) OrderItems(ctx context.Context, in OrderItemsInput) (OrderItemsOutput, error) {
	return steps.OrderItems(ctx, steps.OrderItemsDeps{
		DB:    u.deps.DB,
		Log:   u.deps.Log,
		Items: u.deps.Items,
		Rooms: u.deps.Rooms,
	}, in)
}

// Pipeline runs structure, summaries and ordering in sequence.
func (u Usecases) Pipeline(ctx context.Context, slots []RoomSlot) error {
	if _, err := u.GenerateStructure(ctx, GenerateStructureInput{Slots: slots}); err != nil {
		return err
	}
	if _, err := u.GenerateSummaries(ctx, GenerateSummariesInput{}); err != nil {
		return err
	}
	if _, err := u.OrderItems(ctx, OrderItemsInput{}); err != nil {
		return err
	}
	return nil
}
