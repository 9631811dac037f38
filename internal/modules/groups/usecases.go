package groups

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/modules/groups/steps"
	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/repos"
)

type UsecasesDeps struct {
	DB  *gorm.DB
	Log *logger.Logger

	Items  repos.ItemRepo
	Groups repos.GroupRepo
	Vocab  steps.Vocab
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases { return Usecases{deps: deps} }

type (
	GenerateInput  = steps.GenerateInput
	GenerateOutput = steps.GenerateOutput

	MergeSingularPluralInput  = steps.MergeSingularPluralInput
	MergeSingularPluralOutput = steps.MergeSingularPluralOutput

	AddParentsInput  = steps.AddParentsInput
	AddParentsOutput = steps.AddParentsOutput

	PruneSingleInput  = steps.PruneSingleInput
	PruneSingleOutput = steps.PruneSingleOutput

	MoveInnerItemsInput  = steps.MoveInnerItemsInput
	MoveInnerItemsOutput = steps.MoveInnerItemsOutput

	SplitLargeInput  = steps.SplitLargeInput
	SplitLargeOutput = steps.SplitLargeOutput

	SplitBounds = steps.SplitBounds
)

// PipelineInput carries the tunable knobs of the full grouping sequence.
// Zero fields keep the step defaults.
type PipelineInput struct {
	YearField string
	Threshold int
	Bounds    SplitBounds
}

func (u Usecases) Generate(ctx context.Context, in GenerateInput) (GenerateOutput, error) {
	return steps.Generate(ctx, steps.GenerateDeps{
		DB:     u.deps.DB,
		Log:    u.deps.Log,
		Items:  u.deps.Items,
		Groups: u.deps.Groups,
	}, in)
}

func (u Usecases) MergeSingularPlural(ctx context.Context, in MergeSingularPluralInput) (MergeSingularPluralOutput, error) {
	return steps.MergeSingularPlural(ctx, steps.MergeSingularPluralDeps{
		DB:     u.deps.DB,
		Log:    u.deps.Log,
		Items:  u.deps.Items,
		Groups: u.deps.Groups,
	}, in)
}

func (u Usecases) AddParents(ctx context.Context, in AddParentsInput) (AddParentsOutput, error) {
	return steps.AddParents(ctx, steps.AddParentsDeps{
		DB:     u.deps.DB,
		Log:    u.deps.Log,
		Items:  u.deps.Items,
		Groups: u.deps.Groups,
		Vocab:  u.deps.Vocab,
	}, in)
}

func (u Usecases) PruneSingle(ctx context.Context, in PruneSingleInput) (PruneSingleOutput, error) {
	return steps.PruneSingle(ctx, steps.PruneSingleDeps{
		DB:     u.deps.DB,
		Log:    u.deps.Log,
		Items:  u.deps.Items,
		Groups: u.deps.Groups,
	}, in)
}

func (u Usecases) MoveInnerItems(ctx context.Context, in MoveInnerItemsInput) (MoveInnerItemsOutput, error) {
	return steps.MoveInnerItems(ctx, steps.MoveInnerItemsDeps{
		DB:     u.deps.DB,
		Log:    u.deps.Log,
		Items:  u.deps.Items,
		Groups: u.deps.Groups,
	}, in)
}

func (u Usecases) SplitLarge(ctx context.Context, in SplitLargeInput) (SplitLargeOutput, error) {
	return steps.SplitLarge(ctx, steps.SplitLargeDeps{
		DB:     u.deps.DB,
		Log:    u.deps.Log,
		Items:  u.deps.Items,
		Groups: u.deps.Groups,
	}, in)
}

// Pipeline runs the full grouping sequence in the order the stages depend on
// each other: basic groups first, then value cleanup, hierarchy building and
// finally size normalization.
func (u Usecases) Pipeline(ctx context.Context, in PipelineInput) error {
	if _, err := u.Generate(ctx, GenerateInput{Threshold: in.Threshold}); err != nil {
		return err
	}
	if _, err := u.MergeSingularPlural(ctx, MergeSingularPluralInput{}); err != nil {
		return err
	}
	if _, err := u.AddParents(ctx, AddParentsInput{}); err != nil {
		return err
	}
	if _, err := u.PruneSingle(ctx, PruneSingleInput{}); err != nil {
		return err
	}
	if _, err := u.MoveInnerItems(ctx, MoveInnerItemsInput{}); err != nil {
		return err
	}
	if _, err := u.SplitLarge(ctx, SplitLargeInput{YearField: in.YearField, Bounds: in.Bounds}); err != nil {
		return err
	}
	return nil
}
