package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

type FloorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, floors []*types.Floor) ([]*types.Floor, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Floor, error)
	ReplaceSamples(ctx context.Context, tx *gorm.DB, floor *types.Floor, items []*types.Item) error
}

type floorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFloorRepo(db *gorm.DB, baseLog *logger.Logger) FloorRepo {
	return &floorRepo{db: db, log: baseLog.With("repo", "FloorRepo")}
}

func (r *floorRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *floorRepo) Create(ctx context.Context, tx *gorm.DB, floors []*types.Floor) ([]*types.Floor, error) {
	if len(floors) == 0 {
		return []*types.Floor{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&floors).Error; err != nil {
		return nil, err
	}
	return floors, nil
}

func (r *floorRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Floor, error) {
	var results []*types.Floor
	if err := r.conn(tx).WithContext(ctx).
		Order("level").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *floorRepo) ReplaceSamples(ctx context.Context, tx *gorm.DB, floor *types.Floor, items []*types.Item) error {
	return r.conn(tx).WithContext(ctx).
		Model(floor).
		Association("Samples").
		Replace(items)
}
