package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

type FloorTopicRepo interface {
	Create(ctx context.Context, tx *gorm.DB, topics []*types.FloorTopic) ([]*types.FloorTopic, error)
	DeleteAll(ctx context.Context, tx *gorm.DB) error
}

type floorTopicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFloorTopicRepo(db *gorm.DB, baseLog *logger.Logger) FloorTopicRepo {
	return &floorTopicRepo{db: db, log: baseLog.With("repo", "FloorTopicRepo")}
}

func (r *floorTopicRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *floorTopicRepo) Create(ctx context.Context, tx *gorm.DB, topics []*types.FloorTopic) ([]*types.FloorTopic, error) {
	if len(topics) == 0 {
		return []*types.FloorTopic{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&topics).Error; err != nil {
		return nil, err
	}
	return topics, nil
}

func (r *floorTopicRepo) DeleteAll(ctx context.Context, tx *gorm.DB) error {
	return r.conn(tx).WithContext(ctx).
		Where("1 = 1").
		Delete(&types.FloorTopic{}).Error
}
