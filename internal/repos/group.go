package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

type GroupRepo interface {
	Create(ctx context.Context, tx *gorm.DB, groups []*types.Group) ([]*types.Group, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Group, error)
	GetByValue(ctx context.Context, tx *gorm.DB, value string) (*types.Group, error)
	GetRoots(ctx context.Context, tx *gorm.DB) ([]*types.Group, error)
	SetParent(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, parentID *uuid.UUID) error
	Delete(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error
}

type groupRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGroupRepo(db *gorm.DB, baseLog *logger.Logger) GroupRepo {
	return &groupRepo{db: db, log: baseLog.With("repo", "GroupRepo")}
}

func (r *groupRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *groupRepo) Create(ctx context.Context, tx *gorm.DB, groups []*types.Group) ([]*types.Group, error) {
	if len(groups) == 0 {
		return []*types.Group{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

// GetAll returns every group in a stable order so that snapshot traversals
// are reproducible across runs.
func (r *groupRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Group, error) {
	var results []*types.Group
	if err := r.conn(tx).WithContext(ctx).
		Order("created_at, value, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *groupRepo) GetByValue(ctx context.Context, tx *gorm.DB, value string) (*types.Group, error) {
	var result types.Group
	err := r.conn(tx).WithContext(ctx).
		Where("value = ?", value).
		Order("created_at, id").
		First(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (r *groupRepo) GetRoots(ctx context.Context, tx *gorm.DB) ([]*types.Group, error) {
	var results []*types.Group
	if err := r.conn(tx).WithContext(ctx).
		Where("parent_id IS NULL").
		Order("created_at, value, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *groupRepo) SetParent(ctx context.Context, tx *gorm.DB, groupID uuid.UUID, parentID *uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Group{}).
		Where("id = ?", groupID).
		Update("parent_id", parentID).Error
}

func (r *groupRepo) Delete(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", groupID).
		Delete(&types.Group{}).Error
}
