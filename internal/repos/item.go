package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

type ItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, items []*types.Item) ([]*types.Item, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Item, error)
	GetUngrouped(ctx context.Context, tx *gorm.DB) ([]*types.Item, error)
	GetByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.Item, error)
	GetByRoomID(ctx context.Context, tx *gorm.DB, roomID uuid.UUID) ([]*types.Item, error)
	GetByRoomIDs(ctx context.Context, tx *gorm.DB, roomIDs []uuid.UUID) ([]*types.Item, error)
	AssignGroup(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID, groupID *uuid.UUID) error
	AssignRoom(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID, roomID uuid.UUID) error
	SetSequence(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, sequence int) error
	UpdateAttributes(ctx context.Context, tx *gorm.DB, item *types.Item) error
}

type itemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemRepo(db *gorm.DB, baseLog *logger.Logger) ItemRepo {
	return &itemRepo{db: db, log: baseLog.With("repo", "ItemRepo")}
}

func (r *itemRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *itemRepo) Create(ctx context.Context, tx *gorm.DB, items []*types.Item) ([]*types.Item, error) {
	if len(items) == 0 {
		return []*types.Item{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Item, error) {
	var results []*types.Item
	if err := r.conn(tx).WithContext(ctx).
		Order("created_at, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemRepo) GetUngrouped(ctx context.Context, tx *gorm.DB) ([]*types.Item, error) {
	var results []*types.Item
	if err := r.conn(tx).WithContext(ctx).
		Where("group_id IS NULL").
		Order("created_at, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemRepo) GetByGroupID(ctx context.Context, tx *gorm.DB, groupID uuid.UUID) ([]*types.Item, error) {
	var results []*types.Item
	if err := r.conn(tx).WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemRepo) GetByRoomID(ctx context.Context, tx *gorm.DB, roomID uuid.UUID) ([]*types.Item, error) {
	return r.GetByRoomIDs(ctx, tx, []uuid.UUID{roomID})
}

func (r *itemRepo) GetByRoomIDs(ctx context.Context, tx *gorm.DB, roomIDs []uuid.UUID) ([]*types.Item, error) {
	var results []*types.Item
	if len(roomIDs) == 0 {
		return results, nil
	}
	if err := r.conn(tx).WithContext(ctx).
		Where("room_id IN ?", roomIDs).
		Order("created_at, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *itemRepo) AssignGroup(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID, groupID *uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).
		Model(&types.Item{}).
		Where("id IN ?", itemIDs).
		Update("group_id", groupID).Error
}

func (r *itemRepo) AssignRoom(ctx context.Context, tx *gorm.DB, itemIDs []uuid.UUID, roomID uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).
		Model(&types.Item{}).
		Where("id IN ?", itemIDs).
		Update("room_id", roomID).Error
}

func (r *itemRepo) SetSequence(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, sequence int) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Item{}).
		Where("id = ?", itemID).
		Update("sequence", sequence).Error
}

func (r *itemRepo) UpdateAttributes(ctx context.Context, tx *gorm.DB, item *types.Item) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Item{}).
		Where("id = ?", item.ID).
		Update("attributes", item.Attributes).Error
}
