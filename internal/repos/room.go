package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openmuseum/museum-map-backend/internal/platform/logger"
	"github.com/openmuseum/museum-map-backend/internal/types"
)

type RoomRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rooms []*types.Room) ([]*types.Room, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Room, error)
	GetByFloorID(ctx context.Context, tx *gorm.DB, floorID uuid.UUID) ([]*types.Room, error)
	SetSample(ctx context.Context, tx *gorm.DB, roomID uuid.UUID, itemID uuid.UUID) error
}

type roomRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoomRepo(db *gorm.DB, baseLog *logger.Logger) RoomRepo {
	return &roomRepo{db: db, log: baseLog.With("repo", "RoomRepo")}
}

func (r *roomRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *roomRepo) Create(ctx context.Context, tx *gorm.DB, rooms []*types.Room) ([]*types.Room, error) {
	if len(rooms) == 0 {
		return []*types.Room{}, nil
	}
	if err := r.conn(tx).WithContext(ctx).Create(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Room, error) {
	var results []*types.Room
	if err := r.conn(tx).WithContext(ctx).
		Order("number, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *roomRepo) GetByFloorID(ctx context.Context, tx *gorm.DB, floorID uuid.UUID) ([]*types.Room, error) {
	var results []*types.Room
	if err := r.conn(tx).WithContext(ctx).
		Where("floor_id = ?", floorID).
		Order("number, id").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *roomRepo) SetSample(ctx context.Context, tx *gorm.DB, roomID uuid.UUID, itemID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Room{}).
		Where("id = ?", roomID).
		Update("sample_item_id", itemID).Error
}
