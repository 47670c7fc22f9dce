package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/models"
)

// PositionRepository exposes persistence helpers for positions.
type PositionRepository interface {
	Create(ctx context.Context, position *models.Position) error
	Update(ctx context.Context, position *models.Position) error
	GetByID(ctx context.Context, id uint) (models.Position, error)
	List(ctx context.Context) ([]models.Position, error)
	Delete(ctx context.Context, id uint) error
}

// NewPositionRepository constructs a position repository.
func NewPositionRepository(db *gorm.DB) PositionRepository {
	return &positionRepository{db: db}
}

type positionRepository struct {
	db *gorm.DB
}

func (r *positionRepository) Create(ctx context.Context, position *models.Position) error {
	return r.db.WithContext(ctx).Create(position).Error
}

func (r *positionRepository) Update(ctx context.Context, position *models.Position) error {
	return r.db.WithContext(ctx).Save(position).Error
}

func (r *positionRepository) GetByID(ctx context.Context, id uint) (models.Position, error) {
	var position models.Position
	if err := r.db.WithContext(ctx).First(&position, id).Error; err != nil {
		return models.Position{}, err
	}
	return position, nil
}

func (r *positionRepository) List(ctx context.Context) ([]models.Position, error) {
	var positions []models.Position
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (r *positionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Position{}, id).Error
}
