package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/models"
)

// CandidateRepository exposes persistence helpers for candidates.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	// UpdateFields patches the named columns only, leaving the resume blob
	// untouched unless it is part of the edit.
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	GetByID(ctx context.Context, id uint) (models.Candidate, error)
	// List returns candidates without their resume blobs; positionID zero
	// means no position filter.
	List(ctx context.Context, positionID uint) ([]models.Candidate, error)
	Delete(ctx context.Context, id uint) error
}

// NewCandidateRepository constructs a candidate repository.
func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

type candidateRepository struct {
	db *gorm.DB
}

func (r *candidateRepository) Create(ctx context.Context, candidate *models.Candidate) error {
	return r.db.WithContext(ctx).Create(candidate).Error
}

func (r *candidateRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *candidateRepository) GetByID(ctx context.Context, id uint) (models.Candidate, error) {
	var candidate models.Candidate
	err := r.db.WithContext(ctx).
		Preload("Position").
		First(&candidate, id).Error
	if err != nil {
		return models.Candidate{}, err
	}
	return candidate, nil
}

func (r *candidateRepository) List(ctx context.Context, positionID uint) ([]models.Candidate, error) {
	query := r.db.WithContext(ctx).
		Preload("Position").
		Omit("resume_content").
		Order("id ASC")
	if positionID != 0 {
		query = query.Where("position_id = ?", positionID)
	}

	var candidates []models.Candidate
	if err := query.Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

func (r *candidateRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Candidate{}, id).Error
}
