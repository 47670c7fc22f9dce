package repository

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/models"
)

// InterviewRepository exposes persistence helpers for interviews.
//
// AdvanceStatus and SaveReport are conditional updates: the status predicate
// doubles as the claim that at most one worker instance acts on an interview
// per cycle, so overlapping worker runs cannot both process the same record.
type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	// UpdateFields patches the named columns only. Admin edits go through
	// here so they can never write a stale status over a worker's claim.
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	GetByID(ctx context.Context, id uint) (models.Interview, error)
	GetByToken(ctx context.Context, token string) (models.Interview, error)
	List(ctx context.Context) ([]models.Interview, error)
	ListByStatus(ctx context.Context, status int) ([]models.Interview, error)
	AdvanceStatus(ctx context.Context, id uint, from, to int) (bool, error)
	SetVoiceReading(ctx context.Context, token string, enabled bool) (bool, error)
	SaveReport(ctx context.Context, id uint, report models.ReportArtifact, from, to int) (bool, error)
	Delete(ctx context.Context, id uint) error
}

// NewInterviewRepository constructs an interview repository.
func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

type interviewRepository struct {
	db *gorm.DB
}

func (r *interviewRepository) Create(ctx context.Context, interview *models.Interview) error {
	return r.db.WithContext(ctx).Create(interview).Error
}

func (r *interviewRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *interviewRepository) GetByID(ctx context.Context, id uint) (models.Interview, error) {
	var interview models.Interview
	err := r.db.WithContext(ctx).
		Preload("Candidate").
		Preload("Candidate.Position").
		First(&interview, id).Error
	if err != nil {
		return models.Interview{}, err
	}
	return interview, nil
}

func (r *interviewRepository) GetByToken(ctx context.Context, token string) (models.Interview, error) {
	var interview models.Interview
	err := r.db.WithContext(ctx).
		Preload("Candidate").
		Preload("Candidate.Position").
		Where("token = ?", token).
		First(&interview).Error
	if err != nil {
		return models.Interview{}, err
	}
	return interview, nil
}

func (r *interviewRepository) List(ctx context.Context) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.WithContext(ctx).
		Omit("report_content").
		Order("id ASC").
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	return interviews, nil
}

func (r *interviewRepository) ListByStatus(ctx context.Context, status int) ([]models.Interview, error) {
	var interviews []models.Interview
	err := r.db.WithContext(ctx).
		Preload("Candidate").
		Preload("Candidate.Position").
		Where("status = ?", status).
		Order("id ASC").
		Find(&interviews).Error
	if err != nil {
		return nil, err
	}
	return interviews, nil
}

func (r *interviewRepository) AdvanceStatus(ctx context.Context, id uint, from, to int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *interviewRepository) SetVoiceReading(ctx context.Context, token string, enabled bool) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("token = ?", token).
		Update("voice_reading", enabled)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *interviewRepository) SaveReport(ctx context.Context, id uint, report models.ReportArtifact, from, to int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Interview{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"report_content":    report.Content,
			"report_path":       report.Path,
			"report_evaluation": datatypes.JSONMap(report.Evaluation),
			"report_degraded":   report.Degraded,
			"status":            to,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *interviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("interview_id = ?", id).Delete(&models.InterviewQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Interview{}, id).Error
	})
}
