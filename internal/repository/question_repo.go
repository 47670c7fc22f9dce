package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/models"
)

// AnswerCounts summarises answering progress for one interview.
type AnswerCounts struct {
	Total    int64
	Answered int64
}

// Complete reports whether every question has been answered.
func (c AnswerCounts) Complete() bool {
	return c.Total > 0 && c.Total == c.Answered
}

// QuestionRepository exposes persistence helpers for interview questions.
type QuestionRepository interface {
	// CreateBatchAndAdvance persists the generated questions, sets
	// question_count and advances the interview status in one transaction.
	// The conditional status update acts as the claim: it returns false
	// without writing anything when another worker got there first.
	CreateBatchAndAdvance(ctx context.Context, interviewID uint, questions []models.InterviewQuestion) (bool, error)
	GetByID(ctx context.Context, id uint) (models.InterviewQuestion, error)
	// GetForGrading loads the question joined through interview and
	// candidate to the position, as the grading prompt needs the position name.
	GetForGrading(ctx context.Context, id uint) (models.InterviewQuestion, error)
	ListByInterview(ctx context.Context, interviewID uint) ([]models.InterviewQuestion, error)
	// NextAfter returns the question with the smallest id strictly greater
	// than currentID; currentID 0 means the first question overall.
	NextAfter(ctx context.Context, interviewID uint, currentID uint) (models.InterviewQuestion, error)
	Counts(ctx context.Context, interviewID uint) (AnswerCounts, error)
	// SaveAnswer records the transcript, audio and answered timestamp, scoped
	// to the owning interview. Returns false when the question does not
	// belong to that interview.
	SaveAnswer(ctx context.Context, questionID, interviewID uint, transcript string, audio []byte, answeredAt time.Time) (bool, error)
	SaveGrade(ctx context.Context, questionID uint, score int, evaluation string, failed bool) error
}

// NewQuestionRepository constructs a question repository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

type questionRepository struct {
	db *gorm.DB
}

func (r *questionRepository) CreateBatchAndAdvance(ctx context.Context, interviewID uint, questions []models.InterviewQuestion) (bool, error) {
	claimed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Interview{}).
			Where("id = ? AND status = ?", interviewID, models.InterviewStatusCreated).
			Updates(map[string]interface{}{
				"status":         models.InterviewStatusQuestionsReady,
				"question_count": len(questions),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		for i := range questions {
			questions[i].InterviewID = interviewID
		}
		if err := tx.Create(&questions).Error; err != nil {
			return err
		}

		claimed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return claimed, nil
}

func (r *questionRepository) GetByID(ctx context.Context, id uint) (models.InterviewQuestion, error) {
	var question models.InterviewQuestion
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return models.InterviewQuestion{}, err
	}
	return question, nil
}

func (r *questionRepository) GetForGrading(ctx context.Context, id uint) (models.InterviewQuestion, error) {
	var question models.InterviewQuestion
	err := r.db.WithContext(ctx).
		Preload("Interview").
		Preload("Interview.Candidate").
		Preload("Interview.Candidate.Position").
		First(&question, id).Error
	if err != nil {
		return models.InterviewQuestion{}, err
	}
	return question, nil
}

func (r *questionRepository) ListByInterview(ctx context.Context, interviewID uint) ([]models.InterviewQuestion, error) {
	var questions []models.InterviewQuestion
	err := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID).
		Order("id ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) NextAfter(ctx context.Context, interviewID uint, currentID uint) (models.InterviewQuestion, error) {
	query := r.db.WithContext(ctx).
		Where("interview_id = ?", interviewID)
	if currentID > 0 {
		query = query.Where("id > ?", currentID)
	}

	var question models.InterviewQuestion
	if err := query.Order("id ASC").First(&question).Error; err != nil {
		return models.InterviewQuestion{}, err
	}
	return question, nil
}

func (r *questionRepository) Counts(ctx context.Context, interviewID uint) (AnswerCounts, error) {
	var counts AnswerCounts
	base := r.db.WithContext(ctx).
		Model(&models.InterviewQuestion{}).
		Where("interview_id = ?", interviewID)

	if err := base.Session(&gorm.Session{}).Count(&counts.Total).Error; err != nil {
		return AnswerCounts{}, err
	}
	if err := base.Session(&gorm.Session{}).Where("answered_at IS NOT NULL").Count(&counts.Answered).Error; err != nil {
		return AnswerCounts{}, err
	}
	return counts, nil
}

func (r *questionRepository) SaveAnswer(ctx context.Context, questionID, interviewID uint, transcript string, audio []byte, answeredAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.InterviewQuestion{}).
		Where("id = ? AND interview_id = ?", questionID, interviewID).
		Updates(map[string]interface{}{
			"answer_text":  transcript,
			"answer_audio": audio,
			"answered_at":  answeredAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *questionRepository) SaveGrade(ctx context.Context, questionID uint, score int, evaluation string, failed bool) error {
	return r.db.WithContext(ctx).
		Model(&models.InterviewQuestion{}).
		Where("id = ?", questionID).
		Updates(map[string]interface{}{
			"ai_score":      score,
			"ai_evaluation": evaluation,
			"grade_failed":  failed,
		}).Error
}
