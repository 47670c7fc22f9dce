package repository

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/voxhire/voxhire-api/internal/database"
	"github.com/voxhire/voxhire-api/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.ConnectSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	err = db.AutoMigrate(&models.Position{}, &models.Candidate{}, &models.Interview{}, &models.InterviewQuestion{})
	require.NoError(t, err)
	return db
}

// seedInterview creates a position, candidate and interview in the given
// status and returns the interview.
func seedInterview(t *testing.T, db *gorm.DB, status int) models.Interview {
	t.Helper()

	position := models.Position{Name: "Backend Engineer", Requirements: "Go, SQL", Quantity: 1, Status: models.PositionStatusOpen}
	require.NoError(t, db.Create(&position).Error)

	candidate := models.Candidate{PositionID: position.ID, Name: "Ada Lovelace", Email: "ada@example.com"}
	require.NoError(t, db.Create(&candidate).Error)

	interview := models.Interview{
		CandidateID: candidate.ID,
		Interviewer: "Grace Hopper",
		Status:      status,
		Token:       "token-" + t.Name(),
	}
	require.NoError(t, db.Create(&interview).Error)
	return interview
}
