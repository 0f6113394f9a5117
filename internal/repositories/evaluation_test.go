package repositories

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"pitchlens/submission-evaluator/internal/models"
)

func newTestRepo(t *testing.T) EvaluationRepository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Evaluation{}))

	return NewEvaluationRepository(db)
}

func newEvaluation(ownerID uuid.UUID, createdAt time.Time) *models.Evaluation {
	return &models.Evaluation{
		OwnerID:       ownerID,
		Filename:      "submission_abc.pdf",
		OriginalName:  "pitch.pdf",
		ExtractedText: "extracted slide text",
		Scores: models.RubricScores{
			Clarity: 7, Innovation: 6, Feasibility: 6,
			Presentation: 7, Impact: 6, ThemeAlignment: 6,
		},
		TotalScore:             38,
		Grade:                  "C",
		FeedbackSummary:        "solid draft",
		Theme:                  "FinTech",
		Keywords:               []string{"payments", "platform"},
		ProjectTitle:           "Instant Settlement",
		ProjectSummary:         "A faster settlement rail.",
		ImprovementSuggestions: []string{"add a team slide"},
		RecommendedResources:   []string{"Pitch Deck Templates"},
		VisualQualityComment:   "clean layout",
		PitchReadinessScore:    6,
		CreatedAt:              createdAt,
	}
}

func TestCreateAssignsID(t *testing.T) {
	repo := newTestRepo(t)
	owner := uuid.New()

	eval := newEvaluation(owner, time.Now())
	require.NoError(t, repo.Create(eval))

	assert.NotEqual(t, uuid.Nil, eval.ID)
}

func TestFindByIDForOwner(t *testing.T) {
	repo := newTestRepo(t)
	owner := uuid.New()
	stranger := uuid.New()

	eval := newEvaluation(owner, time.Now())
	require.NoError(t, repo.Create(eval))

	t.Run("owner sees own record", func(t *testing.T) {
		found, err := repo.FindByIDForOwner(eval.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, eval.ID, found.ID)
		assert.Equal(t, "extracted slide text", found.ExtractedText)
		assert.Equal(t, []string{"payments", "platform"}, found.Keywords)
		assert.Equal(t, 7, found.Scores.Clarity)
	})

	t.Run("cross-owner read looks like missing id", func(t *testing.T) {
		found, err := repo.FindByIDForOwner(eval.ID, stranger)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, found)
	})

	t.Run("unknown id", func(t *testing.T) {
		found, err := repo.FindByIDForOwner(uuid.New(), owner)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Nil(t, found)
	})
}

func TestListByOwner(t *testing.T) {
	repo := newTestRepo(t)
	owner := uuid.New()
	other := uuid.New()

	base := time.Now().Add(-time.Hour)
	oldest := newEvaluation(owner, base)
	middle := newEvaluation(owner, base.Add(10*time.Minute))
	newest := newEvaluation(owner, base.Add(20*time.Minute))
	foreign := newEvaluation(other, base.Add(30*time.Minute))

	for _, eval := range []*models.Evaluation{oldest, middle, newest, foreign} {
		require.NoError(t, repo.Create(eval))
	}

	t.Run("newest first, own records only", func(t *testing.T) {
		evals, err := repo.ListByOwner(owner, 50)
		require.NoError(t, err)
		require.Len(t, evals, 3)

		assert.Equal(t, newest.ID, evals[0].ID)
		assert.Equal(t, middle.ID, evals[1].ID)
		assert.Equal(t, oldest.ID, evals[2].ID)
	})

	t.Run("extracted text omitted from list views", func(t *testing.T) {
		evals, err := repo.ListByOwner(owner, 50)
		require.NoError(t, err)

		for _, eval := range evals {
			assert.Empty(t, eval.ExtractedText)
			assert.NotEmpty(t, eval.Grade, "other columns still load")
		}
	})

	t.Run("limit applies", func(t *testing.T) {
		evals, err := repo.ListByOwner(owner, 2)
		require.NoError(t, err)
		require.Len(t, evals, 2)
		assert.Equal(t, newest.ID, evals[0].ID)
	})

	t.Run("empty history", func(t *testing.T) {
		evals, err := repo.ListByOwner(uuid.New(), 50)
		require.NoError(t, err)
		assert.Empty(t, evals)
	})
}
