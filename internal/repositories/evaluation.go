package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"pitchlens/submission-evaluator/internal/models"
)

// ErrNotFound covers both a missing record and an ownership mismatch.
// Cross-owner reads deliberately look identical to missing ids so the
// store never leaks record existence to other sessions.
var ErrNotFound = errors.New("evaluation not found")

type EvaluationRepository interface {
	Create(eval *models.Evaluation) error
	FindByIDForOwner(id, ownerID uuid.UUID) (*models.Evaluation, error)
	ListByOwner(ownerID uuid.UUID, limit int) ([]models.Evaluation, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) Create(eval *models.Evaluation) error {
	if err := r.db.Create(eval).Error; err != nil {
		return fmt.Errorf("failed to create evaluation: %w", err)
	}
	return nil
}

func (r *evaluationRepository) FindByIDForOwner(id, ownerID uuid.UUID) (*models.Evaluation, error) {
	var eval models.Evaluation
	err := r.db.
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&eval).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find evaluation: %w", err)
	}
	return &eval, nil
}

// ListByOwner returns the owner's evaluations newest first. The large
// extracted_text column is omitted from list views.
func (r *evaluationRepository) ListByOwner(ownerID uuid.UUID, limit int) ([]models.Evaluation, error) {
	var evals []models.Evaluation
	err := r.db.
		Omit("extracted_text").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Find(&evals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list evaluations: %w", err)
	}
	return evals, nil
}
