package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RubricScores holds the six fixed evaluation criteria, each in [1,10].
type RubricScores struct {
	Clarity        int `json:"clarity"`
	Innovation     int `json:"innovation"`
	Feasibility    int `json:"feasibility"`
	Presentation   int `json:"presentation"`
	Impact         int `json:"impact"`
	ThemeAlignment int `json:"theme_alignment"`
}

func (s RubricScores) Sum() int {
	return s.Clarity + s.Innovation + s.Feasibility + s.Presentation + s.Impact + s.ThemeAlignment
}

type ExtractionStats struct {
	WordCount int `json:"word_count"`
	CharCount int `json:"char_count"`
	LineCount int `json:"line_count"`
}

// Evaluation is the durable record produced once per successful pipeline
// run. It is scoped to the session owner that created it and is never
// mutated after creation.
type Evaluation struct {
	ID                     uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID                uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Filename               string          `gorm:"type:text" json:"filename"`
	OriginalName           string          `gorm:"type:text" json:"original_name"`
	ExtractedText          string          `gorm:"type:text" json:"extracted_text,omitempty"`
	ExtractionStats        ExtractionStats `gorm:"serializer:json" json:"extraction_stats"`
	Scores                 RubricScores    `gorm:"serializer:json" json:"scores"`
	TotalScore             int             `json:"total_score"`
	Grade                  string          `gorm:"type:varchar(4)" json:"grade"`
	FeedbackSummary        string          `gorm:"type:text" json:"feedback_summary"`
	Theme                  string          `gorm:"type:text" json:"theme"`
	Keywords               []string        `gorm:"serializer:json" json:"keywords"`
	ProjectTitle           string          `gorm:"type:text" json:"project_title"`
	ProjectSummary         string          `gorm:"type:text" json:"project_summary"`
	ImprovementSuggestions []string        `gorm:"serializer:json" json:"improvement_suggestions"`
	RecommendedResources   []string        `gorm:"serializer:json" json:"recommended_resources"`
	VisualQualityComment   string          `gorm:"type:text" json:"visual_quality_comment"`
	PitchReadinessScore    int             `json:"pitch_readiness_score"`
	CreatedAt              time.Time       `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Evaluation) TableName() string {
	return "evaluations"
}

func (e *Evaluation) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
