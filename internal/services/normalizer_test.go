package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizerRejectsUnstructuredResponses(t *testing.T) {
	normalizer := NewResponseNormalizer()

	tests := []struct {
		name string
		raw  string
	}{
		{"plain prose", "I'm sorry, I cannot evaluate this document."},
		{"empty string", ""},
		{"braces in wrong order", "} nothing here {"},
		{"invalid json inside braces", `{"scores": not valid json}`},
		{"top level array", `[1, 2, 3]`},
		{"fenced invalid json", "```json\n{broken\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, ok := normalizer.Normalize(tt.raw)
			assert.False(t, ok)
			assert.Nil(t, payload)
		})
	}
}

func TestNormalizerFencedJSONBlock(t *testing.T) {
	normalizer := NewResponseNormalizer()

	raw := "Here is my evaluation:\n```json\n{\"scores\": {\"clarity\": 9}}\n```\nHope this helps!"

	payload, ok := normalizer.Normalize(raw)
	require.True(t, ok)

	assert.Equal(t, 9, payload.Scores.Clarity)
	assert.Equal(t, 5, payload.Scores.Innovation, "absent fields take defaults")
	assert.Equal(t, 5, payload.Scores.Feasibility)
	assert.Equal(t, 5, payload.Scores.Presentation)
	assert.Equal(t, 5, payload.Scores.Impact)
	assert.Equal(t, 5, payload.Scores.ThemeAlignment)
	assert.Equal(t, 30, payload.TotalScore)
	assert.Equal(t, "B", payload.Grade)
	assert.Equal(t, 6, payload.PitchReadinessScore)
	assert.Equal(t, "General", payload.Theme)
}

func TestNormalizerPlainFencedBlock(t *testing.T) {
	normalizer := NewResponseNormalizer()

	raw := "```\n{\"grade\": \"A\", \"theme\": \"FinTech\"}\n```"

	payload, ok := normalizer.Normalize(raw)
	require.True(t, ok)

	assert.Equal(t, "A", payload.Grade)
	assert.Equal(t, "FinTech", payload.Theme)
}

func TestNormalizerBraceSlice(t *testing.T) {
	normalizer := NewResponseNormalizer()

	raw := `Sure! The result is {"total_score": 45, "grade": "A"} as requested.`

	payload, ok := normalizer.Normalize(raw)
	require.True(t, ok)

	assert.Equal(t, 45, payload.TotalScore)
	assert.Equal(t, "A", payload.Grade)
}

func TestNormalizerTotalScorePassthrough(t *testing.T) {
	normalizer := NewResponseNormalizer()

	// total_score is stored verbatim, never recomputed or clamped.
	raw := `{"scores": {"clarity": 3}, "total_score": 99, "grade": "Z"}`

	payload, ok := normalizer.Normalize(raw)
	require.True(t, ok)

	assert.Equal(t, 99, payload.TotalScore)
	assert.Equal(t, "Z", payload.Grade)
	assert.NotEqual(t, payload.Scores.Sum(), payload.TotalScore)
}

func TestNormalizerMalformedFieldsTakeDefaults(t *testing.T) {
	normalizer := NewResponseNormalizer()

	tests := []struct {
		name     string
		raw      string
		validate func(t *testing.T, p *EvaluationPayload)
	}{
		{
			name: "rubric score out of range",
			raw:  `{"scores": {"clarity": 15, "impact": 0, "innovation": 7}}`,
			validate: func(t *testing.T, p *EvaluationPayload) {
				assert.Equal(t, 5, p.Scores.Clarity)
				assert.Equal(t, 5, p.Scores.Impact)
				assert.Equal(t, 7, p.Scores.Innovation)
			},
		},
		{
			name: "rubric score wrong type",
			raw:  `{"scores": {"clarity": "nine", "feasibility": true}}`,
			validate: func(t *testing.T, p *EvaluationPayload) {
				assert.Equal(t, 5, p.Scores.Clarity)
				assert.Equal(t, 5, p.Scores.Feasibility)
			},
		},
		{
			name: "string field wrong type or blank",
			raw:  `{"grade": 7, "theme": "   ", "feedback_summary": null}`,
			validate: func(t *testing.T, p *EvaluationPayload) {
				assert.Equal(t, "B", p.Grade)
				assert.Equal(t, "General", p.Theme)
				assert.Equal(t, "Evaluation completed successfully.", p.FeedbackSummary)
			},
		},
		{
			name: "list field wrong shape",
			raw:  `{"keywords": "fintech", "improvement_suggestions": [1, 2], "recommended_resources": []}`,
			validate: func(t *testing.T, p *EvaluationPayload) {
				assert.Equal(t, []string{"innovation", "technology", "solution"}, p.Keywords)
				assert.Len(t, p.ImprovementSuggestions, 3)
				assert.Len(t, p.RecommendedResources, 2)
			},
		},
		{
			name: "list with mixed items keeps string items",
			raw:  `{"keywords": ["fintech", 3, "payments", ""]}`,
			validate: func(t *testing.T, p *EvaluationPayload) {
				assert.Equal(t, []string{"fintech", "payments"}, p.Keywords)
			},
		},
		{
			name: "pitch readiness out of range",
			raw:  `{"pitch_readiness_score": 12}`,
			validate: func(t *testing.T, p *EvaluationPayload) {
				assert.Equal(t, 6, p.PitchReadinessScore)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, ok := normalizer.Normalize(tt.raw)
			require.True(t, ok)
			tt.validate(t, payload)
		})
	}
}

func TestNormalizerPayloadAlwaysComplete(t *testing.T) {
	normalizer := NewResponseNormalizer()

	// Once a brace-delimited object parses, every field is populated.
	payload, ok := normalizer.Normalize(`{}`)
	require.True(t, ok)

	for _, score := range []int{
		payload.Scores.Clarity,
		payload.Scores.Innovation,
		payload.Scores.Feasibility,
		payload.Scores.Presentation,
		payload.Scores.Impact,
		payload.Scores.ThemeAlignment,
		payload.PitchReadinessScore,
	} {
		assert.GreaterOrEqual(t, score, 1)
		assert.LessOrEqual(t, score, 10)
	}

	assert.NotEmpty(t, payload.Grade)
	assert.NotEmpty(t, payload.FeedbackSummary)
	assert.NotEmpty(t, payload.ProjectTitle)
	assert.NotEmpty(t, payload.ProjectSummary)
	assert.NotEmpty(t, payload.VisualQualityComment)
	assert.NotEmpty(t, payload.Keywords)
	assert.NotEmpty(t, payload.ImprovementSuggestions)
	assert.NotEmpty(t, payload.RecommendedResources)
}
