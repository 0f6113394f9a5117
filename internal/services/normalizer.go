package services

import (
	"strings"

	"github.com/tidwall/gjson"

	"pitchlens/submission-evaluator/internal/models"
)

// EvaluationPayload is the fully populated result of one scoring pass,
// whether it came from the model (after normalization) or from the
// deterministic fallback scorer.
type EvaluationPayload struct {
	Scores                 models.RubricScores `json:"scores"`
	TotalScore             int                 `json:"total_score"`
	Grade                  string              `json:"grade"`
	FeedbackSummary        string              `json:"feedback_summary"`
	Theme                  string              `json:"theme"`
	Keywords               []string            `json:"keywords"`
	ProjectTitle           string              `json:"project_title"`
	ProjectSummary         string              `json:"project_summary"`
	ImprovementSuggestions []string            `json:"improvement_suggestions"`
	RecommendedResources   []string            `json:"recommended_resources"`
	VisualQualityComment   string              `json:"visual_quality_comment"`
	PitchReadinessScore    int                 `json:"pitch_readiness_score"`
}

// Defaults substituted for absent or malformed fields. The payload is
// never rejected for missing narrative fields; normalization is total
// once a brace-delimited structure parses.
const (
	defaultRubricScore    = 5
	defaultTotalScore     = 30
	defaultPitchReadiness = 6
	defaultGrade          = "B"
	defaultFeedback       = "Evaluation completed successfully."
	defaultTheme          = "General"
	defaultTitle          = "Innovative Solution"
	defaultSummary        = "A comprehensive solution addressing key challenges."
	defaultVisualComment  = "Content appears well-structured."
)

var (
	defaultKeywords = []string{"innovation", "technology", "solution"}

	defaultSuggestions = []string{
		"Enhance clarity in presentation",
		"Provide more detailed implementation plan",
		"Include market analysis and validation",
	}

	defaultResources = []string{
		"Business Model Canvas",
		"Lean Startup Methodology",
	}
)

// ResponseNormalizer turns a raw model completion into a complete
// EvaluationPayload, or reports that no parseable structure exists and
// the fallback scorer must run instead.
type ResponseNormalizer interface {
	Normalize(raw string) (*EvaluationPayload, bool)
}

type responseNormalizer struct{}

func NewResponseNormalizer() ResponseNormalizer {
	return &responseNormalizer{}
}

func (n *responseNormalizer) Normalize(raw string) (*EvaluationPayload, bool) {
	candidate, ok := extractCandidate(raw)
	if !ok {
		return nil, false
	}

	if !gjson.Valid(candidate) {
		return nil, false
	}

	root := gjson.Parse(candidate)
	if !root.IsObject() {
		return nil, false
	}

	payload := &EvaluationPayload{
		Scores: models.RubricScores{
			Clarity:        boundedIntField(root, "scores.clarity", defaultRubricScore),
			Innovation:     boundedIntField(root, "scores.innovation", defaultRubricScore),
			Feasibility:    boundedIntField(root, "scores.feasibility", defaultRubricScore),
			Presentation:   boundedIntField(root, "scores.presentation", defaultRubricScore),
			Impact:         boundedIntField(root, "scores.impact", defaultRubricScore),
			ThemeAlignment: boundedIntField(root, "scores.theme_alignment", defaultRubricScore),
		},
		// total_score and grade are taken verbatim from the model when
		// present; they are never recomputed from the rubric fields.
		TotalScore:             intField(root, "total_score", defaultTotalScore),
		Grade:                  stringField(root, "grade", defaultGrade),
		FeedbackSummary:        stringField(root, "feedback_summary", defaultFeedback),
		Theme:                  stringField(root, "theme", defaultTheme),
		Keywords:               listField(root, "keywords", defaultKeywords),
		ProjectTitle:           stringField(root, "project_title", defaultTitle),
		ProjectSummary:         stringField(root, "project_summary", defaultSummary),
		ImprovementSuggestions: listField(root, "improvement_suggestions", defaultSuggestions),
		RecommendedResources:   listField(root, "recommended_resources", defaultResources),
		VisualQualityComment:   stringField(root, "visual_quality_comment", defaultVisualComment),
		PitchReadinessScore:    boundedIntField(root, "pitch_readiness_score", defaultPitchReadiness),
	}

	return payload, true
}

// extractCandidate locates the structured slice of a completion, first
// matching fenced code block wins, then a brace-delimited slice.
func extractCandidate(raw string) (string, bool) {
	var candidate string

	switch {
	case strings.Contains(raw, "```json"):
		after := strings.SplitN(raw, "```json", 2)[1]
		candidate = strings.SplitN(after, "```", 2)[0]
	case strings.Contains(raw, "```"):
		parts := strings.SplitN(raw, "```", 3)
		candidate = parts[1]
	case strings.Contains(raw, "{") && strings.Contains(raw, "}"):
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if end < start {
			return "", false
		}
		candidate = raw[start : end+1]
	default:
		return "", false
	}

	candidate = strings.TrimSpace(candidate)

	// Strip any leading non-{ and trailing non-} noise
	start := strings.IndexByte(candidate, '{')
	if start < 0 {
		return "", false
	}
	candidate = candidate[start:]

	end := strings.LastIndexByte(candidate, '}')
	if end < 0 {
		return "", false
	}
	candidate = candidate[:end+1]

	return candidate, true
}

// boundedIntField reads a score expected in [1,10]; anything absent, of
// the wrong shape, or out of range becomes the default.
func boundedIntField(root gjson.Result, path string, def int) int {
	v := root.Get(path)
	if v.Type != gjson.Number {
		return def
	}
	n := int(v.Int())
	if n < 1 || n > 10 {
		return def
	}
	return n
}

func intField(root gjson.Result, path string, def int) int {
	v := root.Get(path)
	if v.Type != gjson.Number {
		return def
	}
	return int(v.Int())
}

func stringField(root gjson.Result, path, def string) string {
	v := root.Get(path)
	if v.Type != gjson.String || strings.TrimSpace(v.String()) == "" {
		return def
	}
	return v.String()
}

func listField(root gjson.Result, path string, def []string) []string {
	v := root.Get(path)
	if !v.IsArray() {
		return append([]string(nil), def...)
	}

	var out []string
	for _, item := range v.Array() {
		if item.Type == gjson.String && strings.TrimSpace(item.String()) != "" {
			out = append(out, item.String())
		}
	}

	if len(out) == 0 {
		return append([]string(nil), def...)
	}
	return out
}
