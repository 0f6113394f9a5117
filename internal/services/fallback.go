package services

import (
	"regexp"
	"strings"

	"pitchlens/submission-evaluator/internal/models"
)

var (
	businessVocab = regexp.MustCompile(`(?i)\b(business|startup|solution|problem|market|customer|revenue|product|service|innovation|technology)\b`)

	presentationVocab = regexp.MustCompile(`(?i)\b(slide|presentation|agenda|overview|conclusion|summary)\b`)

	// Fixed scan list for keyword extraction; matches are kept in
	// order of first appearance, capped at five.
	keywordScan = regexp.MustCompile(`\b(innovation|technology|solution|business|market|customer|product|service|startup|digital|platform|system|application|development|strategy|growth|revenue|impact|sustainable|efficient|scalable)\b`)
)

// FallbackScorer produces a complete evaluation payload from extracted
// text alone, without any external call. It is pure: identical input
// text always yields an identical payload.
type FallbackScorer interface {
	Score(text string) *EvaluationPayload
}

type fallbackScorer struct{}

func NewFallbackScorer() FallbackScorer {
	return &fallbackScorer{}
}

func (f *fallbackScorer) Score(text string) *EvaluationPayload {
	wordCount := len(strings.Fields(text))
	hasBusinessTerms := businessVocab.MatchString(text)
	hasPresentationStructure := presentationVocab.MatchString(text)

	baseScore := 4
	if hasBusinessTerms && hasPresentationStructure {
		baseScore = 6
	}

	lengthBonus := 0
	if wordCount > 200 {
		lengthBonus = 1
	}

	presentationBonus := 0
	if hasPresentationStructure {
		presentationBonus = 1
	}

	scores := models.RubricScores{
		Clarity:        capScore(baseScore + lengthBonus),
		Innovation:     capScore(baseScore),
		Feasibility:    capScore(baseScore),
		Presentation:   capScore(baseScore + presentationBonus),
		Impact:         capScore(baseScore),
		ThemeAlignment: capScore(baseScore),
	}

	totalScore := scores.Sum()

	grade := "C"
	switch {
	case totalScore >= 50:
		grade = "A"
	case totalScore >= 40:
		grade = "B"
	}

	theme := "General"
	if hasBusinessTerms {
		theme = "Business/Technology"
	}

	return &EvaluationPayload{
		Scores:          scores,
		TotalScore:      totalScore,
		Grade:           grade,
		FeedbackSummary: "This submission has been evaluated using our fallback analysis system. The content shows potential but may benefit from clearer structure and more detailed presentation of the business concept.",
		Theme:           theme,
		Keywords:        scanKeywords(text),
		ProjectTitle:    "Business Solution Proposal",
		ProjectSummary:  "A business-focused submission that presents ideas and concepts for evaluation. The content demonstrates effort in addressing key business challenges.",
		ImprovementSuggestions: []string{
			"Enhance the clarity and structure of your presentation",
			"Provide more specific details about implementation and feasibility",
			"Include stronger market analysis and competitive positioning",
		},
		RecommendedResources: []string{
			"Business Model Canvas for strategic planning",
			"Pitch Deck Templates for better presentation structure",
		},
		VisualQualityComment: "Content structure could be improved for better readability and professional presentation",
		PitchReadinessScore:  capScore(baseScore),
	}
}

// scanKeywords keeps the first five unique matches in order of
// appearance, case-folded; a fixed list covers the no-match case.
func scanKeywords(text string) []string {
	matches := keywordScan.FindAllString(strings.ToLower(text), -1)

	seen := map[string]bool{}
	var keywords []string
	for _, match := range matches {
		if seen[match] {
			continue
		}
		seen[match] = true
		keywords = append(keywords, match)
		if len(keywords) == 5 {
			break
		}
	}

	if len(keywords) == 0 {
		return []string{"business", "solution", "innovation"}
	}
	return keywords
}

func capScore(score int) int {
	if score > 10 {
		return 10
	}
	return score
}
