package services

import (
	"fmt"
	"strings"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildClassifierPrompt creates the cheap binary-classification prompt
// used by the content gatekeeper.
func (pb *PromptBuilder) BuildClassifierPrompt(excerpt string) string {
	return fmt.Sprintf(`Analyze the following text and determine if it appears to be from a presentation, pitch deck, or proposal document. Look for indicators like:
- Slide-like structure with titles and bullet points
- Business/startup terminology (problem, solution, market, etc.)
- Presentation flow (introduction, problem statement, solution, etc.)
- Concise, presentation-style language

Text to analyze:
"""%s"""

Respond with only "YES" if it appears to be a presentation/pitch deck, or "NO" if it appears to be a regular document, research paper, or other non-presentation content.`, excerpt)
}

// BuildScoringPrompt creates the rubric-evaluation prompt. The optional
// guidance context comes from the vector store and is injected
// best-effort; an empty string omits the section entirely.
func (pb *PromptBuilder) BuildScoringPrompt(content, guidanceContext string) string {
	guidanceSection := ""
	if strings.TrimSpace(guidanceContext) != "" {
		guidanceSection = fmt.Sprintf("\nSCORING GUIDANCE:\n%s\n", guidanceContext)
	}

	return fmt.Sprintf(`IMPORTANT: You must respond with ONLY valid JSON. Do not include any explanatory text, markdown formatting, or additional commentary.

You are an expert AI evaluator for pitch decks, MSME proposals, and hackathon submissions. Analyze the content and return ONLY the JSON evaluation below.

Evaluation Criteria (score 1-10 each):
- Clarity: Is the idea clearly explained?
- Innovation: How novel is the solution?
- Feasibility: Is it technically implementable?
- Presentation: Is content professional and structured?
- Impact: Expected market/social impact?
- Theme Alignment: Fits competition goals?
%s
Content to evaluate:
"""%s"""

Return ONLY this JSON structure with actual values:
{
    "scores": {
        "clarity": 7,
        "innovation": 8,
        "feasibility": 6,
        "presentation": 7,
        "impact": 8,
        "theme_alignment": 7
    },
    "total_score": 43,
    "grade": "B",
    "feedback_summary": "This submission demonstrates strong innovation and potential impact. The core concept is well-articulated with clear problem identification. However, the feasibility analysis could be strengthened with more technical details and implementation roadmap.",
    "theme": "Technology",
    "keywords": ["innovation", "technology", "solution", "market", "implementation"],
    "project_title": "Innovative Tech Solution for Market Challenge",
    "project_summary": "A technology-driven approach to solving key market challenges through innovative implementation. The solution addresses specific user needs with scalable and practical methodology.",
    "improvement_suggestions": [
        "Provide more detailed technical implementation plan",
        "Include market validation data and user research",
        "Strengthen financial projections and business model"
    ],
    "recommended_resources": [
        "Lean Startup Methodology for validation",
        "Business Model Canvas for strategy"
    ],
    "visual_quality_comment": "Content appears well-structured with clear sections and logical flow",
    "pitch_readiness_score": 7
}`, guidanceSection, content)
}

// FormatGuidanceContext flattens retrieved guideline snippets into the
// prompt section consumed by BuildScoringPrompt.
func FormatGuidanceContext(results []GuidanceResult) string {
	if len(results) == 0 {
		return ""
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Guideline %d (%s, score %.2f) ---\n%s",
			i+1, result.Section, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}
