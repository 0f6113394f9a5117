package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"pitchlens/submission-evaluator/internal/models"
	"pitchlens/submission-evaluator/internal/repositories"
)

// EvaluationRequest is one pipeline invocation: the raw document bytes,
// the declared format, file metadata, and the opaque caller identity
// every store access is scoped to. The owner id is always threaded
// explicitly; nothing in the pipeline reads ambient session state.
type EvaluationRequest struct {
	Data         []byte
	Format       DocumentFormat
	Filename     string
	OriginalName string
	OwnerID      uuid.UUID
}

type EvaluatorService interface {
	Evaluate(ctx context.Context, req EvaluationRequest) (*models.Evaluation, error)
}

type evaluatorService struct {
	evalRepo   repositories.EvaluationRepository
	extractor  TextExtractor
	gatekeeper Gatekeeper
	llm        CompletionClient
	embedder   EmbeddingClient
	guidance   GuidanceStore
	normalizer ResponseNormalizer
	fallback   FallbackScorer
	prompts    *PromptBuilder
	charLimit  int
}

func NewEvaluatorService(
	evalRepo repositories.EvaluationRepository,
	extractor TextExtractor,
	gatekeeper Gatekeeper,
	llm CompletionClient,
	embedder EmbeddingClient,
	guidance GuidanceStore,
	normalizer ResponseNormalizer,
	fallback FallbackScorer,
	charLimit int,
) EvaluatorService {
	if charLimit <= 0 {
		charLimit = 3000
	}
	return &evaluatorService{
		evalRepo:   evalRepo,
		extractor:  extractor,
		gatekeeper: gatekeeper,
		llm:        llm,
		embedder:   embedder,
		guidance:   guidance,
		normalizer: normalizer,
		fallback:   fallback,
		prompts:    NewPromptBuilder(),
		charLimit:  charLimit,
	}
}

// Evaluate runs one sequential pipeline pass: extract, gatekeep, score,
// normalize or fall back, persist. Model-side failures never fail the
// request; they degrade to the deterministic fallback evaluation.
func (e *evaluatorService) Evaluate(ctx context.Context, req EvaluationRequest) (*models.Evaluation, error) {
	doc, err := e.extractor.Extract(req.Data, req.Format)
	if err != nil {
		return nil, err
	}

	if e.gatekeeper.Classify(ctx, doc.Text) == VerdictNotPresentation {
		return nil, ErrInvalidContentType
	}

	payload := e.score(ctx, doc.Text)

	record := &models.Evaluation{
		ID:              uuid.New(),
		OwnerID:         req.OwnerID,
		Filename:        req.Filename,
		OriginalName:    req.OriginalName,
		ExtractedText:   doc.Text,
		ExtractionStats: doc.Stats,
		Scores:          payload.Scores,
		// Stored verbatim from the payload; the sum invariant is not
		// re-enforced against model-reported numbers here.
		TotalScore:             payload.TotalScore,
		Grade:                  payload.Grade,
		FeedbackSummary:        payload.FeedbackSummary,
		Theme:                  payload.Theme,
		Keywords:               payload.Keywords,
		ProjectTitle:           payload.ProjectTitle,
		ProjectSummary:         payload.ProjectSummary,
		ImprovementSuggestions: payload.ImprovementSuggestions,
		RecommendedResources:   payload.RecommendedResources,
		VisualQualityComment:   payload.VisualQualityComment,
		PitchReadinessScore:    payload.PitchReadinessScore,
		CreatedAt:              time.Now(),
	}

	if err := e.evalRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to save evaluation: %w", err)
	}

	return record, nil
}

// score invokes the model once and normalizes its output; any failure
// along the way yields the fallback evaluation instead.
func (e *evaluatorService) score(ctx context.Context, text string) *EvaluationPayload {
	prompt := e.prompts.BuildScoringPrompt(truncateRunes(text, e.charLimit), e.retrieveGuidance(ctx, text))

	raw, err := e.llm.Complete(ctx, prompt, 1500, 0.3)
	if err != nil {
		log.Printf("⚠️  Scoring model call failed, using fallback evaluation: %v", err)
		return e.fallback.Score(text)
	}

	payload, ok := e.normalizer.Normalize(raw)
	if !ok {
		log.Println("⚠️  No parseable structure in model response, using fallback evaluation")
		return e.fallback.Score(text)
	}

	return payload
}

// retrieveGuidance fetches rubric guidance for the scoring prompt.
// Strictly best-effort: any failure yields empty context.
func (e *evaluatorService) retrieveGuidance(ctx context.Context, text string) string {
	if e.embedder == nil || e.guidance == nil {
		return ""
	}

	embedding, err := e.embedder.GenerateEmbedding(ctx, truncateRunes(text, e.charLimit))
	if err != nil {
		log.Printf("⚠️  Failed to embed submission for guidance retrieval: %v", err)
		return ""
	}

	results, err := e.guidance.SearchGuidance(ctx, embedding, 3)
	if err != nil {
		log.Printf("⚠️  Failed to retrieve scoring guidance: %v", err)
		return ""
	}

	return FormatGuidanceContext(results)
}
