package services

import (
	"context"
	"log"
	"strings"
)

// Verdict is the gatekeeper's advisory classification of extracted text.
type Verdict int

const (
	// VerdictInconclusive covers every gatekeeper failure mode: model
	// errors, timeouts and answers that are not a literal YES/NO. The
	// pipeline treats it exactly like VerdictPresentation.
	VerdictInconclusive Verdict = iota
	VerdictPresentation
	VerdictNotPresentation
)

type Gatekeeper interface {
	Classify(ctx context.Context, text string) Verdict
}

type gatekeeper struct {
	llm       CompletionClient
	prompts   *PromptBuilder
	charLimit int
}

func NewGatekeeper(llm CompletionClient, prompts *PromptBuilder, charLimit int) Gatekeeper {
	if charLimit <= 0 {
		charLimit = 2000
	}
	return &gatekeeper{
		llm:       llm,
		prompts:   prompts,
		charLimit: charLimit,
	}
}

// Classify sends a bounded prefix of the text to the model for a cheap
// binary classification. Gatekeeping must never block evaluation
// through its own failure, so anything but a clean verdict fails open.
func (g *gatekeeper) Classify(ctx context.Context, text string) Verdict {
	prompt := g.prompts.BuildClassifierPrompt(truncateRunes(text, g.charLimit))

	response, err := g.llm.Complete(ctx, prompt, 10, 0.1)
	if err != nil {
		log.Printf("⚠️  Presentation check failed, continuing with evaluation: %v", err)
		return VerdictInconclusive
	}

	switch strings.ToUpper(strings.TrimSpace(response)) {
	case "YES":
		return VerdictPresentation
	case "NO":
		return VerdictNotPresentation
	}

	return VerdictInconclusive
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
