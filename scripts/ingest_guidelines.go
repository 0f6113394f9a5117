package main

import (
	"context"
	"log"
	"os"
	"strings"

	"pitchlens/submission-evaluator/internal/config"
	"pitchlens/submission-evaluator/internal/services"
)

// Seeds the guidance collection with scoring guidelines for each rubric
// criterion. Run once against a fresh Qdrant instance:
//
//	go run scripts/ingest_guidelines.go
func main() {
	log.Println("🚀 Starting guideline ingestion...")

	// Load configuration
	cfg := config.Load()

	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL is not set")
	}

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Pipeline.RequestTimeout)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	guidanceStore, err := services.NewGuidanceStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := guidanceStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	ctx := context.Background()

	guidelines := []struct {
		Section string
		Text    string
	}{
		{
			Section: "clarity",
			Text:    "Clarity measures how easily a reader can follow the submission. High scores (8-10) demand a clear problem statement, a logical narrative from problem to solution, and plain language. Mid scores (5-7) have an understandable story with gaps or jargon. Low scores (1-4) lack structure or never state what is being proposed.",
		},
		{
			Section: "innovation",
			Text:    "Innovation rewards a novel approach or a fresh combination of existing ideas. High scores require a differentiator competitors lack. Incremental improvements on known solutions sit in the middle of the range. Restating an existing product without any twist scores low.",
		},
		{
			Section: "feasibility",
			Text:    "Feasibility asks whether the team could plausibly build and operate what they describe. Look for a concrete implementation plan, realistic resource assumptions, and awareness of the main technical or market risks. Hand-waving over hard parts caps the score at 5.",
		},
		{
			Section: "presentation",
			Text:    "Presentation quality covers the deck itself: slide structure, one idea per slide, supporting visuals or data, and a clear closing ask. Dense walls of text, missing sections, or an absent conclusion pull the score down regardless of content quality.",
		},
		{
			Section: "impact",
			Text:    "Impact measures the size of the problem and the plausibility of the claimed outcome. High scores quantify the affected audience and the improvement delivered. Vague claims of 'changing the world' without numbers score in the lower half.",
		},
		{
			Section: "theme_alignment",
			Text:    "Theme alignment checks that the submission addresses the stated challenge area rather than a generic pitch. Full marks require the theme to shape the core solution, not appear only in the title slide.",
		},
		{
			Section: "pitch_readiness",
			Text:    "Pitch readiness is a holistic judgement of whether this deck could be presented to investors or judges tomorrow. It synthesizes the rubric: a deck strong everywhere but missing an ask or a team slide is an 8, a rough draft is a 4 or below.",
		},
	}

	successCount := 0
	failCount := 0

	for _, g := range guidelines {
		log.Printf("📄 Ingesting guideline: %s", g.Section)

		embedding, err := geminiService.GenerateEmbedding(ctx, g.Text)
		if err != nil {
			log.Printf("   ❌ Failed to generate embedding: %v", err)
			failCount++
			continue
		}

		if err := guidanceStore.UpsertGuideline(ctx, g.Section, g.Text, embedding); err != nil {
			log.Printf("   ❌ Failed to store guideline: %v", err)
			failCount++
			continue
		}

		successCount++
	}

	// Summary
	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d guidelines", successCount)
	log.Printf("   ❌ Failed: %d guidelines", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some guidelines failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All guidelines ingested successfully!")
}
