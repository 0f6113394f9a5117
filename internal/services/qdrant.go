package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

// GuidanceStore holds embedded rubric-guidance snippets used to enrich
// the scoring prompt. Everything here is best-effort infrastructure:
// the pipeline works with an empty store.
type GuidanceStore interface {
	InitCollection() error
	UpsertGuideline(ctx context.Context, section string, text string, embedding []float32) error
	SearchGuidance(ctx context.Context, queryEmbedding []float32, limit int) ([]GuidanceResult, error)
}

type GuidanceResult struct {
	Score   float32
	Section string
	Text    string
}

type guidanceStore struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewGuidanceStore(urlStr, apiKey, collectionName string) (GuidanceStore, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &guidanceStore{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements GuidanceStore.
func (g *guidanceStore) InitCollection() error {
	ctx := context.Background()

	exists, err := g.client.CollectionExists(ctx, g.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Guidance collection already exists")
		return nil
	}

	err = g.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: g.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     g.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", g.collectionName)
	return nil
}

// UpsertGuideline implements GuidanceStore.
func (g *guidanceStore) UpsertGuideline(ctx context.Context, section string, text string, embedding []float32) error {
	pointID := uuid.New()

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(pointID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"section": section,
			"text":    text,
		}),
	}

	_, err := g.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: g.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert guideline: %w", err)
	}

	return nil
}

// SearchGuidance implements GuidanceStore.
func (g *guidanceStore) SearchGuidance(ctx context.Context, queryEmbedding []float32, limit int) ([]GuidanceResult, error) {
	searchResult, err := g.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: g.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search guidance: %w", err)
	}

	var results []GuidanceResult
	for _, point := range searchResult {
		payload := point.Payload

		result := GuidanceResult{
			Score: point.Score,
		}

		if section, ok := payload["section"]; ok {
			if val, ok := section.GetKind().(*qdrant.Value_StringValue); ok {
				result.Section = val.StringValue
			}
		}

		if text, ok := payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				result.Text = val.StringValue
			}
		}

		results = append(results, result)
	}

	return results, nil
}
