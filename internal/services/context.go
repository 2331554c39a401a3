package services

import (
	"context"
	"log"
)

// Guideline document types stored in the vector collection.
const (
	GuidelineResume   = "resume_guidelines"
	GuidelineLOR      = "lor_guidelines"
	GuidelineAcademic = "academic_rules"
)

// GuidelineRetriever fetches programme-guideline snippets relevant to a
// document type for prompt enrichment. Retrieval is strictly best-effort:
// a failure degrades to an empty context block and never blocks
// validation.
type GuidelineRetriever interface {
	RetrieveContext(ctx context.Context, docType string) string
}

type guidelineRetriever struct {
	oracle        GeminiService
	qdrantService QdrantService
	promptBuilder *PromptBuilder
	limit         int
}

func NewGuidelineRetriever(oracle GeminiService, qdrantService QdrantService) GuidelineRetriever {
	return &guidelineRetriever{
		oracle:        oracle,
		qdrantService: qdrantService,
		promptBuilder: NewPromptBuilder(),
		limit:         3,
	}
}

// RetrieveContext implements GuidelineRetriever.
func (g *guidelineRetriever) RetrieveContext(ctx context.Context, docType string) string {
	query := g.promptBuilder.BuildRetrievalQuery(docType)

	embedding, err := g.oracle.GenerateEmbedding(ctx, query)
	if err != nil {
		log.Printf("⚠️  Failed to embed guideline query for %s: %v\n", docType, err)
		return ""
	}

	results, err := g.qdrantService.SearchSimilar(ctx, embedding, docType, g.limit)
	if err != nil {
		log.Printf("⚠️  Guideline search failed for %s: %v\n", docType, err)
		return ""
	}

	return FormatGuidelineContext(results)
}

// noopRetriever satisfies GuidelineRetriever when no vector store is
// configured.
type noopRetriever struct{}

func (noopRetriever) RetrieveContext(context.Context, string) string { return "" }

// NewNoopGuidelineRetriever returns a retriever that always yields an
// empty context block.
func NewNoopGuidelineRetriever() GuidelineRetriever {
	return noopRetriever{}
}
