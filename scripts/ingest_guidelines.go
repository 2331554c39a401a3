package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"studentpipeline/ai-validator/internal/config"
	"studentpipeline/ai-validator/internal/services"
)

func main() {
	log.Println("🚀 Starting guideline ingestion...")

	// Load configuration
	cfg := config.Load()

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Worker.RetryInitialDelay)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()

	ctx := context.Background()

	guidelines := []struct {
		Path    string
		DocType string
		Name    string
	}{
		{
			Path:    "./reference_docs/resume_guidelines.pdf",
			DocType: services.GuidelineResume,
			Name:    "Resume and Cover Letter Guidelines",
		},
		{
			Path:    "./reference_docs/lor_guidelines.pdf",
			DocType: services.GuidelineLOR,
			Name:    "Letter of Recommendation Guidelines",
		},
		{
			Path:    "./reference_docs/academic_rules.pdf",
			DocType: services.GuidelineAcademic,
			Name:    "Academic Eligibility Rules",
		},
	}

	successCount := 0
	failCount := 0

	for _, guideline := range guidelines {
		log.Printf("\n📄 Processing: %s", guideline.Name)
		log.Printf("   Path: %s", guideline.Path)
		log.Printf("   Type: %s", guideline.DocType)

		if _, err := os.Stat(guideline.Path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		log.Printf("   📖 Extracting text...")
		content, err := pdfParser.ExtractTextWithMetaData(guideline.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))

		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(content.Text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		log.Printf("   🔄 Embedding and storing chunks...")
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			guidelineID := fmt.Sprintf("%s_chunk_%d", guideline.DocType, i)

			err = qdrantService.UpsertGuideline(ctx, guidelineID, guideline.DocType, chunk, embedding)
			if err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		log.Printf("   ✅ Successfully ingested %s", guideline.Name)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d guideline documents", successCount)
	log.Printf("   ❌ Failed: %d guideline documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some guideline documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All guideline documents ingested successfully!")
}
