package services

import (
	"context"
	"log"
	"strings"

	"studentpipeline/ai-validator/internal/models"
)

// Document types the classifier can assign.
const (
	DocTypeResume      = "RESUME"
	DocTypeCoverLetter = "COVERLETTER"
	DocTypeMarksheet   = "MARKSHEET"
)

// Shared keyword table for the fallback classifier. One table, used by
// every caller, so keyword drift between flows cannot recur.
var (
	resumeKeywords      = []string{"experience", "skills", "projects", "technical", "programming"}
	coverKeywords       = []string{"dear", "sincerely", "application", "position", "opportunity"}
	marksheetKeywords   = []string{"marks", "grade", "cgpa", "percentage", "semester", "subject"}
	validDocumentTypes  = []string{DocTypeResume, DocTypeCoverLetter, DocTypeMarksheet}
	keywordHitThreshold = 2
)

// DocumentClassifier decides whether a document is a resume, a cover
// letter, or a marksheet.
type DocumentClassifier interface {
	Classify(ctx context.Context, doc models.DocumentInput) string
}

type documentClassifier struct {
	oracle        GeminiService
	promptBuilder *PromptBuilder
}

func NewDocumentClassifier(oracle GeminiService) DocumentClassifier {
	return &documentClassifier{
		oracle:        oracle,
		promptBuilder: NewPromptBuilder(),
	}
}

// Classify implements DocumentClassifier. The model is asked for exactly
// one label; an unusable reply falls back to keyword scoring over the
// source text.
func (c *documentClassifier) Classify(ctx context.Context, doc models.DocumentInput) string {
	prompt := c.promptBuilder.BuildClassificationPrompt(doc.Text)

	var reply string
	var err error
	if doc.HasPayloads() {
		reply, err = c.oracle.GenerateWithPayloads(ctx, prompt, doc.Payloads, 0)
	} else {
		reply, err = c.oracle.GenerateText(ctx, prompt, 0)
	}

	if err != nil {
		log.Printf("⚠️  Classification call failed, using keyword fallback: %v\n", err)
		return ClassifyByKeywords(doc.Text)
	}

	upper := strings.ToUpper(strings.TrimSpace(reply))
	for _, docType := range validDocumentTypes {
		if strings.Contains(upper, docType) {
			return docType
		}
	}

	return ClassifyByKeywords(doc.Text)
}

// ClassifyByKeywords scores the text against the shared keyword table.
// Marksheet wins at two or more hits, then cover letter; resume is the
// default when no signal dominates.
func ClassifyByKeywords(text string) string {
	lowered := strings.ToLower(text)

	score := func(keywords []string) int {
		count := 0
		for _, keyword := range keywords {
			if strings.Contains(lowered, keyword) {
				count++
			}
		}
		return count
	}

	if score(marksheetKeywords) >= keywordHitThreshold {
		return DocTypeMarksheet
	}
	if score(coverKeywords) >= keywordHitThreshold {
		return DocTypeCoverLetter
	}
	return DocTypeResume
}
