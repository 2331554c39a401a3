package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"studentpipeline/ai-validator/internal/models"
)

func TestClassifyByKeywords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "marksheet wins on academic vocabulary",
			text: "Semester 5 results. CGPA 8.2. Subject: Data Structures, Grade A.",
			want: DocTypeMarksheet,
		},
		{
			name: "cover letter greeting and closing",
			text: "Dear Sir, I am applying for the internship position. Sincerely, R. Samuel",
			want: DocTypeCoverLetter,
		},
		{
			name: "resume is the default",
			text: "Technical skills include Go, Python and SQL. Projects: three.",
			want: DocTypeResume,
		},
		{
			name: "single marksheet keyword is not enough",
			text: "My percentage attendance was high",
			want: DocTypeResume,
		},
		{
			name: "empty text",
			text: "",
			want: DocTypeResume,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyByKeywords(tt.text))
		})
	}
}

func TestClassifyUsesModelLabel(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"bare label", "MARKSHEET", DocTypeMarksheet},
		{"lowercased label", "coverletter", DocTypeCoverLetter},
		{"label inside a sentence", "This document is a RESUME.", DocTypeResume},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classifier := NewDocumentClassifier(staticOracle(tt.reply))
			got := classifier.Classify(ctx, models.TextInput("anything"))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyFallsBackOnModelFailure(t *testing.T) {
	ctx := context.Background()
	classifier := NewDocumentClassifier(failingOracle(errors.New("model unavailable")))

	got := classifier.Classify(ctx, models.TextInput("Dear Sir, regarding the open position. Sincerely yours."))
	assert.Equal(t, DocTypeCoverLetter, got)
}

func TestClassifyFallsBackOnUnusableReply(t *testing.T) {
	ctx := context.Background()
	classifier := NewDocumentClassifier(staticOracle("I am not sure what this is"))

	got := classifier.Classify(ctx, models.TextInput("marks grade cgpa semester"))
	assert.Equal(t, DocTypeMarksheet, got)
}
