package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"studentpipeline/ai-validator/internal/models"
)

// Text extraction shorter than this is treated as a scanned document and
// routed through the multimodal payload fallback instead.
const minMeaningfulChars = 50

type PDFParserService interface {
	ExtractText(filePath string) (string, error)
	ExtractTextWithMetaData(filePath string) (*PDFContent, error)
	BuildDocumentInput(filePath string) (models.DocumentInput, error)
}

type PDFContent struct {
	Text      string
	PageCount int
	FilePath  string
}

type pdfParserService struct{}

func NewPDFParserService() PDFParserService {
	return &pdfParserService{}
}

func (p *pdfParserService) ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages, keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}

	return text, nil
}

func (p *pdfParserService) ExtractTextWithMetaData(filePath string) (*PDFContent, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(fmt.Sprintf("--- Page %d ---\n", pageIndex))
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text content found in PDF")
	}

	return &PDFContent{
		Text:      text,
		PageCount: totalPage,
		FilePath:  filePath,
	}, nil
}

// BuildDocumentInput extracts text from the PDF when enough of it is
// readable; scanned or image-only documents fall back to the raw bytes as
// a multimodal payload so the model can read them directly.
func (p *pdfParserService) BuildDocumentInput(filePath string) (models.DocumentInput, error) {
	text, err := p.ExtractText(filePath)
	if err == nil && countMeaningfulChars(text) >= minMeaningfulChars {
		return models.TextInput(CleanText(text)), nil
	}

	log.Printf("📄 Text extraction insufficient for %s, using payload fallback\n", filePath)

	data, readErr := os.ReadFile(filePath)
	if readErr != nil {
		return models.DocumentInput{}, fmt.Errorf("failed to read PDF for payload fallback: %w", readErr)
	}

	return models.PayloadInput(models.Payload{
		MIMEType: "application/pdf",
		Data:     data,
	}), nil
}

func countMeaningfulChars(text string) int {
	count := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

// CleanText trims each line and drops empty ones, normalizing whatever
// the PDF extractor produced.
func CleanText(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var cleanedLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}
