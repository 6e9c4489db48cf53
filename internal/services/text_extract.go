package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/yungbote/hivemind-backend/internal/platform/gcp"
	"github.com/yungbote/hivemind-backend/internal/platform/openai"
)

const (
	OCRProviderOpenAI    = "openai"
	OCRProviderGCPVision = "gcp_vision"
	OCRProviderMock      = "mock"
)

// TextExtractor turns an uploaded note image into markdown text.
type TextExtractor interface {
	ExtractText(ctx context.Context, filename, mimeType string, data []byte) (string, error)
	Provider() string
}

// ImageTextGenerator is the multimodal half of openai.Client.
type ImageTextGenerator interface {
	GenerateTextWithImages(ctx context.Context, system string, user string, images []openai.ImageInput) (string, error)
}

type openAIExtractor struct {
	client  ImageTextGenerator
	prompts *Prompts
}

func NewOpenAIExtractor(client ImageTextGenerator, prompts *Prompts) TextExtractor {
	return &openAIExtractor{client: client, prompts: prompts}
}

func (e *openAIExtractor) Provider() string { return OCRProviderOpenAI }

func (e *openAIExtractor) ExtractText(ctx context.Context, filename, mimeType string, data []byte) (string, error) {
	out, err := e.client.GenerateTextWithImages(ctx, e.prompts.IngestionSystem, e.prompts.OCRUser, []openai.ImageInput{
		{ImageURL: openai.ImageDataURL(sniffImageMime(mimeType, data), data), Detail: "high"},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

type visionExtractor struct {
	ocr gcp.VisionOCR
}

func NewVisionExtractor(ocr gcp.VisionOCR) TextExtractor {
	return &visionExtractor{ocr: ocr}
}

func (e *visionExtractor) Provider() string { return OCRProviderGCPVision }

func (e *visionExtractor) ExtractText(ctx context.Context, filename, mimeType string, data []byte) (string, error) {
	text, err := e.ocr.DetectDocumentText(ctx, data)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", fmt.Errorf("no text detected in %s", filename)
	}
	return text, nil
}

type mockExtractor struct {
	prompts *Prompts
}

// NewMockExtractor returns deterministic markdown naming the uploaded file.
func NewMockExtractor(prompts *Prompts) TextExtractor {
	return &mockExtractor{prompts: prompts}
}

func (e *mockExtractor) Provider() string { return OCRProviderMock }

func (e *mockExtractor) ExtractText(ctx context.Context, filename, mimeType string, data []byte) (string, error) {
	return render(e.prompts.MockIngestion, "filename", filename), nil
}

func sniffImageMime(declared string, data []byte) string {
	declared = strings.TrimSpace(strings.ToLower(declared))
	if strings.HasPrefix(declared, "image/") {
		return declared
	}
	return http.DetectContentType(data)
}
