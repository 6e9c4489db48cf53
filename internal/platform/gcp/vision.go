package gcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"

	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

// VisionOCR runs Cloud Vision document text detection on a single image.
type VisionOCR interface {
	DetectDocumentText(ctx context.Context, img []byte) (string, error)
	Close() error
}

// imageAnnotator is the slice of vision.ImageAnnotatorClient used here.
type imageAnnotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

type visionOCR struct {
	log    *logger.Logger
	client imageAnnotator
}

func NewVisionOCR(ctx context.Context, log *logger.Logger) (VisionOCR, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	// ADC when no credentials are configured (Cloud Run with attached SA).
	client, err := vision.NewImageAnnotatorClient(ctx, ClientOptionsFromEnv()...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return newVisionOCR(log, client), nil
}

func newVisionOCR(log *logger.Logger, client imageAnnotator) *visionOCR {
	return &visionOCR{log: log.With("service", "VisionOCR"), client: client}
}

func (v *visionOCR) DetectDocumentText(ctx context.Context, img []byte) (string, error) {
	if len(img) == 0 {
		return "", nil
	}
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := v.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{{
			Image:    &visionpb.Image{Content: img},
			Features: []*visionpb.Feature{{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION}},
		}},
	})
	if err != nil {
		return "", fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if len(resp.GetResponses()) == 0 {
		return "", nil
	}
	r := resp.GetResponses()[0]
	if st := r.GetError(); st != nil && st.GetCode() != 0 {
		return "", fmt.Errorf("vision annotate: code=%d %s", st.GetCode(), st.GetMessage())
	}
	// Keep line breaks; the markdown pass downstream relies on them.
	return strings.TrimSpace(r.GetFullTextAnnotation().GetText()), nil
}

func (v *visionOCR) Close() error {
	if v == nil || v.client == nil {
		return nil
	}
	return v.client.Close()
}
