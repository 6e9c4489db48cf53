package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/hivemind-backend/internal/data/repos"
	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/observability"
	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
	"github.com/yungbote/hivemind-backend/internal/platform/gcp"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type UploadInput struct {
	UserID    uuid.UUID
	SubjectID uuid.UUID
	Chapter   int
	Filename  string
	MimeType  string
	Data      []byte
}

type IngestionService interface {
	Upload(ctx context.Context, in UploadInput) (*types.Note, error)
	Available() bool
	Provider() string
}

type ingestionService struct {
	log         *logger.Logger
	subjectRepo repos.SubjectRepo
	noteRepo    repos.NoteRepo
	extractor   TextExtractor
	bucket      gcp.BucketService
}

// NewIngestionService accepts a nil extractor (uploads answer 503) and a nil
// bucket (raw images are not kept).
func NewIngestionService(
	log *logger.Logger,
	subjectRepo repos.SubjectRepo,
	noteRepo repos.NoteRepo,
	extractor TextExtractor,
	bucket gcp.BucketService,
) IngestionService {
	return &ingestionService{
		log:         log.With("service", "IngestionService"),
		subjectRepo: subjectRepo,
		noteRepo:    noteRepo,
		extractor:   extractor,
		bucket:      bucket,
	}
}

func (s *ingestionService) Available() bool { return s.extractor != nil }

func (s *ingestionService) Provider() string {
	if s.extractor == nil {
		return "none"
	}
	return s.extractor.Provider()
}

func (s *ingestionService) Upload(ctx context.Context, in UploadInput) (*types.Note, error) {
	if len(in.Data) == 0 {
		return nil, apierr.BadRequest("Uploaded file is empty")
	}
	if in.Chapter <= 0 {
		return nil, apierr.BadRequest("chapter is required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	subjects, err := s.subjectRepo.GetByIDs(dbc, []uuid.UUID{in.SubjectID})
	if err != nil {
		return nil, fmt.Errorf("lookup subject: %w", err)
	}
	if len(subjects) == 0 {
		return nil, apierr.NotFound("Subject not found")
	}
	if s.extractor == nil {
		return nil, apierr.ServiceUnavailable("Ingestion agent not configured. Set OPENAI_API_KEY, OCR_PROVIDER=gcp_vision, or enable MOCK_INGESTION for local testing.")
	}

	s.log.Info("Ingesting note",
		"user_id", in.UserID,
		"subject_id", in.SubjectID,
		"chapter", in.Chapter,
		"filename", in.Filename,
		"provider", s.extractor.Provider(),
	)
	content, err := s.extractor.ExtractText(ctx, in.Filename, in.MimeType, in.Data)
	observability.Current().IncOCR(s.extractor.Provider(), err == nil)
	if err != nil {
		s.log.Error("Text extraction failed", "provider", s.extractor.Provider(), "error", err)
		return nil, apierr.Internal("Text extraction failed", err)
	}

	note := &types.Note{
		ID:        uuid.New(),
		UserID:    in.UserID,
		SubjectID: in.SubjectID,
		Chapter:   in.Chapter,
		Content:   content,
	}
	key := s.storeImage(dbc, note, in)
	if key != "" {
		note.RawImageURL = s.bucket.GetPublicURL(key)
	}

	if _, err := s.noteRepo.Create(dbc, []*types.Note{note}); err != nil {
		if key != "" {
			if derr := s.bucket.DeleteFile(dbc, key); derr != nil {
				s.log.Warn("Orphaned raw image cleanup failed", "key", key, "error", derr)
			}
		}
		return nil, apierr.Internal("Database error saving note", err)
	}
	return note, nil
}

// storeImage uploads the raw image when a bucket is configured and returns
// its object key. Failures are logged and the note is kept without an image.
func (s *ingestionService) storeImage(dbc dbctx.Context, note *types.Note, in UploadInput) string {
	if s.bucket == nil {
		return ""
	}
	key := fmt.Sprintf("notes/%s/%s%s", in.UserID, note.ID, strings.ToLower(path.Ext(in.Filename)))
	if err := s.bucket.UploadFile(dbc, key, bytes.NewReader(in.Data)); err != nil {
		s.log.Warn("Raw image upload failed", "key", key, "error", err)
		return ""
	}
	return key
}
