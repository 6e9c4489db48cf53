package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/yungbote/hivemind-backend/internal/data/repos"
	types "github.com/yungbote/hivemind-backend/internal/domain"
	"github.com/yungbote/hivemind-backend/internal/platform/apierr"
	"github.com/yungbote/hivemind-backend/internal/platform/dbctx"
	"github.com/yungbote/hivemind-backend/internal/platform/logger"
)

type SubjectService interface {
	List(ctx context.Context) ([]*types.Subject, error)
	Create(ctx context.Context, name string) (*types.Subject, error)
}

type subjectService struct {
	log         *logger.Logger
	subjectRepo repos.SubjectRepo
}

func NewSubjectService(log *logger.Logger, subjectRepo repos.SubjectRepo) SubjectService {
	return &subjectService{log: log.With("service", "SubjectService"), subjectRepo: subjectRepo}
}

func (s *subjectService) List(ctx context.Context) ([]*types.Subject, error) {
	return s.subjectRepo.ListAll(dbctx.Context{Ctx: ctx})
}

func (s *subjectService) Create(ctx context.Context, name string) (*types.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.BadRequest("Subject name is required")
	}
	dbc := dbctx.Context{Ctx: ctx}
	existing, err := s.subjectRepo.GetByName(dbc, name)
	if err != nil {
		return nil, fmt.Errorf("lookup subject: %w", err)
	}
	if existing != nil {
		return nil, apierr.BadRequest("Subject already exists")
	}
	created, err := s.subjectRepo.Create(dbc, []*types.Subject{{Name: name}})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.BadRequest("Subject already exists")
		}
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return created[0], nil
}
