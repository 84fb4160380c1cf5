package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/storage"
	"go.uber.org/zap"
)

// GeneralDeviationInput is a project level deviation to record.
type GeneralDeviationInput struct {
	Author    string `json:"author"`
	Date      string `json:"date"`
	Deviation string `json:"deviation" binding:"required"`
}

// UploadInput describes a file attached to a project.
type UploadInput struct {
	Name        string
	UploadedBy  string
	Date        string
	Size        int64
	ContentType string
}

// LedgerService appends general deviations and uploaded files to projects. Entries are never
// edited or removed.
type LedgerService struct {
	writer   *projectWriter
	projects *repository.ProjectRepository
	blobs    storage.BlobStore
	events   EventPublisher
	logger   *zap.Logger
	today    func() string
}

func NewLedgerService(projects *repository.ProjectRepository, blobs storage.BlobStore, locker repository.Locker, events EventPublisher, logger *zap.Logger) *LedgerService {
	if events == nil {
		events = nopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerService{
		writer:   &projectWriter{repo: projects, locker: locker},
		projects: projects,
		blobs:    blobs,
		events:   events,
		logger:   logger,
		today:    today,
	}
}

// ListGeneralDeviations returns the deviations of a project in insertion order.
func (s *LedgerService) ListGeneralDeviations(ctx context.Context, projectID string) ([]entity.GeneralDeviation, error) {
	p, err := s.get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.GeneralDeviations == nil {
		return []entity.GeneralDeviation{}, nil
	}
	return p.GeneralDeviations, nil
}

// AddGeneralDeviation appends a deviation. Date defaults to today.
func (s *LedgerService) AddGeneralDeviation(ctx context.Context, projectID string, input GeneralDeviationInput) (*entity.Project, error) {
	if strings.TrimSpace(input.Deviation) == "" {
		return nil, invalid("deviation text is required")
	}
	if input.Date == "" {
		input.Date = s.today()
	}

	p, err := s.writer.update(ctx, projectID, func(p *entity.Project) error {
		p.GeneralDeviations = append(p.GeneralDeviations, entity.GeneralDeviation{
			ID:        s.projects.NewID(),
			Author:    input.Author,
			Date:      input.Date,
			Deviation: input.Deviation,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.events.PublishProjectUpdate(projectID, "general_deviation_added")
	return p, nil
}

// ListUploadedFiles returns the file records of a project.
func (s *LedgerService) ListUploadedFiles(ctx context.Context, projectID string) ([]entity.UploadedFile, error) {
	p, err := s.get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.UploadedFiles == nil {
		return []entity.UploadedFile{}, nil
	}
	return p.UploadedFiles, nil
}

// AddUploadedFile stores content in blob storage and appends a record pointing at it.
// The project is checked first so no object is written for an unknown project.
func (s *LedgerService) AddUploadedFile(ctx context.Context, projectID string, input UploadInput, content io.Reader) (*entity.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, invalid("file name is required")
	}
	if _, err := s.get(ctx, projectID); err != nil {
		return nil, err
	}
	if input.Date == "" {
		input.Date = s.today()
	}

	key := storage.ProjectFileKey(projectID, input.Name)
	if err := s.blobs.Put(ctx, key, content, input.Size, input.ContentType); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	p, err := s.writer.update(ctx, projectID, func(p *entity.Project) error {
		p.UploadedFiles = append(p.UploadedFiles, entity.UploadedFile{
			ID:          s.projects.NewID(),
			Name:        input.Name,
			URL:         key,
			UploadedBy:  input.UploadedBy,
			Date:        input.Date,
			Size:        input.Size,
			ContentType: input.ContentType,
		})
		return nil
	})
	if err != nil {
		s.logger.Warn("Uploaded object left without record", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	s.logger.Info("File uploaded",
		zap.String("project_id", projectID),
		zap.String("name", input.Name),
		zap.String("key", key),
		zap.Int64("size", input.Size),
	)
	s.events.PublishProjectUpdate(projectID, "file_uploaded")
	return p, nil
}

// OpenUploadedFile returns the record and the stored bytes of a file.
func (s *LedgerService) OpenUploadedFile(ctx context.Context, projectID, fileID string) (*entity.UploadedFile, io.ReadCloser, error) {
	p, err := s.get(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	for i := range p.UploadedFiles {
		f := p.UploadedFiles[i]
		if f.ID != fileID {
			continue
		}
		rc, err := s.blobs.Get(ctx, f.URL)
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, nil, notFound("file content", fileID)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read file: %w", err)
		}
		return &f, rc, nil
	}
	return nil, nil, notFound("file", fileID)
}

func (s *LedgerService) get(ctx context.Context, projectID string) (*entity.Project, error) {
	p, ok, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if !ok {
		return nil, notFound("project", projectID)
	}
	return p, nil
}
