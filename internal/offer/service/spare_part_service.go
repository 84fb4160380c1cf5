package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"go.uber.org/zap"
)

// SparePartService keeps free text spare part notes per project and category.
type SparePartService struct {
	repo     *repository.SparePartRepository
	projects *repository.ProjectRepository
	locker   repository.Locker
	logger   *zap.Logger
	now      func() string
}

func NewSparePartService(repo *repository.SparePartRepository, projects *repository.ProjectRepository, locker repository.Locker, logger *zap.Logger) *SparePartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SparePartService{repo: repo, projects: projects, locker: locker, logger: logger, now: nowTimestamp}
}

func (s *SparePartService) check(ctx context.Context, projectID, noteType string) error {
	if !entity.ValidSparePartType(noteType) {
		return invalid("unknown spare part type %q", noteType)
	}
	_, ok, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("find project: %w", err)
	}
	if !ok {
		return notFound("project", projectID)
	}
	return nil
}

// List returns notes newest first, optionally filtered by content or author.
func (s *SparePartService) List(ctx context.Context, projectID, noteType, query string) ([]entity.SparePartNote, error) {
	if err := s.check(ctx, projectID, noteType); err != nil {
		return nil, err
	}
	notes, err := s.repo.List(ctx, projectID, noteType)
	if err != nil {
		return nil, fmt.Errorf("list spare part notes: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]entity.SparePartNote, 0, len(notes))
	for i := len(notes) - 1; i >= 0; i-- {
		if q == "" || containsFold(q, notes[i].Content, notes[i].Author) {
			out = append(out, notes[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

// Add stores a new note.
func (s *SparePartService) Add(ctx context.Context, projectID, noteType, author, content string) (*entity.SparePartNote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("note content is required")
	}
	if err := s.check(ctx, projectID, noteType); err != nil {
		return nil, err
	}

	note := entity.SparePartNote{
		ID:        s.repo.NewID(),
		Author:    author,
		Content:   content,
		Timestamp: s.now(),
		Type:      noteType,
	}
	err := s.withNotes(ctx, projectID, noteType, func(notes []entity.SparePartNote) ([]entity.SparePartNote, error) {
		return append(notes, note), nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// Edit replaces the content of a note.
func (s *SparePartService) Edit(ctx context.Context, projectID, noteType, noteID, content string) (*entity.SparePartNote, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("note content is required")
	}
	if err := s.check(ctx, projectID, noteType); err != nil {
		return nil, err
	}

	var edited entity.SparePartNote
	err := s.withNotes(ctx, projectID, noteType, func(notes []entity.SparePartNote) ([]entity.SparePartNote, error) {
		for i := range notes {
			if notes[i].ID == noteID {
				notes[i].Content = content
				edited = notes[i]
				return notes, nil
			}
		}
		return nil, notFound("note", noteID)
	})
	if err != nil {
		return nil, err
	}
	return &edited, nil
}

func (s *SparePartService) Delete(ctx context.Context, projectID, noteType, noteID string) error {
	if err := s.check(ctx, projectID, noteType); err != nil {
		return err
	}
	return s.withNotes(ctx, projectID, noteType, func(notes []entity.SparePartNote) ([]entity.SparePartNote, error) {
		for i := range notes {
			if notes[i].ID == noteID {
				return append(notes[:i], notes[i+1:]...), nil
			}
		}
		return nil, notFound("note", noteID)
	})
}

func (s *SparePartService) withNotes(ctx context.Context, projectID, noteType string, fn func([]entity.SparePartNote) ([]entity.SparePartNote, error)) error {
	collection := entity.SparePartCollection(projectID, noteType)
	unlock, err := s.locker.Lock(ctx, collection)
	if err != nil {
		return fmt.Errorf("lock %s: %w", collection, err)
	}
	defer unlock()

	notes, err := s.repo.List(ctx, projectID, noteType)
	if err != nil {
		return fmt.Errorf("load spare part notes: %w", err)
	}
	notes, err = fn(notes)
	if err != nil {
		return err
	}
	if err := s.repo.SaveAll(ctx, projectID, noteType, notes); err != nil {
		return fmt.Errorf("save spare part notes: %w", err)
	}
	return nil
}
