package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"go.uber.org/zap"
)

// EventPublisher receives a notification after every successful project write.
type EventPublisher interface {
	PublishProjectUpdate(projectID, action string)
}

type nopPublisher struct{}

func (nopPublisher) PublishProjectUpdate(string, string) {}

// projectWriter runs read-modify-write cycles on the projects collection. The whole cycle
// holds the collection lock and nothing is written unless the mutation succeeds.
type projectWriter struct {
	repo   *repository.ProjectRepository
	locker repository.Locker
}

// modify hands fn the decoded collection. fn returns the new collection and the index of the
// project to return, or -1 for none.
func (w *projectWriter) modify(ctx context.Context, fn func(projects []entity.Project) ([]entity.Project, int, error)) (*entity.Project, error) {
	unlock, err := w.locker.Lock(ctx, repository.CollectionProjects)
	if err != nil {
		return nil, fmt.Errorf("lock projects: %w", err)
	}
	defer unlock()

	projects, err := w.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}

	projects, idx, err := fn(projects)
	if err != nil {
		return nil, err
	}

	if err := w.repo.SaveAll(ctx, projects); err != nil {
		return nil, fmt.Errorf("save projects: %w", err)
	}
	if idx < 0 {
		return nil, nil
	}
	out := projects[idx].Clone()
	return &out, nil
}

// update applies fn to the project with id.
func (w *projectWriter) update(ctx context.Context, id string, fn func(p *entity.Project) error) (*entity.Project, error) {
	return w.modify(ctx, func(projects []entity.Project) ([]entity.Project, int, error) {
		i := repository.IndexOfProject(projects, id)
		if i < 0 {
			return nil, -1, notFound("project", id)
		}
		if err := fn(&projects[i]); err != nil {
			return nil, -1, err
		}
		return projects, i, nil
	})
}

// ProjectInput carries the editable header fields of a project.
type ProjectInput struct {
	ProjectName string `json:"project_name" binding:"required"`
	ProjectNo   string `json:"project_no" binding:"required"`
	ClientID    string `json:"client_id"`
	PreparedBy  string `json:"prepared_by"`
	Date        string `json:"date"`
	Status      string `json:"status"`
}

// ProjectFilter narrows List.
type ProjectFilter struct {
	Status   string
	ClientID string
	Query    string
}

// ProjectService manages project records.
type ProjectService struct {
	writer    *projectWriter
	projects  *repository.ProjectRepository
	clients   *repository.ClientRepository
	spareRepo *repository.SparePartRepository
	events    EventPublisher
	logger    *zap.Logger
	today     func() string
}

func NewProjectService(repos *repository.Repositories, locker repository.Locker, events EventPublisher, logger *zap.Logger) *ProjectService {
	if events == nil {
		events = nopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{
		writer:    &projectWriter{repo: repos.Project, locker: locker},
		projects:  repos.Project,
		clients:   repos.Client,
		spareRepo: repos.SparePart,
		events:    events,
		logger:    logger,
		today:     today,
	}
}

func (s *ProjectService) validate(input *ProjectInput) error {
	if strings.TrimSpace(input.ProjectName) == "" {
		return invalid("project name is required")
	}
	if strings.TrimSpace(input.ProjectNo) == "" {
		return invalid("project number is required")
	}
	if input.Status == "" {
		input.Status = entity.ProjectStatusDraft
	}
	if !entity.ValidProjectStatus(input.Status) {
		return invalid("unknown project status %q", input.Status)
	}
	if input.Date == "" {
		input.Date = s.today()
	}
	return nil
}

func (s *ProjectService) checkClient(ctx context.Context, clientID string) error {
	if clientID == "" {
		return nil
	}
	clients, err := s.clients.List(ctx)
	if err != nil {
		return fmt.Errorf("list clients: %w", err)
	}
	for _, c := range clients {
		if c.ID == clientID {
			return nil
		}
	}
	return notFound("client", clientID)
}

// Create stores a new project with the single revision "00".
func (s *ProjectService) Create(ctx context.Context, input *ProjectInput) (*entity.Project, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, input.ClientID); err != nil {
		return nil, err
	}

	p, err := s.writer.modify(ctx, func(projects []entity.Project) ([]entity.Project, int, error) {
		project := entity.Project{
			ID:                s.projects.NewID(),
			ProjectName:       input.ProjectName,
			ProjectNo:         input.ProjectNo,
			ClientID:          input.ClientID,
			LastRev:           entity.InitialRevNo,
			PreparedBy:        input.PreparedBy,
			Date:              input.Date,
			Status:            input.Status,
			Revisions:         []entity.Revision{{RevNo: entity.InitialRevNo, Devices: []entity.Device{}}},
			GeneralDeviations: []entity.GeneralDeviation{},
			UploadedFiles:     []entity.UploadedFile{},
		}
		projects = append(projects, project)
		return projects, len(projects) - 1, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project created", zap.String("project_id", p.ID), zap.String("project_no", p.ProjectNo))
	s.events.PublishProjectUpdate(p.ID, "created")
	return p, nil
}

// List returns projects matching filter
func (s *ProjectService) List(ctx context.Context, filter ProjectFilter) ([]entity.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	q := strings.ToLower(strings.TrimSpace(filter.Query))
	out := make([]entity.Project, 0, len(projects))
	for _, p := range projects {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.ClientID != "" && p.ClientID != filter.ClientID {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.ProjectName), q) &&
			!strings.Contains(strings.ToLower(p.ProjectNo), q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Get returns one project
func (s *ProjectService) Get(ctx context.Context, id string) (*entity.Project, error) {
	p, ok, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	if !ok {
		return nil, notFound("project", id)
	}
	return p, nil
}

// Update edits header fields. Revisions and ledgers are left alone.
func (s *ProjectService) Update(ctx context.Context, id string, input *ProjectInput) (*entity.Project, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}
	if err := s.checkClient(ctx, input.ClientID); err != nil {
		return nil, err
	}

	p, err := s.writer.update(ctx, id, func(p *entity.Project) error {
		p.ProjectName = input.ProjectName
		p.ProjectNo = input.ProjectNo
		p.ClientID = input.ClientID
		p.PreparedBy = input.PreparedBy
		p.Date = input.Date
		p.Status = input.Status
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.events.PublishProjectUpdate(id, "updated")
	return p, nil
}

// Delete removes a project together with its spare part notes.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	_, err := s.writer.modify(ctx, func(projects []entity.Project) ([]entity.Project, int, error) {
		i := repository.IndexOfProject(projects, id)
		if i < 0 {
			return nil, -1, notFound("project", id)
		}
		return append(projects[:i], projects[i+1:]...), -1, nil
	})
	if err != nil {
		return err
	}

	if err := s.spareRepo.DeleteProject(ctx, id); err != nil {
		s.logger.Warn("Failed to delete spare part notes", zap.String("project_id", id), zap.Error(err))
	}
	s.events.PublishProjectUpdate(id, "deleted")
	return nil
}
