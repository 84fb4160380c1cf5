package service

import (
	"context"
	"fmt"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/storage"
	"go.uber.org/zap"
)

// Services groups every service over one set of repositories.
type Services struct {
	Auth      *AuthService
	Catalog   *CatalogService
	Client    *ClientService
	TestTool  *TestToolService
	Project   *ProjectService
	Revision  *RevisionService
	Ledger    *LedgerService
	SparePart *SparePartService
	Export    *ExportService
	Dashboard *DashboardService
	Seeder    *Seeder
}

// Deps are the collaborators shared by the services.
type Deps struct {
	Repos  *repository.Repositories
	Locker repository.Locker
	Blobs  storage.BlobStore
	Events EventPublisher
	Auth   *AuthService
	Logger *zap.Logger
}

func NewServices(d Deps) *Services {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	locker := d.Locker
	if locker == nil {
		locker = repository.NewLocalLocker()
	}
	repos := d.Repos

	catalog := NewCatalogService(repos.Product, locker, logger.Named("catalog"))
	return &Services{
		Auth:      d.Auth,
		Catalog:   catalog,
		Client:    NewClientService(repos.Client, locker, logger.Named("client")),
		TestTool:  NewTestToolService(repos.TestTool, locker, logger.Named("test_tool")),
		Project:   NewProjectService(repos, locker, d.Events, logger.Named("project")),
		Revision:  NewRevisionService(repos.Project, catalog, locker, d.Events, logger.Named("revision")),
		Ledger:    NewLedgerService(repos.Project, d.Blobs, locker, d.Events, logger.Named("ledger")),
		SparePart: NewSparePartService(repos.SparePart, repos.Project, locker, logger.Named("spare_part")),
		Export:    NewExportService(repos.Project, repos.Client, logger.Named("export")),
		Dashboard: NewDashboardService(repos),
		Seeder:    NewSeeder(repos, logger.Named("seed")),
	}
}

// Summary is the dashboard overview.
type Summary struct {
	Projects         int            `json:"projects"`
	ProjectsByStatus map[string]int `json:"projects_by_status"`
	Products         int            `json:"products"`
	Clients          int            `json:"clients"`
	TestTools        int            `json:"test_tools"`
	RecentProjects   []ProjectBrief `json:"recent_projects"`
}

// ProjectBrief is a project header without revisions.
type ProjectBrief struct {
	ID          string `json:"id"`
	ProjectName string `json:"project_name"`
	ProjectNo   string `json:"project_no"`
	LastRev     string `json:"last_rev"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

// DashboardService counts records for the dashboard.
type DashboardService struct {
	repos *repository.Repositories
}

func NewDashboardService(repos *repository.Repositories) *DashboardService {
	return &DashboardService{repos: repos}
}

const recentProjectLimit = 5

func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	projects, err := s.repos.Project.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	products, err := s.repos.Product.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	clients, err := s.repos.Client.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	tools, err := s.repos.TestTool.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list test tools: %w", err)
	}

	sum := &Summary{
		Projects: len(projects),
		ProjectsByStatus: map[string]int{
			entity.ProjectStatusDraft:     0,
			entity.ProjectStatusSubmitted: 0,
			entity.ProjectStatusWin:       0,
		},
		Products:       len(products),
		Clients:        len(clients),
		TestTools:      len(tools),
		RecentProjects: []ProjectBrief{},
	}
	for _, p := range projects {
		sum.ProjectsByStatus[p.Status]++
	}
	// newest are appended last
	for i := len(projects) - 1; i >= 0 && len(sum.RecentProjects) < recentProjectLimit; i-- {
		p := projects[i]
		sum.RecentProjects = append(sum.RecentProjects, ProjectBrief{
			ID: p.ID, ProjectName: p.ProjectName, ProjectNo: p.ProjectNo,
			LastRev: p.LastRev, Status: p.Status, Date: p.Date,
		})
	}
	return sum, nil
}
