package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"go.uber.org/zap"
)

// TestToolService manages the test tool catalog.
type TestToolService struct {
	repo   *repository.TestToolRepository
	locker repository.Locker
	logger *zap.Logger
}

func NewTestToolService(repo *repository.TestToolRepository, locker repository.Locker, logger *zap.Logger) *TestToolService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestToolService{repo: repo, locker: locker, logger: logger}
}

func validateTestTool(t entity.TestTool) error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("test tool name is required")
	}
	if strings.TrimSpace(t.Model) == "" {
		return invalid("test tool model is required")
	}
	return nil
}

// List returns tools whose name or model contain query.
func (s *TestToolService) List(ctx context.Context, query string) ([]entity.TestTool, error) {
	tools, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list test tools: %w", err)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return tools, nil
	}
	out := make([]entity.TestTool, 0, len(tools))
	for _, t := range tools {
		if containsFold(q, t.Name, t.Model) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *TestToolService) Get(ctx context.Context, id string) (*entity.TestTool, error) {
	tools, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list test tools: %w", err)
	}
	for i := range tools {
		if tools[i].ID == id {
			return &tools[i], nil
		}
	}
	return nil, notFound("test tool", id)
}

func (s *TestToolService) Create(ctx context.Context, input entity.TestTool) (*entity.TestTool, error) {
	created, err := s.BulkCreate(ctx, []entity.TestTool{input})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

func (s *TestToolService) BulkCreate(ctx context.Context, inputs []entity.TestTool) ([]entity.TestTool, error) {
	if len(inputs) == 0 {
		return nil, invalid("no test tools given")
	}
	for _, t := range inputs {
		if err := validateTestTool(t); err != nil {
			return nil, err
		}
	}

	var created []entity.TestTool
	err := s.withTools(ctx, func(tools []entity.TestTool) ([]entity.TestTool, error) {
		created = make([]entity.TestTool, len(inputs))
		for i, in := range inputs {
			in.ID = s.repo.NewID()
			created[i] = in
		}
		return append(tools, created...), nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *TestToolService) Update(ctx context.Context, id string, input entity.TestTool) (*entity.TestTool, error) {
	if err := validateTestTool(input); err != nil {
		return nil, err
	}
	input.ID = id
	err := s.withTools(ctx, func(tools []entity.TestTool) ([]entity.TestTool, error) {
		for i := range tools {
			if tools[i].ID == id {
				tools[i] = input
				return tools, nil
			}
		}
		return nil, notFound("test tool", id)
	})
	if err != nil {
		return nil, err
	}
	return &input, nil
}

func (s *TestToolService) Delete(ctx context.Context, id string) error {
	return s.withTools(ctx, func(tools []entity.TestTool) ([]entity.TestTool, error) {
		for i := range tools {
			if tools[i].ID == id {
				return append(tools[:i], tools[i+1:]...), nil
			}
		}
		return nil, notFound("test tool", id)
	})
}

// Import appends the valid rows of a tabular file. Name and model are required.
func (s *TestToolService) Import(ctx context.Context, table *Table) (*ImportResult, error) {
	tools, result := mapRows(table, testToolFields, []string{"name", "model"}, testToolFromRecord)
	for _, w := range result.Warnings {
		s.logger.Warn("Test tool import row skipped", zap.String("reason", w))
	}
	if len(tools) == 0 {
		return result, invalid("no valid test tools found (missing 'name' or 'model')")
	}
	if _, err := s.BulkCreate(ctx, tools); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *TestToolService) withTools(ctx context.Context, fn func([]entity.TestTool) ([]entity.TestTool, error)) error {
	unlock, err := s.locker.Lock(ctx, repository.CollectionTestTools)
	if err != nil {
		return fmt.Errorf("lock test tools: %w", err)
	}
	defer unlock()

	tools, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load test tools: %w", err)
	}
	tools, err = fn(tools)
	if err != nil {
		return err
	}
	if err := s.repo.SaveAll(ctx, tools); err != nil {
		return fmt.Errorf("save test tools: %w", err)
	}
	return nil
}
