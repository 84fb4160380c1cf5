package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"go.uber.org/zap"
)

// ClientService manages the client list.
type ClientService struct {
	repo   *repository.ClientRepository
	locker repository.Locker
	logger *zap.Logger
}

func NewClientService(repo *repository.ClientRepository, locker repository.Locker, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{repo: repo, locker: locker, logger: logger}
}

func validateClient(c entity.Client) error {
	if strings.TrimSpace(c.Name) == "" {
		return invalid("client name is required")
	}
	return nil
}

// List returns clients whose name or address contain query.
func (s *ClientService) List(ctx context.Context, query string) ([]entity.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return clients, nil
	}
	out := make([]entity.Client, 0, len(clients))
	for _, c := range clients {
		if containsFold(q, c.Name, c.Address) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*entity.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	for i := range clients {
		if clients[i].ID == id {
			return &clients[i], nil
		}
	}
	return nil, notFound("client", id)
}

func (s *ClientService) Create(ctx context.Context, input entity.Client) (*entity.Client, error) {
	created, err := s.BulkCreate(ctx, []entity.Client{input})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// BulkCreate appends clients in one write.
func (s *ClientService) BulkCreate(ctx context.Context, inputs []entity.Client) ([]entity.Client, error) {
	if len(inputs) == 0 {
		return nil, invalid("no clients given")
	}
	for _, c := range inputs {
		if err := validateClient(c); err != nil {
			return nil, err
		}
	}

	var created []entity.Client
	err := s.withClients(ctx, func(clients []entity.Client) ([]entity.Client, error) {
		created = make([]entity.Client, len(inputs))
		for i, in := range inputs {
			in.ID = s.repo.NewID()
			created[i] = in
		}
		return append(clients, created...), nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *ClientService) Update(ctx context.Context, id string, input entity.Client) (*entity.Client, error) {
	if err := validateClient(input); err != nil {
		return nil, err
	}
	input.ID = id
	err := s.withClients(ctx, func(clients []entity.Client) ([]entity.Client, error) {
		for i := range clients {
			if clients[i].ID == id {
				clients[i] = input
				return clients, nil
			}
		}
		return nil, notFound("client", id)
	})
	if err != nil {
		return nil, err
	}
	return &input, nil
}

// Delete removes a client. Projects keep their client id.
func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.withClients(ctx, func(clients []entity.Client) ([]entity.Client, error) {
		for i := range clients {
			if clients[i].ID == id {
				return append(clients[:i], clients[i+1:]...), nil
			}
		}
		return nil, notFound("client", id)
	})
}

// Import appends the valid rows of a tabular file. Name is required.
func (s *ClientService) Import(ctx context.Context, table *Table) (*ImportResult, error) {
	clients, result := mapRows(table, clientFields, []string{"name"}, clientFromRecord)
	for _, w := range result.Warnings {
		s.logger.Warn("Client import row skipped", zap.String("reason", w))
	}
	if len(clients) == 0 {
		return result, invalid("no valid clients found (missing 'name')")
	}
	if _, err := s.BulkCreate(ctx, clients); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ClientService) withClients(ctx context.Context, fn func([]entity.Client) ([]entity.Client, error)) error {
	unlock, err := s.locker.Lock(ctx, repository.CollectionClients)
	if err != nil {
		return fmt.Errorf("lock clients: %w", err)
	}
	defer unlock()

	clients, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load clients: %w", err)
	}
	clients, err = fn(clients)
	if err != nil {
		return err
	}
	if err := s.repo.SaveAll(ctx, clients); err != nil {
		return fmt.Errorf("save clients: %w", err)
	}
	return nil
}
