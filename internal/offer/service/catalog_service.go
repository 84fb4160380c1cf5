package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/repository"
	"go.uber.org/zap"
)

var accessories = []entity.Accessory{
	{ID: "acc_1", Name: "Mounting Bracket", PartNo: "BRK-001", Qty: 1},
	{ID: "acc_2", Name: "Weather Shield", PartNo: "WSH-002", Qty: 1},
	{ID: "acc_3", Name: "3-Valve Manifold", PartNo: "MAN-003", Qty: 1},
}

// Accessories returns a copy of the fixed accessory list.
func Accessories() []entity.Accessory {
	out := make([]entity.Accessory, len(accessories))
	copy(out, accessories)
	return out
}

// FindAccessory looks an accessory up by id.
func FindAccessory(id string) (entity.Accessory, bool) {
	for _, a := range accessories {
		if a.ID == id {
			return a, true
		}
	}
	return entity.Accessory{}, false
}

// CatalogService manages the product catalog.
type CatalogService struct {
	repo   *repository.ProductRepository
	locker repository.Locker
	logger *zap.Logger
}

func NewCatalogService(repo *repository.ProductRepository, locker repository.Locker, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, locker: locker, logger: logger}
}

var _ ProductLookup = (*CatalogService)(nil)

// List returns products whose name, model, brand or category contain query.
func (s *CatalogService) List(ctx context.Context, query string) ([]entity.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return products, nil
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if containsFold(q, p.Name, p.Model, p.Brand, p.Category) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Get returns the product with id
func (s *CatalogService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if !ok {
		return nil, notFound("product", id)
	}
	return p, nil
}

// Create adds a product with a new id
func (s *CatalogService) Create(ctx context.Context, input entity.Product) (*entity.Product, error) {
	created, err := s.BulkCreate(ctx, []entity.Product{input})
	if err != nil {
		return nil, err
	}
	return &created[0], nil
}

// BulkCreate appends products in one write and returns them with their ids.
func (s *CatalogService) BulkCreate(ctx context.Context, inputs []entity.Product) ([]entity.Product, error) {
	if len(inputs) == 0 {
		return nil, invalid("no products given")
	}

	var created []entity.Product
	err := s.withProducts(ctx, func(products []entity.Product) ([]entity.Product, error) {
		created = make([]entity.Product, len(inputs))
		for i, in := range inputs {
			in.ID = s.repo.NewID()
			created[i] = in
		}
		return append(products, created...), nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the product with id.
func (s *CatalogService) Update(ctx context.Context, id string, input entity.Product) (*entity.Product, error) {
	input.ID = id
	err := s.withProducts(ctx, func(products []entity.Product) ([]entity.Product, error) {
		for i := range products {
			if products[i].ID == id {
				products[i] = input
				return products, nil
			}
		}
		return nil, notFound("product", id)
	})
	if err != nil {
		return nil, err
	}
	return &input, nil
}

// Delete removes a product. Devices that snapshot it are untouched.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	return s.withProducts(ctx, func(products []entity.Product) ([]entity.Product, error) {
		for i := range products {
			if products[i].ID == id {
				return append(products[:i], products[i+1:]...), nil
			}
		}
		return nil, notFound("product", id)
	})
}

// Import appends the valid rows of a tabular file. Name, model and category are required.
func (s *CatalogService) Import(ctx context.Context, table *Table) (*ImportResult, error) {
	products, result := mapRows(table, productFields, []string{"name", "model", "category"}, productFromRecord)
	for _, w := range result.Warnings {
		s.logger.Warn("Product import row skipped", zap.String("reason", w))
	}
	if len(products) == 0 {
		return result, invalid("no valid products found (missing 'name', 'model' or 'category')")
	}
	if _, err := s.BulkCreate(ctx, products); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *CatalogService) withProducts(ctx context.Context, fn func([]entity.Product) ([]entity.Product, error)) error {
	unlock, err := s.locker.Lock(ctx, repository.CollectionProducts)
	if err != nil {
		return fmt.Errorf("lock products: %w", err)
	}
	defer unlock()

	products, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("load products: %w", err)
	}
	products, err = fn(products)
	if err != nil {
		return err
	}
	if err := s.repo.SaveAll(ctx, products); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	return nil
}

func containsFold(lowerQuery string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), lowerQuery) {
			return true
		}
	}
	return false
}
