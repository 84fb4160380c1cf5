package repository

import (
	"context"

	"github.com/bbbar60-wq/Technical-Offer-Project/internal/offer/entity"
)

// ProductRepository reads and writes the products collection.
type ProductRepository struct {
	store Store
}

func NewProductRepository(store Store) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) List(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	if err := r.store.GetAll(ctx, CollectionProducts, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID looks a product up by id; ok is false when it is absent.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (p *entity.Product, ok bool, err error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, false, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], true, nil
		}
	}
	return nil, false, nil
}

func (r *ProductRepository) SaveAll(ctx context.Context, products []entity.Product) error {
	return r.store.SaveAll(ctx, CollectionProducts, products)
}

func (r *ProductRepository) NewID() string {
	return r.store.NewID()
}

// ClientRepository reads and writes the clients collection.
type ClientRepository struct {
	store Store
}

func NewClientRepository(store Store) *ClientRepository {
	return &ClientRepository{store: store}
}

func (r *ClientRepository) List(ctx context.Context) ([]entity.Client, error) {
	var clients []entity.Client
	if err := r.store.GetAll(ctx, CollectionClients, &clients); err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientRepository) SaveAll(ctx context.Context, clients []entity.Client) error {
	return r.store.SaveAll(ctx, CollectionClients, clients)
}

func (r *ClientRepository) NewID() string {
	return r.store.NewID()
}

// TestToolRepository reads and writes the testTools collection.
type TestToolRepository struct {
	store Store
}

func NewTestToolRepository(store Store) *TestToolRepository {
	return &TestToolRepository{store: store}
}

func (r *TestToolRepository) List(ctx context.Context) ([]entity.TestTool, error) {
	var tools []entity.TestTool
	if err := r.store.GetAll(ctx, CollectionTestTools, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

func (r *TestToolRepository) SaveAll(ctx context.Context, tools []entity.TestTool) error {
	return r.store.SaveAll(ctx, CollectionTestTools, tools)
}

func (r *TestToolRepository) NewID() string {
	return r.store.NewID()
}
