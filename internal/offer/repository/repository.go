package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Errors
var (
	ErrStorage = errors.New("storage failure")
)

// Collections
const (
	CollectionProducts  = "products"
	CollectionClients   = "clients"
	CollectionProjects  = "projects"
	CollectionTestTools = "testTools"
)

// Store persists whole collections of JSON serialisable records.
//
// GetAll is tolerant: a missing collection or a payload that does not decode leaves dest as an
// empty slice and returns nil. Only failures of the backing store itself are returned, wrapped
// in ErrStorage, so that callers never overwrite a collection they could not read.
// SaveAll replaces the entire collection. Exists reports whether a collection was ever
// written, even when it now holds an empty list.
type Store interface {
	GetAll(ctx context.Context, collection string, dest interface{}) error
	SaveAll(ctx context.Context, collection string, items interface{}) error
	Delete(ctx context.Context, collection string) error
	Exists(ctx context.Context, collection string) (bool, error)
	NewID() string
}

// Repositories groups the typed repositories over one store.
type Repositories struct {
	Store     Store
	Product   *ProductRepository
	Client    *ClientRepository
	TestTool  *TestToolRepository
	Project   *ProjectRepository
	SparePart *SparePartRepository
}

// NewRepositories builds every repository over store.
func NewRepositories(store Store) *Repositories {
	return &Repositories{
		Store:     store,
		Product:   NewProductRepository(store),
		Client:    NewClientRepository(store),
		TestTool:  NewTestToolRepository(store),
		Project:   NewProjectRepository(store),
		SparePart: NewSparePartRepository(store),
	}
}

// decodeCollection unmarshals raw into dest, a pointer to a slice. Empty or corrupt payloads
// produce an empty slice.
func decodeCollection(logger *zap.Logger, collection string, raw []byte, dest interface{}) error {
	v := reflect.ValueOf(dest)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("decode %s: destination must be a pointer to a slice, got %T", collection, dest)
	}
	empty := reflect.MakeSlice(v.Elem().Type(), 0, 0)

	if len(raw) == 0 {
		v.Elem().Set(empty)
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("Corrupt collection payload, treating as empty",
			zap.String("collection", collection),
			zap.Error(err),
		)
		v.Elem().Set(empty)
		return nil
	}
	if v.Elem().IsNil() {
		v.Elem().Set(empty)
	}
	return nil
}

func encodeCollection(collection string, items interface{}) ([]byte, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %v", ErrStorage, collection, err)
	}
	if string(data) == "null" {
		data = []byte("[]")
	}
	return data, nil
}
