package server

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/studiowebux/catalog/internal/types"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]types.Product, error)
	GetByID(ctx context.Context, id int64) (*types.Product, error)
	Create(ctx context.Context, in types.ProductInput) (*types.Product, error)
	Update(ctx context.Context, id int64, in types.ProductInput) (*types.Product, error)
	Delete(ctx context.Context, id int64) error
}

// InMemoryProductRepository implements ProductRepository with in-memory storage
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]types.Product
	nextID   int64
}

// SampleProducts is the catalog the demo server starts with
func SampleProducts() []types.ProductInput {
	return []types.ProductInput{
		{Name: "Laptop", Description: "Dell XPS 13", Price: 1299.99},
		{Name: "Smartphone", Description: "Samsung Galaxy S21", Price: 799.99},
		{Name: "Headphones", Description: "Sony WH-1000XM4", Price: 349.99},
		{Name: "Smartwatch", Description: "Apple Watch Series 7", Price: 399.99},
	}
}

// NewInMemoryProductRepository creates a repository holding seed, with ids
// assigned from 1 in order
func NewInMemoryProductRepository(seed []types.ProductInput) *InMemoryProductRepository {
	r := &InMemoryProductRepository{
		products: make(map[int64]types.Product, len(seed)),
		nextID:   1,
	}
	for _, in := range seed {
		r.insert(in)
	}
	return r
}

func (r *InMemoryProductRepository) insert(in types.ProductInput) types.Product {
	product := types.Product{
		ID:          r.nextID,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	}
	r.products[product.ID] = product
	r.nextID++
	return product
}

// GetAll returns all products ordered by id
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]types.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]types.Product, 0, len(r.products))
	for _, product := range r.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int64) (*types.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	return &product, nil
}

// Create stores a new product under the next free id
func (r *InMemoryProductRepository) Create(ctx context.Context, in types.ProductInput) (*types.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product := r.insert(in)
	return &product, nil
}

// Update replaces the fields of an existing product
func (r *InMemoryProductRepository) Update(ctx context.Context, id int64, in types.ProductInput) (*types.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return nil, ErrProductNotFound
	}
	product := types.Product{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
	}
	r.products[id] = product
	return &product, nil
}

// Delete removes a product
func (r *InMemoryProductRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}
