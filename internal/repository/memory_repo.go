package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/themizzi/storefront-e2e/internal/models"
)

// MemoryOrderRepository keeps orders in process. It is the default store
// for the demo storefront and for suites that start it in-process.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]models.Order
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]models.Order)}
}

func (r *MemoryOrderRepository) Insert(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.Reference]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateReference, order.Reference)
	}
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.orders[order.Reference] = *order
	return nil
}

// FindByReference returns a copy; callers cannot mutate the store.
func (r *MemoryOrderRepository) FindByReference(reference string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[reference]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrOrderNotFound, reference)
	}
	return &order, nil
}

func (r *MemoryOrderRepository) SaveStatus(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[order.Reference]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrOrderNotFound, order.Reference)
	}
	order.UpdatedAt = time.Now()
	stored.Status = order.Status
	stored.PSPReference = order.PSPReference
	stored.UpdatedAt = order.UpdatedAt
	r.orders[order.Reference] = stored
	return nil
}
