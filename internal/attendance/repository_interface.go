package attendance

import "context"

// RepositoryInterface defines the attendance data access contract
type RepositoryInterface interface {
	Create(ctx context.Context, reg Registration) (*Registration, error)
	ListByDoctor(ctx context.Context, doctor string) ([]Registration, error)
	Get(ctx context.Context, id string) (*Registration, error)
	Delete(ctx context.Context, id, doctor string) error
}
