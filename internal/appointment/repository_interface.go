package appointment

import "context"

// RepositoryInterface defines the contract for appointment data access
type RepositoryInterface interface {
	Create(ctx context.Context, rec Record) (*Record, error)
	List(ctx context.Context) ([]Record, error)
	ListByDoctor(ctx context.Context, doctor string) ([]Record, error)
	Get(ctx context.Context, id string) (*Record, error)
	Update(ctx context.Context, id string, rec Record) (*Record, error)
	UpdateStatus(ctx context.Context, id, status string) (*Record, error)
	Delete(ctx context.Context, id string) error
	Upsert(ctx context.Context, rec Record) (*Record, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
