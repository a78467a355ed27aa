package attendance

import "context"

// ServiceInterface defines the attendance business logic contract
type ServiceInterface interface {
	Register(ctx context.Context, doctor string, req RegisterRequest) (*Registration, error)
	ListMine(ctx context.Context, doctor string) ([]Registration, error)
	Cancel(ctx context.Context, id, doctor string) error
}
