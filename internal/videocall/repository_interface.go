package videocall

import "context"

// RepositoryInterface defines the call session data access contract
type RepositoryInterface interface {
	Create(ctx context.Context, session Session) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	GetActiveByAppointment(ctx context.Context, appointmentID string) (*Session, error)
	End(ctx context.Context, id string) (*Session, error)
}
