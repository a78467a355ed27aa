package videocall

import "context"

// ServiceInterface defines the call session business logic contract
type ServiceInterface interface {
	Start(ctx context.Context, appointmentID string) (*Session, error)
	GetActive(ctx context.Context, appointmentID string) (*Session, error)
	End(ctx context.Context, sessionID string) (*Session, error)
}
