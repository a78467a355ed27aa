package appointment

import (
	"context"

	"github.com/CareBridge-Health/scheduling-service/internal/pagination"
)

// ListQuery carries the list-screen filters. Date accepts the form's
// DD/MM/YYYY display format or an ISO date.
type ListQuery struct {
	Search string
	Date   string
	Params pagination.Params
}

// PaginatedAppointmentListResponse is the list endpoint payload.
type PaginatedAppointmentListResponse struct {
	Success      bool            `json:"success"`
	Appointments []Record        `json:"appointments"`
	Pagination   pagination.Meta `json:"pagination"`
}

// ServiceInterface defines the contract for appointment business logic
type ServiceInterface interface {
	CreateAppointment(ctx context.Context, draft Draft) (*Record, error)
	GetAppointment(ctx context.Context, id string) (*Record, error)
	ListAppointments(ctx context.Context, q ListQuery) (*PaginatedAppointmentListResponse, error)
	ListDoctorAppointments(ctx context.Context, doctor string, q ListQuery) (*PaginatedAppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, id string, draft Draft) (*Record, error)
	UpdateStatus(ctx context.Context, id, status string) (*Record, error)
	DeleteAppointment(ctx context.Context, id string) error
	ImportFromBooking(ctx context.Context, doctor string) (int, error)
}

// RefundIssuer is implemented by the wallet service: canceling a paid online
// appointment triggers a partial refund to the patient's wallet.
type RefundIssuer interface {
	IssueRefundForAppointment(ctx context.Context, appointmentID string) error
}
