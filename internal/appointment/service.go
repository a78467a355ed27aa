package appointment

import (
	"context"
	"fmt"
	"log"

	"github.com/CareBridge-Health/scheduling-service/internal/messaging"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	refunds   RefundIssuer
	booking   BookingFetcher
}

// BookingFetcher pulls appointment records from the external booking API.
type BookingFetcher interface {
	FetchAppointments(ctx context.Context, doctor string) ([]Record, error)
}

// NewService wires the appointment business logic. publisher, refunds and
// booking may be nil; the corresponding side effects are skipped.
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, refunds RefundIssuer, booking BookingFetcher) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		refunds:   refunds,
		booking:   booking,
	}
}

func (s *Service) CreateAppointment(ctx context.Context, draft Draft) (*Record, error) {
	if fe := Validate(draft); !fe.Empty() {
		return nil, &ValidationError{Fields: fe}
	}

	rec, err := Normalize(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize draft: %w", err)
	}

	created, err := s.repo.Create(ctx, *rec)
	if err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	s.publish(ctx, messaging.EventAppointmentCreated, messaging.NewAppointmentCreatedEvent(
		created.ID, created.PatientName, created.Doctor, created.Date, created.Time, created.Type, created.Status,
	))
	return created, nil
}

func (s *Service) GetAppointment(ctx context.Context, id string) (*Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) ListAppointments(ctx context.Context, q ListQuery) (*PaginatedAppointmentListResponse, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return buildPage(records, q)
}

func (s *Service) ListDoctorAppointments(ctx context.Context, doctor string, q ListQuery) (*PaginatedAppointmentListResponse, error) {
	records, err := s.repo.ListByDoctor(ctx, doctor)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments for doctor: %w", err)
	}
	return buildPage(records, q)
}

func (s *Service) UpdateAppointment(ctx context.Context, id string, draft Draft) (*Record, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if fe := Validate(draft); !fe.Empty() {
		return nil, &ValidationError{Fields: fe}
	}

	rec, err := Normalize(draft)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize draft: %w", err)
	}

	if err := CheckTransition(existing.Status, rec.Status); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, *rec)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	s.publish(ctx, messaging.EventAppointmentUpdated, messaging.NewAppointmentUpdatedEvent(
		updated.ID, updated.Doctor, updated.Date, updated.Time, updated.Status,
	))
	return updated, nil
}

// UpdateStatus enforces the status state machine: pending may confirm or
// cancel, confirmed may complete or cancel, canceled and completed are
// terminal. Canceling issues a wallet refund when a refund issuer is wired.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*Record, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := CheckTransition(existing.Status, status); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}

	if status == StatusCanceled && s.refunds != nil {
		if err := s.refunds.IssueRefundForAppointment(ctx, id); err != nil {
			// The cancellation itself stands; the refund can be replayed from
			// the invoice ledger.
			log.Printf("[ERROR] refund for appointment %s failed: %v", id, err)
		}
	}

	s.publish(ctx, messaging.EventAppointmentStatusChanged, messaging.NewAppointmentStatusChangedEvent(
		updated.ID, existing.Status, updated.Status,
	))
	return updated, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, messaging.EventAppointmentDeleted, messaging.NewAppointmentDeletedEvent(id))
	return nil
}

// ImportFromBooking pulls a doctor's appointments from the external booking
// API and upserts them locally, keeping the upstream identifiers.
func (s *Service) ImportFromBooking(ctx context.Context, doctor string) (int, error) {
	if s.booking == nil {
		return 0, fmt.Errorf("booking API client is not configured")
	}

	records, err := s.booking.FetchAppointments(ctx, doctor)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch booking appointments: %w", err)
	}

	imported := 0
	for _, rec := range records {
		if rec.ID == "" {
			log.Printf("skipping booking record without id (patient %q)", rec.PatientName)
			continue
		}
		if _, err := s.repo.Upsert(ctx, rec); err != nil {
			return imported, fmt.Errorf("failed to import appointment %s: %w", rec.ID, err)
		}
		imported++
	}
	return imported, nil
}

func buildPage(records []Record, q ListQuery) (*PaginatedAppointmentListResponse, error) {
	dateFilter := ""
	if q.Date != "" {
		iso, err := normalizeDate(q.Date)
		if err != nil {
			return nil, err
		}
		dateFilter = iso
	}

	q.Params.Validate()
	filtered := Filter(records, q.Search, dateFilter)
	items, totalPages := Paginate(filtered, q.Params.Page, q.Params.Limit)

	return &PaginatedAppointmentListResponse{
		Success:      true,
		Appointments: items,
		Pagination:   q.Params.CalculateMeta(len(filtered), totalPages),
	}, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Printf("[ERROR] failed to publish %s event: %v", routingKey, err)
	}
}
