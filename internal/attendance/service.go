package attendance

import (
	"context"
	"fmt"
	"log"

	"github.com/CareBridge-Health/scheduling-service/internal/appointment"
	"github.com/CareBridge-Health/scheduling-service/internal/messaging"
)

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

// NewService wires the attendance business logic. publisher may be nil;
// events are then skipped.
func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

var _ ServiceInterface = (*Service)(nil)

// Register claims a shift for the doctor. The date arrives in the form's
// DD/MM/YYYY format and goes through the same validation and ISO conversion
// as appointment dates.
func (s *Service) Register(ctx context.Context, doctor string, req RegisterRequest) (*Registration, error) {
	if !ValidShift(req.Shift) {
		return nil, fmt.Errorf("shift %q: %w", req.Shift, ErrUnknownShift)
	}

	isoDate, err := appointment.NormalizeDate(req.Date)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, Registration{
		Doctor: doctor,
		Date:   isoDate,
		Shift:  req.Shift,
	})
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := messaging.NewAttendanceRegisteredEvent(created.ID, created.Doctor, created.Date, created.Shift)
		if err := s.publisher.Publish(ctx, messaging.EventAttendanceRegistered, event); err != nil {
			log.Printf("Warning: failed to publish attendance.registered event: %v", err)
		}
	}

	log.Printf("✓ Registered %s shift on %s for %s", created.Shift, created.Date, created.Doctor)
	return created, nil
}

func (s *Service) ListMine(ctx context.Context, doctor string) ([]Registration, error) {
	return s.repo.ListByDoctor(ctx, doctor)
}

// Cancel withdraws one of the doctor's own registrations.
func (s *Service) Cancel(ctx context.Context, id, doctor string) error {
	reg, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if reg.Doctor != doctor {
		// same response as a missing row so ids can't be probed
		return ErrNotFound
	}

	if err := s.repo.Delete(ctx, id, doctor); err != nil {
		return err
	}

	if s.publisher != nil {
		event := messaging.NewAttendanceCanceledEvent(reg.ID, reg.Doctor, reg.Date, reg.Shift)
		if err := s.publisher.Publish(ctx, messaging.EventAttendanceCanceled, event); err != nil {
			log.Printf("Warning: failed to publish attendance.canceled event: %v", err)
		}
	}

	log.Printf("✓ Canceled %s shift on %s for %s", reg.Shift, reg.Date, reg.Doctor)
	return nil
}
