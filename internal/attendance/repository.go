package attendance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

var _ RepositoryInterface = (*Repository)(nil)

// Create inserts a registration. The (doctor, date, shift) unique constraint
// turns a repeat registration into ErrDuplicate.
func (r *Repository) Create(ctx context.Context, reg Registration) (*Registration, error) {
	if reg.ID == "" {
		reg.ID = uuid.New().String()
	}

	query := `
		INSERT INTO carebridge.attendance_registrations
		(id, doctor, shift_date, shift, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, doctor, to_char(shift_date, 'YYYY-MM-DD'), shift, created_at
	`

	var created Registration
	err := r.db.QueryRowContext(ctx, query, reg.ID, reg.Doctor, reg.Date, reg.Shift, time.Now()).
		Scan(&created.ID, &created.Doctor, &created.Date, &created.Shift, &created.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" { // unique_violation
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert registration: %w", err)
	}
	return &created, nil
}

// ListByDoctor returns a doctor's registrations, soonest first.
func (r *Repository) ListByDoctor(ctx context.Context, doctor string) ([]Registration, error) {
	query := `
		SELECT id, doctor, to_char(shift_date, 'YYYY-MM-DD'), shift, created_at
		FROM carebridge.attendance_registrations
		WHERE doctor = $1
		ORDER BY shift_date ASC, shift ASC
	`

	rows, err := r.db.QueryContext(ctx, query, doctor)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var regs []Registration
	for rows.Next() {
		var reg Registration
		if err := rows.Scan(&reg.ID, &reg.Doctor, &reg.Date, &reg.Shift, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registrations: %w", err)
	}

	return regs, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Registration, error) {
	query := `
		SELECT id, doctor, to_char(shift_date, 'YYYY-MM-DD'), shift, created_at
		FROM carebridge.attendance_registrations
		WHERE id = $1
	`

	var reg Registration
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&reg.ID, &reg.Doctor, &reg.Date, &reg.Shift, &reg.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query registration: %w", err)
	}
	return &reg, nil
}

// Delete removes a registration. The doctor filter keeps one doctor from
// withdrawing another's shift.
func (r *Repository) Delete(ctx context.Context, id, doctor string) error {
	query := `
		DELETE FROM carebridge.attendance_registrations
		WHERE id = $1 AND doctor = $2
	`

	result, err := r.db.ExecContext(ctx, query, id, doctor)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
