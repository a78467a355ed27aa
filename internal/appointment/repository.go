package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const recordColumns = `
	id, patient_name, patient_age, patient_disease,
	to_char(appointment_date, 'YYYY-MM-DD'), appointment_time, appointment_type,
	status, reason, doctor_name, notes, created_at, updated_at`

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, rec Record) (*Record, error) {
	// Preserve identifiers handed to us (e.g. imports from the booking API);
	// generate one only for brand-new records.
	id := rec.ID
	if id == "" {
		id = uuid.New().String()
	}

	query := fmt.Sprintf(`
		INSERT INTO carebridge.appointments
		(id, patient_name, patient_age, patient_disease, appointment_date, appointment_time, appointment_type, status, reason, doctor_name, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING %s
	`, recordColumns)

	row := r.db.QueryRowContext(ctx, query,
		id,
		rec.PatientName,
		rec.PatientAge,
		rec.PatientDisease,
		rec.Date,
		rec.Time,
		rec.Type,
		rec.Status,
		rec.Reason,
		rec.Doctor,
		rec.Notes,
		time.Now().UTC(),
	)

	created, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}
	return created, nil
}

func (r *Repository) List(ctx context.Context) ([]Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM carebridge.appointments
		WHERE deleted_at IS NULL
		ORDER BY appointment_date DESC, appointment_time DESC
	`, recordColumns)

	return r.queryRecords(ctx, query)
}

func (r *Repository) ListByDoctor(ctx context.Context, doctor string) ([]Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM carebridge.appointments
		WHERE doctor_name = $1 AND deleted_at IS NULL
		ORDER BY appointment_date DESC, appointment_time DESC
	`, recordColumns)

	return r.queryRecords(ctx, query, doctor)
}

func (r *Repository) Get(ctx context.Context, id string) (*Record, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM carebridge.appointments
		WHERE id = $1 AND deleted_at IS NULL
	`, recordColumns)

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment: %w", err)
	}
	return rec, nil
}

func (r *Repository) Update(ctx context.Context, id string, rec Record) (*Record, error) {
	query := fmt.Sprintf(`
		UPDATE carebridge.appointments
		SET patient_name = $1, patient_age = $2, patient_disease = $3,
		    appointment_date = $4, appointment_time = $5, appointment_type = $6,
		    status = $7, reason = $8, doctor_name = $9, notes = $10, updated_at = $11
		WHERE id = $12 AND deleted_at IS NULL
		RETURNING %s
	`, recordColumns)

	row := r.db.QueryRowContext(ctx, query,
		rec.PatientName,
		rec.PatientAge,
		rec.PatientDisease,
		rec.Date,
		rec.Time,
		rec.Type,
		rec.Status,
		rec.Reason,
		rec.Doctor,
		rec.Notes,
		time.Now().UTC(),
		id,
	)

	updated, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}
	return updated, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id, status string) (*Record, error) {
	query := fmt.Sprintf(`
		UPDATE carebridge.appointments
		SET status = $1, updated_at = $2
		WHERE id = $3 AND deleted_at IS NULL
		RETURNING %s
	`, recordColumns)

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, status, time.Now().UTC(), id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment status: %w", err)
	}
	return rec, nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE carebridge.appointments
		SET deleted_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
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

// Upsert inserts a record keeping its original ID, or refreshes an existing
// one. Used by booking-API imports, which may re-deliver the same record.
func (r *Repository) Upsert(ctx context.Context, rec Record) (*Record, error) {
	query := fmt.Sprintf(`
		INSERT INTO carebridge.appointments
		(id, patient_name, patient_age, patient_disease, appointment_date, appointment_time, appointment_type, status, reason, doctor_name, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			patient_name = EXCLUDED.patient_name,
			patient_age = EXCLUDED.patient_age,
			patient_disease = EXCLUDED.patient_disease,
			appointment_date = EXCLUDED.appointment_date,
			appointment_time = EXCLUDED.appointment_time,
			appointment_type = EXCLUDED.appointment_type,
			status = EXCLUDED.status,
			reason = EXCLUDED.reason,
			doctor_name = EXCLUDED.doctor_name,
			notes = EXCLUDED.notes,
			updated_at = now(),
			deleted_at = NULL
		RETURNING %s
	`, recordColumns)

	row := r.db.QueryRowContext(ctx, query,
		rec.ID,
		rec.PatientName,
		rec.PatientAge,
		rec.PatientDisease,
		rec.Date,
		rec.Time,
		rec.Type,
		rec.Status,
		rec.Reason,
		rec.Doctor,
		rec.Notes,
		time.Now().UTC(),
	)

	upserted, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert appointment: %w", err)
	}
	return upserted, nil
}

func (r *Repository) queryRecords(ctx context.Context, query string, args ...interface{}) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		records = append(records, *rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating appointments: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var notes sql.NullString
	var updatedAt sql.NullTime

	err := row.Scan(
		&rec.ID,
		&rec.PatientName,
		&rec.PatientAge,
		&rec.PatientDisease,
		&rec.Date,
		&rec.Time,
		&rec.Type,
		&rec.Status,
		&rec.Reason,
		&rec.Doctor,
		&notes,
		&rec.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if notes.Valid {
		rec.Notes = notes.String
	}
	if updatedAt.Valid {
		rec.UpdatedAt = &updatedAt.Time
	}
	return &rec, nil
}
