package doctor

import (
	"context"
	"database/sql"
	"fmt"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListNames returns the distinct doctor names already present on
// appointments. Used as the directory fallback when the identity provider is
// unreachable, so the form's doctor list never comes back empty on an
// established install.
func (r *Repository) ListNames(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT doctor
		FROM carebridge.appointments
		WHERE deleted_at IS NULL AND doctor <> ''
		ORDER BY doctor ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query doctor names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan doctor name: %w", err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating doctor names: %w", err)
	}

	return names, nil
}
