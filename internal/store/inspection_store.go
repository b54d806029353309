package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/obeidat/fahs/internal/domain"
)

// InspectionStore persists whole inspection records as JSON, keyed by id.
// Saves replace the full record; there is no partial update.
type InspectionStore struct {
	db *sql.DB
}

func NewInspectionStore(db *sql.DB) *InspectionStore {
	return &InspectionStore{db: db}
}

// List returns all inspections, most recent inspection date first. When some
// rows fail to decode the good records are still returned, together with a
// *CorruptError naming the bad ids.
func (s *InspectionStore) List(ctx context.Context) ([]*domain.Inspection, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, data FROM inspections ORDER BY record_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inspections: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var (
		inspections []*domain.Inspection
		corruptIDs  []string
	)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan inspection: %w", err)
		}
		insp := &domain.Inspection{}
		if err := json.Unmarshal([]byte(data), insp); err != nil {
			slog.Error("corrupt inspection record", "id", id, "error", err)
			corruptIDs = append(corruptIDs, id)
			continue
		}
		inspections = append(inspections, insp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating inspections: %w", err)
	}

	return inspections, corruptOrNil("inspections", corruptIDs)
}

func (s *InspectionStore) GetByID(ctx context.Context, id string) (*domain.Inspection, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM inspections WHERE id = ?
	`, id).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inspection: %w", err)
	}

	insp := &domain.Inspection{}
	if err := json.Unmarshal([]byte(data), insp); err != nil {
		return nil, &CorruptError{Collection: "inspections", IDs: []string{id}}
	}
	return insp, nil
}

// Save upserts the full record by id. The inspection date is denormalized
// into its own column so lists can sort without decoding every record.
func (s *InspectionStore) Save(ctx context.Context, insp *domain.Inspection) error {
	data, err := json.Marshal(insp)
	if err != nil {
		return fmt.Errorf("failed to encode inspection: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO inspections (id, record_date, data) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET record_date = excluded.record_date, data = excluded.data
	`, insp.ID, insp.InspectionDate, string(data))
	if err != nil {
		return fmt.Errorf("failed to save inspection: %w", err)
	}
	return nil
}

func (s *InspectionStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM inspections WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inspection: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("inspection not found")
	}
	return nil
}
