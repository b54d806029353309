package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/obeidat/fahs/internal/domain"
)

// InvoiceStore persists whole invoice records as JSON, keyed by id.
type InvoiceStore struct {
	db *sql.DB
}

func NewInvoiceStore(db *sql.DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

// List returns all invoices, most recent invoice date first.
func (s *InvoiceStore) List(ctx context.Context) ([]*domain.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, data FROM invoices ORDER BY record_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var (
		invoices   []*domain.Invoice
		corruptIDs []string
	)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		inv := &domain.Invoice{}
		if err := json.Unmarshal([]byte(data), inv); err != nil {
			slog.Error("corrupt invoice record", "id", id, "error", err)
			corruptIDs = append(corruptIDs, id)
			continue
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, corruptOrNil("invoices", corruptIDs)
}

func (s *InvoiceStore) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM invoices WHERE id = ?
	`, id).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	inv := &domain.Invoice{}
	if err := json.Unmarshal([]byte(data), inv); err != nil {
		return nil, &CorruptError{Collection: "invoices", IDs: []string{id}}
	}
	return inv, nil
}

func (s *InvoiceStore) Save(ctx context.Context, inv *domain.Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("failed to encode invoice: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO invoices (id, record_date, data) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET record_date = excluded.record_date, data = excluded.data
	`, inv.ID, inv.InvoiceDate, string(data))
	if err != nil {
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return nil
}

func (s *InvoiceStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM invoices WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("invoice not found")
	}
	return nil
}
