package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/obeidat/fahs/internal/domain"
)

// ClientStore persists whole client records (including their properties) as
// JSON, keyed by id.
type ClientStore struct {
	db *sql.DB
}

func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

// List returns all clients, most recently created first.
func (s *ClientStore) List(ctx context.Context) ([]*domain.Client, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, data FROM clients ORDER BY record_date DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var (
		clients    []*domain.Client
		corruptIDs []string
	)
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		c := &domain.Client{}
		if err := json.Unmarshal([]byte(data), c); err != nil {
			slog.Error("corrupt client record", "id", id, "error", err)
			corruptIDs = append(corruptIDs, id)
			continue
		}
		clients = append(clients, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, corruptOrNil("clients", corruptIDs)
}

func (s *ClientStore) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT data FROM clients WHERE id = ?
	`, id).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	c := &domain.Client{}
	if err := json.Unmarshal([]byte(data), c); err != nil {
		return nil, &CorruptError{Collection: "clients", IDs: []string{id}}
	}
	return c, nil
}

func (s *ClientStore) Save(ctx context.Context, c *domain.Client) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode client: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO clients (id, record_date, data) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET record_date = excluded.record_date, data = excluded.data
	`, c.ID, c.CreatedAt, string(data))
	if err != nil {
		return fmt.Errorf("failed to save client: %w", err)
	}
	return nil
}

func (s *ClientStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM clients WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("client not found")
	}
	return nil
}
