package service

import (
	"context"
	"log/slog"

	"github.com/obeidat/fahs/internal/domain"
)

// clientRepository is the subset of store.ClientStore that ClientService
// requires.
type clientRepository interface {
	List(ctx context.Context) ([]*domain.Client, error)
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	Save(ctx context.Context, c *domain.Client) error
	Delete(ctx context.Context, id string) error
}

type ClientService struct {
	store  clientRepository
	logger *slog.Logger
}

func NewClientService(store clientRepository, logger *slog.Logger) *ClientService {
	return &ClientService{store: store, logger: logger}
}

// NewDraft returns a freshly defaulted client with no properties.
func (s *ClientService) NewDraft() *domain.Client {
	return &domain.Client{
		ID:         newRecordID(),
		CreatedAt:  today(),
		Properties: []domain.Property{},
	}
}

func (s *ClientService) Save(ctx context.Context, c *domain.Client) error {
	if err := requireField("name", c.Name); err != nil {
		return err
	}

	if c.ID == "" {
		c.ID = newRecordID()
	}
	if c.CreatedAt == "" {
		c.CreatedAt = today()
	}
	for i := range c.Properties {
		if c.Properties[i].ID == "" {
			c.Properties[i].ID = newNestedID()
		}
	}

	if err := s.store.Save(ctx, c); err != nil {
		return err
	}
	s.logger.Info("client saved", "id", c.ID, "properties", len(c.Properties))
	return nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*domain.Client, error) {
	return s.store.GetByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.store.List(ctx)
}

func (s *ClientService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
