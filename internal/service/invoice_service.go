package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/obeidat/fahs/internal/domain"
)

// invoiceRepository is the subset of store.InvoiceStore that InvoiceService
// requires.
type invoiceRepository interface {
	List(ctx context.Context) ([]*domain.Invoice, error)
	GetByID(ctx context.Context, id string) (*domain.Invoice, error)
	Save(ctx context.Context, inv *domain.Invoice) error
	Delete(ctx context.Context, id string) error
}

type InvoiceService struct {
	store   invoiceRepository
	clients clientRepository
	logger  *slog.Logger
}

func NewInvoiceService(store invoiceRepository, clients clientRepository, logger *slog.Logger) *InvoiceService {
	return &InvoiceService{store: store, clients: clients, logger: logger}
}

// NewDraft returns an empty invoice draft: new id, today's date, draft
// status, classic template, no service lines.
func (s *InvoiceService) NewDraft() *domain.Invoice {
	id := newRecordID()
	inv := domain.Invoice{
		ID:            id,
		InvoiceNumber: "INV-" + id,
		InvoiceDate:   today(),
		Status:        domain.InvoiceDraft,
		Template:      domain.TemplateClassic,
		AmountPaid:    decimal.Zero,
		Services:      []domain.ServiceLine{},
	}.Recalculate()
	return &inv
}

// NewDraftForProperty builds a draft against one of a client's properties:
// the client contact fields are snapshotted onto the invoice (later client
// edits do not flow back) and a single service line is auto-populated with
// quantity = property size and the per-square-meter rate for its use.
func (s *InvoiceService) NewDraftForProperty(ctx context.Context, clientID, propertyID string) (*domain.Invoice, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}

	var property *domain.Property
	for i := range client.Properties {
		if client.Properties[i].ID == propertyID {
			property = &client.Properties[i]
			break
		}
	}
	if property == nil {
		return nil, fmt.Errorf("property not found")
	}

	inv := s.NewDraft()
	inv.ClientID = client.ID
	inv.ClientName = client.Name
	inv.ClientAddress = client.Address
	inv.ClientEmail = client.Email
	inv.PropertyLocation = property.Location

	rate := domain.UnitRate(property.Type)
	line := domain.ServiceLine{
		ID:          newNestedID(),
		Description: fmt.Sprintf("%s property inspection - %s", property.Type, property.Location),
		Quantity:    property.Size,
		UnitPrice:   rate,
	}
	*inv = inv.UpsertService(line).Recalculate()
	return inv, nil
}

// Save recalculates derived totals and persists the whole record. Totals are
// always rederived here so a client can never save stale or tampered math.
func (s *InvoiceService) Save(ctx context.Context, inv *domain.Invoice) error {
	if err := requireField("clientName", inv.ClientName); err != nil {
		return err
	}
	if err := requireField("invoiceNumber", inv.InvoiceNumber); err != nil {
		return err
	}

	if inv.ID == "" {
		inv.ID = newRecordID()
	}
	if inv.InvoiceDate == "" {
		inv.InvoiceDate = today()
	}
	if inv.Status == "" {
		inv.Status = domain.InvoiceDraft
	}
	if inv.Template == "" {
		inv.Template = domain.TemplateClassic
	}
	for i := range inv.Services {
		if inv.Services[i].ID == "" {
			inv.Services[i].ID = newNestedID()
		}
	}

	*inv = inv.Recalculate()
	inv.Status = inv.DeriveStatus()

	if err := s.store.Save(ctx, inv); err != nil {
		return err
	}
	s.logger.Info("invoice saved", "id", inv.ID, "number", inv.InvoiceNumber,
		"total", inv.TotalAmount.String(), "status", inv.Status)
	return nil
}

func (s *InvoiceService) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.store.GetByID(ctx, id)
}

func (s *InvoiceService) List(ctx context.Context) ([]*domain.Invoice, error) {
	return s.store.List(ctx)
}

func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
