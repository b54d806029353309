package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/obeidat/fahs/internal/ai"
	"github.com/obeidat/fahs/internal/domain"
)

// inspectionRepository is the subset of store.InspectionStore that
// InspectionService requires.
type inspectionRepository interface {
	List(ctx context.Context) ([]*domain.Inspection, error)
	GetByID(ctx context.Context, id string) (*domain.Inspection, error)
	Save(ctx context.Context, insp *domain.Inspection) error
	Delete(ctx context.Context, id string) error
}

type InspectionService struct {
	store     inspectionRepository
	assistant ai.Assistant
	logger    *slog.Logger
}

func NewInspectionService(store inspectionRepository, assistant ai.Assistant, logger *slog.Logger) *InspectionService {
	return &InspectionService{store: store, assistant: assistant, logger: logger}
}

// NewDraft returns a freshly defaulted inspection: new id, today's date,
// empty areas. Nothing is persisted until Save.
func (s *InspectionService) NewDraft() *domain.Inspection {
	return &domain.Inspection{
		ID:             newRecordID(),
		PropertyType:   domain.PropertyApartment,
		InspectionDate: today(),
		Areas:          []domain.Area{},
	}
}

// Save validates required fields, assigns any missing ids, and persists the
// whole record (upsert).
func (s *InspectionService) Save(ctx context.Context, insp *domain.Inspection) error {
	if err := requireField("clientName", insp.ClientName); err != nil {
		return err
	}
	if err := requireField("propertyLocation", insp.PropertyLocation); err != nil {
		return err
	}
	if err := requireField("inspectorName", insp.InspectorName); err != nil {
		return err
	}

	if insp.ID == "" {
		insp.ID = newRecordID()
	}
	if insp.InspectionDate == "" {
		insp.InspectionDate = today()
	}
	fillInspectionIDs(insp)

	if err := s.store.Save(ctx, insp); err != nil {
		return err
	}
	s.logger.Info("inspection saved", "id", insp.ID, "areas", len(insp.Areas))
	return nil
}

func (s *InspectionService) Get(ctx context.Context, id string) (*domain.Inspection, error) {
	return s.store.GetByID(ctx, id)
}

func (s *InspectionService) List(ctx context.Context) ([]*domain.Inspection, error) {
	return s.store.List(ctx)
}

// ListByPropertyType filters the date-descending list down to one property
// type, preserving relative order. A CorruptError from the store passes
// through alongside the filtered records.
func (s *InspectionService) ListByPropertyType(ctx context.Context, t domain.PropertyType) ([]*domain.Inspection, error) {
	list, err := s.store.List(ctx)
	if list == nil {
		return nil, err
	}
	filtered := make([]*domain.Inspection, 0, len(list))
	for _, insp := range list {
		if insp.PropertyType == t {
			filtered = append(filtered, insp)
		}
	}
	return filtered, err
}

func (s *InspectionService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// FailedFindings flattens the inspection's failed items, carrying area
// context, in document order.
func FailedFindings(insp *domain.Inspection) []ai.FailedFinding {
	var findings []ai.FailedFinding
	for _, area := range insp.Areas {
		for _, item := range area.Items {
			if item.Status != domain.StatusFail {
				continue
			}
			findings = append(findings, ai.FailedFinding{
				Area:     area.Name,
				Category: item.Category,
				Point:    item.Point,
				Location: item.Location,
				Comments: item.Comments,
			})
		}
	}
	return findings
}

// GenerateSummary asks the AI gateway for a narrative over the inspection's
// failed items and persists it back into the record. With no failed items the
// gateway is not called and a fixed clean-bill line is stored instead.
func (s *InspectionService) GenerateSummary(ctx context.Context, id string) (*domain.Inspection, error) {
	insp, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if insp == nil {
		return nil, fmt.Errorf("inspection not found")
	}

	findings := FailedFindings(insp)
	var summary string
	if len(findings) == 0 {
		summary = "No failed items were recorded during this inspection. The property was found in satisfactory condition at the time of the visit."
	} else {
		s.logger.Info("ai summary started", "inspection_id", id, "failed_items", len(findings))
		summary, err = s.assistant.SummarizeFindings(ctx, findings)
		if err != nil {
			return nil, fmt.Errorf("failed to generate summary: %w", err)
		}
	}

	insp.AISummary = summary
	if err := s.store.Save(ctx, insp); err != nil {
		return nil, fmt.Errorf("failed to persist summary: %w", err)
	}
	s.logger.Info("ai summary stored", "inspection_id", id, "length", len(summary))
	return insp, nil
}

func fillInspectionIDs(insp *domain.Inspection) {
	for a := range insp.Areas {
		area := &insp.Areas[a]
		if area.ID == "" {
			area.ID = newNestedID()
		}
		for i := range area.Items {
			item := &area.Items[i]
			if item.ID == "" {
				item.ID = newNestedID()
			}
			for p := range item.Photos {
				if item.Photos[p].ID == "" {
					item.Photos[p].ID = newNestedID()
				}
			}
		}
	}
}
