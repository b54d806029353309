package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/obeidat/fahs/internal/domain"
	"github.com/obeidat/fahs/internal/store"
)

type DashboardService struct {
	inspections inspectionRepository
	clients     clientRepository
	invoices    invoiceRepository
	logger      *slog.Logger
}

func NewDashboardService(
	inspections inspectionRepository,
	clients clientRepository,
	invoices invoiceRepository,
	logger *slog.Logger,
) *DashboardService {
	return &DashboardService{
		inspections: inspections,
		clients:     clients,
		invoices:    invoices,
		logger:      logger,
	}
}

type ItemTally struct {
	Pass          int `json:"pass"`
	Fail          int `json:"fail"`
	NotApplicable int `json:"notApplicable"`
}

type MonthCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

type Revenue struct {
	Billed      decimal.Decimal `json:"billed"`
	Collected   decimal.Decimal `json:"collected"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

type Overview struct {
	InspectionCount    int                          `json:"inspectionCount"`
	ClientCount        int                          `json:"clientCount"`
	InvoiceCount       int                          `json:"invoiceCount"`
	RecentInspections  []*domain.Inspection         `json:"recentInspections"`
	ItemTally          ItemTally                    `json:"itemTally"`
	InspectionsByMonth []MonthCount                 `json:"inspectionsByMonth"`
	Revenue            Revenue                      `json:"revenue"`
	InvoiceStatuses    map[domain.InvoiceStatus]int `json:"invoiceStatuses"`
}

const recentLimit = 5

// Overview aggregates all three collections into the dashboard feed. Corrupt
// records are logged and excluded from the aggregates rather than failing the
// whole dashboard.
func (s *DashboardService) Overview(ctx context.Context) (*Overview, error) {
	inspections, err := s.inspections.List(ctx)
	if err := s.tolerateCorrupt(err); err != nil {
		return nil, err
	}
	clients, err := s.clients.List(ctx)
	if err := s.tolerateCorrupt(err); err != nil {
		return nil, err
	}
	invoices, err := s.invoices.List(ctx)
	if err := s.tolerateCorrupt(err); err != nil {
		return nil, err
	}

	o := &Overview{
		InspectionCount: len(inspections),
		ClientCount:     len(clients),
		InvoiceCount:    len(invoices),
		InvoiceStatuses: map[domain.InvoiceStatus]int{},
		Revenue: Revenue{
			Billed:      decimal.Zero,
			Collected:   decimal.Zero,
			Outstanding: decimal.Zero,
		},
	}

	o.RecentInspections = inspections
	if len(o.RecentInspections) > recentLimit {
		o.RecentInspections = o.RecentInspections[:recentLimit]
	}

	byMonth := map[string]int{}
	for _, insp := range inspections {
		if len(insp.InspectionDate) >= 7 {
			byMonth[insp.InspectionDate[:7]]++
		}
		for _, area := range insp.Areas {
			for _, item := range area.Items {
				switch item.Status {
				case domain.StatusPass:
					o.ItemTally.Pass++
				case domain.StatusFail:
					o.ItemTally.Fail++
				case domain.StatusNotApplicable:
					o.ItemTally.NotApplicable++
				}
			}
		}
	}
	for month, count := range byMonth {
		o.InspectionsByMonth = append(o.InspectionsByMonth, MonthCount{Month: month, Count: count})
	}
	sort.Slice(o.InspectionsByMonth, func(i, j int) bool {
		return o.InspectionsByMonth[i].Month < o.InspectionsByMonth[j].Month
	})

	for _, inv := range invoices {
		o.InvoiceStatuses[inv.Status]++
		o.Revenue.Billed = o.Revenue.Billed.Add(inv.TotalAmount)
		o.Revenue.Collected = o.Revenue.Collected.Add(inv.AmountPaid)
	}
	o.Revenue.Outstanding = o.Revenue.Billed.Sub(o.Revenue.Collected)

	return o, nil
}

// tolerateCorrupt swallows CorruptError (already logged at the store level)
// and propagates anything else.
func (s *DashboardService) tolerateCorrupt(err error) error {
	if err == nil {
		return nil
	}
	var corrupt *store.CorruptError
	if errors.As(err, &corrupt) {
		s.logger.Warn("dashboard excluding corrupt records",
			"collection", corrupt.Collection, "count", len(corrupt.IDs))
		return nil
	}
	return err
}
