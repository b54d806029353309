package service

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obeidat/fahs/internal/db"
	"github.com/obeidat/fahs/internal/domain"
	"github.com/obeidat/fahs/internal/store"
)

func TestDashboardOverview(t *testing.T) {
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	inspStore := store.NewInspectionStore(d)
	clientStore := store.NewClientStore(d)
	invStore := store.NewInvoiceStore(d)
	ctx := context.Background()

	require.NoError(t, inspStore.Save(ctx, &domain.Inspection{
		ID: "1", InspectionDate: "2026-02-10",
		Areas: []domain.Area{{ID: "a1", Items: []domain.Item{
			{ID: "i1", Status: domain.StatusPass},
			{ID: "i2", Status: domain.StatusFail},
			{ID: "i3", Status: domain.StatusNotApplicable},
		}}},
	}))
	require.NoError(t, inspStore.Save(ctx, &domain.Inspection{ID: "2", InspectionDate: "2026-02-20"}))
	require.NoError(t, inspStore.Save(ctx, &domain.Inspection{ID: "3", InspectionDate: "2026-03-01"}))

	require.NoError(t, clientStore.Save(ctx, &domain.Client{ID: "c1", Name: "X", CreatedAt: "2026-01-01"}))

	inv := domain.Invoice{
		ID: "v1", InvoiceDate: "2026-03-02", Status: domain.InvoicePartial,
		AmountPaid: decimal.NewFromInt(100),
		Services:   []domain.ServiceLine{{ID: "s1", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(200)}},
	}.Recalculate()
	require.NoError(t, invStore.Save(ctx, &inv))

	svc := NewDashboardService(inspStore, clientStore, invStore, slog.Default())
	o, err := svc.Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, o.InspectionCount)
	assert.Equal(t, 1, o.ClientCount)
	assert.Equal(t, 1, o.InvoiceCount)
	require.NotEmpty(t, o.RecentInspections)
	assert.Equal(t, "3", o.RecentInspections[0].ID)

	assert.Equal(t, ItemTally{Pass: 1, Fail: 1, NotApplicable: 1}, o.ItemTally)

	require.Len(t, o.InspectionsByMonth, 2)
	assert.Equal(t, MonthCount{Month: "2026-02", Count: 2}, o.InspectionsByMonth[0])
	assert.Equal(t, MonthCount{Month: "2026-03", Count: 1}, o.InspectionsByMonth[1])

	assert.True(t, o.Revenue.Billed.Equal(decimal.NewFromInt(210)))
	assert.True(t, o.Revenue.Collected.Equal(decimal.NewFromInt(100)))
	assert.True(t, o.Revenue.Outstanding.Equal(decimal.NewFromInt(110)))
	assert.Equal(t, 1, o.InvoiceStatuses[domain.InvoicePartial])
}

func TestDashboardToleratesCorruptRows(t *testing.T) {
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, d.Close()) })

	inspStore := store.NewInspectionStore(d)
	ctx := context.Background()
	require.NoError(t, inspStore.Save(ctx, &domain.Inspection{ID: "1", InspectionDate: "2026-02-10"}))
	_, err = d.Exec(`INSERT INTO inspections (id, record_date, data) VALUES ('bad', '', 'nope')`)
	require.NoError(t, err)

	svc := NewDashboardService(inspStore, store.NewClientStore(d), store.NewInvoiceStore(d), slog.Default())
	o, err := svc.Overview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, o.InspectionCount)
}
