package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obeidat/fahs/internal/domain"
)

func sampleClient(id, createdAt string) *domain.Client {
	return &domain.Client{
		ID:        id,
		Name:      "Al Noor Holdings",
		Email:     "office@alnoor.example",
		Phone:     "+971 50 000 0000",
		Address:   "PO Box 1142, Dubai",
		CreatedAt: createdAt,
		Properties: []domain.Property{
			{ID: "p1", Location: "Marina Tower 4, Apt 1203", Type: domain.UseResidential, Size: decimal.NewFromInt(120)},
			{ID: "p2", Location: "Warehouse 9, Al Quoz", Type: domain.UseCommercial, Size: decimal.NewFromInt(800)},
		},
	}
}

func TestClientRoundTrip(t *testing.T) {
	s := NewClientStore(openTestDB(t))
	ctx := context.Background()

	c := sampleClient("1700000000002", "2026-03-01")
	require.NoError(t, s.Save(ctx, c))

	got, err := s.GetByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, c.Name, got.Name)
	require.Len(t, got.Properties, 2)
	assert.True(t, got.Properties[1].Size.Equal(decimal.NewFromInt(800)))
}

func TestClientSaveIsUpsert(t *testing.T) {
	s := NewClientStore(openTestDB(t))
	ctx := context.Background()

	c := sampleClient("1", "2026-03-01")
	require.NoError(t, s.Save(ctx, c))
	c.Phone = "+971 50 111 1111"
	require.NoError(t, s.Save(ctx, c))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "+971 50 111 1111", list[0].Phone)
}

func TestClientListOrderAndDelete(t *testing.T) {
	s := NewClientStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleClient("1", "2026-01-01")))
	require.NoError(t, s.Save(ctx, sampleClient("2", "2026-02-01")))

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[0].ID)

	require.NoError(t, s.Delete(ctx, "2"))
	list, err = s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)

	assert.Error(t, s.Delete(ctx, "2"))
}
