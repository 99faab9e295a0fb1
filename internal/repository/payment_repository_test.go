package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rento-service/internal/models"
)

func TestListPaymentsNewestFirst(t *testing.T) {
	repo := NewPaymentRepository(newTestDB(t))
	tenant := uuid.New()
	property := uuid.New()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i, period := range []string{"2026-06", "2026-07", "2026-08"} {
		require.NoError(t, repo.CreatePayment(context.Background(), &models.Payment{
			TenantID:   tenant,
			PropertyID: property,
			Amount:     850,
			Period:     period,
			Status:     "paid",
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, repo.CreatePayment(context.Background(), &models.Payment{
		TenantID:   uuid.New(),
		PropertyID: property,
		Amount:     900,
		Period:     "2026-08",
		CreatedAt:  base.Add(4 * time.Hour),
	}))

	byTenant, err := repo.ListPaymentsByTenant(context.Background(), tenant)
	require.NoError(t, err)
	require.Len(t, byTenant, 3)
	assert.Equal(t, "2026-08", byTenant[0].Period)
	assert.Equal(t, "2026-06", byTenant[2].Period)

	byProperty, err := repo.ListPaymentsByProperty(context.Background(), property)
	require.NoError(t, err)
	assert.Len(t, byProperty, 4)
}

func TestListExpensesByIncurredAt(t *testing.T) {
	repo := NewPaymentRepository(newTestDB(t))
	tenant := uuid.New()
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateExpense(context.Background(), &models.Expense{
		TenantID:   tenant,
		Category:   "utilities",
		Amount:     60,
		IncurredAt: base,
	}))
	require.NoError(t, repo.CreateExpense(context.Background(), &models.Expense{
		TenantID:   tenant,
		Category:   "groceries",
		Amount:     120,
		IncurredAt: base.Add(72 * time.Hour),
	}))

	got, err := repo.ListExpensesByTenant(context.Background(), tenant)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "groceries", got[0].Category)
}
