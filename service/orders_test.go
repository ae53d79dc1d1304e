package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cocktail-bar-api/models"
	"cocktail-bar-api/repository"
)

func newOrders(requireKnown bool) (*OrderService, *repository.MemoryOrderRepository, *repository.MemoryCocktailRepository) {
	orders := repository.NewMemoryOrderRepository()
	cocktails := repository.NewMemoryCocktailRepository()
	return NewOrderService(orders, cocktails, requireKnown), orders, cocktails
}

func validOrder() OrderInput {
	return OrderInput{
		TableNumber: 5,
		Items:       []OrderItemInput{{CocktailID: 1, Quantity: 1}},
	}
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrders(false)

	in := validOrder()
	in.Status = models.StatusCompleted
	order, err := svc.Create(ctx, in, nil)
	require.NoError(t, err)
	assert.NotZero(t, order.ID)
	assert.Equal(t, models.StatusPending, order.Status, "client status is ignored")
	assert.Equal(t, 5, order.TableNumber)
	require.Len(t, order.Items, 1)

	history, err := svc.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.StatusPending, history[0].ToStatus)
	assert.Nil(t, history[0].ChangedBy)
}

func TestCreateOrderValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrders(false)

	tests := []struct {
		name string
		in   OrderInput
	}{
		{"empty", OrderInput{}},
		{"no table", OrderInput{Items: []OrderItemInput{{CocktailID: 1, Quantity: 1}}}},
		{"negative table", OrderInput{TableNumber: -2, Items: []OrderItemInput{{CocktailID: 1, Quantity: 1}}}},
		{"no items", OrderInput{TableNumber: 3}},
		{"missing cocktail", OrderInput{TableNumber: 3, Items: []OrderItemInput{{Quantity: 1}}}},
		{"zero quantity", OrderInput{TableNumber: 3, Items: []OrderItemInput{{CocktailID: 1}}}},
		{"one bad item among good", OrderInput{TableNumber: 3, Items: []OrderItemInput{
			{CocktailID: 1, Quantity: 2},
			{CocktailID: 2, Quantity: -1},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.in, nil)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	orders, err := svc.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, orders, "rejected orders must not be stored")
}

func TestCreateOrderRequiresKnownCocktails(t *testing.T) {
	ctx := context.Background()
	svc, _, cocktails := newOrders(true)

	_, err := svc.Create(ctx, validOrder(), nil)
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, cocktails.Create(ctx, &models.Cocktail{
		Name:     "Mojito",
		Price:    decimal.NewFromInt(8),
		Category: models.CategoryCocktail,
		Status:   models.CocktailActive,
	}))
	_, err = svc.Create(ctx, validOrder(), nil)
	assert.NoError(t, err)
}

func TestUpdateOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrders(false)
	order, err := svc.Create(ctx, validOrder(), nil)
	require.NoError(t, err)

	t.Run("payload is validated before existence", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, OrderInput{}, 1)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, validOrder(), 1)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("undeclared status", func(t *testing.T) {
		in := validOrder()
		in.Status = "Lost"
		_, err := svc.Update(ctx, order.ID, in, 1)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty status keeps current", func(t *testing.T) {
		in := OrderInput{TableNumber: 9, Items: []OrderItemInput{{CocktailID: 4, Quantity: 2}, {CocktailID: 5, Quantity: 1}}}
		updated, err := svc.Update(ctx, order.ID, in, 1)
		require.NoError(t, err)
		assert.Equal(t, models.StatusPending, updated.Status)
		assert.Equal(t, 9, updated.TableNumber)
		require.Len(t, updated.Items, 2)
		assert.Equal(t, uint(4), updated.Items[0].CocktailID)
	})

	t.Run("status change is recorded", func(t *testing.T) {
		in := validOrder()
		in.Status = models.StatusServed
		updated, err := svc.Update(ctx, order.ID, in, 7)
		require.NoError(t, err)
		assert.Equal(t, models.StatusServed, updated.Status)

		history, err := svc.History(ctx, order.ID)
		require.NoError(t, err)
		last := history[len(history)-1]
		assert.Equal(t, models.StatusPending, last.FromStatus)
		assert.Equal(t, models.StatusServed, last.ToStatus)
		require.NotNil(t, last.ChangedBy)
		assert.Equal(t, uint(7), *last.ChangedBy)
	})

	t.Run("invalid update leaves the order unchanged", func(t *testing.T) {
		before, err := svc.Get(ctx, order.ID)
		require.NoError(t, err)

		_, err = svc.Update(ctx, order.ID, OrderInput{TableNumber: 2, Items: []OrderItemInput{{CocktailID: 1, Quantity: 0}}}, 1)
		assert.ErrorIs(t, err, ErrValidation)

		after, err := svc.Get(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, before.TableNumber, after.TableNumber)
		assert.Equal(t, before.Items, after.Items)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrders(false)
	order, err := svc.Create(ctx, validOrder(), nil)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, order.ID, "", "", 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, order.ID, "Teleported", "", 1)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, 999, models.StatusCompleted, "", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateStatus(ctx, 999, "", "", 1)
	assert.ErrorIs(t, err, ErrValidation, "missing status wins over missing order")

	updated, err := svc.UpdateStatus(ctx, order.ID, models.StatusCompleted, "paid", 3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)

	// No terminal state: a completed order can go back to pending.
	updated, err = svc.UpdateStatus(ctx, order.ID, models.StatusPending, "", 3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)

	history, err := svc.History(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "paid", history[1].Note)

	same, err := svc.UpdateStatus(ctx, order.ID, models.StatusPending, "", 3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, same.Status)
	history, err = svc.History(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, history, 3, "re-applying the current status records nothing")
}

func TestDeleteOrder(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrders(false)
	order, err := svc.Create(ctx, validOrder(), nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, order.ID))
	assert.ErrorIs(t, svc.Delete(ctx, order.ID), ErrNotFound)
	_, err = svc.Get(ctx, order.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOrdersAndSummary(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newOrders(false)

	first, err := svc.Create(ctx, validOrder(), nil)
	require.NoError(t, err)
	second, err := svc.Create(ctx, OrderInput{TableNumber: 2, Items: []OrderItemInput{{CocktailID: 3, Quantity: 1}}}, nil)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, first.ID, models.StatusPreparing, "", 1)
	require.NoError(t, err)

	all, err := svc.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	preparing, err := svc.List(ctx, repository.OrderFilter{Status: models.StatusPreparing})
	require.NoError(t, err)
	require.Len(t, preparing, 1)
	assert.Equal(t, first.ID, preparing[0].ID)

	_, err = svc.List(ctx, repository.OrderFilter{Status: "Nope"})
	assert.ErrorIs(t, err, ErrValidation)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Total)
	assert.Equal(t, int64(1), summary.ByStatus[models.StatusPending])
	assert.Equal(t, int64(1), summary.ByStatus[models.StatusPreparing])
	assert.Equal(t, int64(0), summary.ByStatus[models.StatusCancelled])
	assert.Len(t, summary.ByStatus, 6)
}
