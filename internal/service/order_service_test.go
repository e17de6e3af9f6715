package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoplane/shoplane-api/internal/models"
	"github.com/shoplane/shoplane-api/internal/service"
	"github.com/shoplane/shoplane-api/internal/utils"
)

func newOrderFixture(t *testing.T) (*service.OrderService, *memProductRepo, *memOrderRepo, models.Category) {
	t.Helper()
	productRepo := newMemProductRepo()
	orderRepo := newMemOrderRepo()
	categoryRepo := newMemCategoryRepo()
	cat := categoryRepo.seed(models.Category{Name: "Electronics", Slug: "electronics", Active: true})
	return service.NewOrderService(orderRepo, productRepo), productRepo, orderRepo, cat
}

func TestCreateOrder_DecrementsAndSnapshots(t *testing.T) {
	svc, productRepo, _, cat := newOrderFixture(t)
	ctx := context.Background()

	mouse := seedProduct(productRepo, cat.ID, "MOUSE", 25, func(p *models.Product) { p.Inventory = 10 })
	keyboard := seedProduct(productRepo, cat.ID, "KB", 60, func(p *models.Product) { p.Inventory = 4 })

	order, err := svc.CreateOrder(ctx, "user-1", []service.OrderItemInput{
		{ProductID: mouse.ID, Quantity: 2},
		{ProductID: keyboard.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 110.0, order.Total) // 2*25 + 1*60

	require.Len(t, order.Items, 2)
	assert.Equal(t, mouse.Name, order.Items[0].Name)
	assert.Equal(t, 25.0, order.Items[0].Price)
	assert.Equal(t, 2, order.Items[0].Quantity)

	afterMouse, err := productRepo.GetByID(ctx, mouse.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, afterMouse.Inventory)
	afterKB, err := productRepo.GetByID(ctx, keyboard.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, afterKB.Inventory)
}

func TestCreateOrder_InsufficientInventory(t *testing.T) {
	svc, productRepo, _, cat := newOrderFixture(t)
	ctx := context.Background()

	p := seedProduct(productRepo, cat.ID, "LOW", 10, func(p *models.Product) { p.Inventory = 2 })

	_, err := svc.CreateOrder(ctx, "user-1", []service.OrderItemInput{
		{ProductID: p.ID, Quantity: 3},
	})
	assert.ErrorIs(t, err, utils.ErrInsufficientInventory)

	// The failed decrement left the record untouched.
	after, err := productRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Inventory)
}

func TestCreateOrder_Validation(t *testing.T) {
	svc, productRepo, _, cat := newOrderFixture(t)
	ctx := context.Background()

	_, err := svc.CreateOrder(ctx, "user-1", nil)
	assert.ErrorContains(t, err, "no order items")

	p := seedProduct(productRepo, cat.ID, "Q1", 10, nil)
	_, err = svc.CreateOrder(ctx, "user-1", []service.OrderItemInput{{ProductID: p.ID, Quantity: 0}})
	assert.ErrorContains(t, err, "quantity must be positive")

	_, err = svc.CreateOrder(ctx, "user-1", []service.OrderItemInput{{ProductID: "missing", Quantity: 1}})
	assert.ErrorIs(t, err, utils.ErrProductNotFound)
}

func TestGetOrder_Visibility(t *testing.T) {
	svc, productRepo, _, cat := newOrderFixture(t)
	ctx := context.Background()

	p := seedProduct(productRepo, cat.ID, "V1", 10, nil)
	order, err := svc.CreateOrder(ctx, "owner", []service.OrderItemInput{{ProductID: p.ID, Quantity: 1}})
	require.NoError(t, err)

	// Owner sees it.
	got, err := svc.GetOrder(ctx, order.ID, "owner", false)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// Admin sees it too.
	got, err = svc.GetOrder(ctx, order.ID, "someone-else", true)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	// Anyone else gets a not-found, not a forbidden.
	_, err = svc.GetOrder(ctx, order.ID, "someone-else", false)
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)

	_, err = svc.GetOrder(ctx, "missing", "owner", false)
	assert.ErrorIs(t, err, utils.ErrOrderNotFound)
}

func TestListOrders_OwnOrdersOnly(t *testing.T) {
	svc, productRepo, _, cat := newOrderFixture(t)
	ctx := context.Background()

	p := seedProduct(productRepo, cat.ID, "L1", 10, func(p *models.Product) { p.Inventory = 100 })
	for _, user := range []string{"alice", "alice", "bob"} {
		_, err := svc.CreateOrder(ctx, user, []service.OrderItemInput{{ProductID: p.ID, Quantity: 1}})
		require.NoError(t, err)
	}

	orders, err := svc.ListOrders(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	for _, o := range orders {
		assert.Equal(t, "alice", o.UserID)
	}
}
