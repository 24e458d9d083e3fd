package controller_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tabledine/Table_Ordering_Backend/models"
)

func TestCheckoutCreatesOrderWithItemsAtomically(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createUser("alice")
	pizza := env.createItem(owner, "Pizza", "10.00", true)
	soda := env.createItem(owner, "Soda", "2.50", true)

	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", pizza.ID), nil, "")
	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", pizza.ID), nil, "")
	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", soda.ID), nil, "")

	recorder := env.do(http.MethodPost, "/checkout", nil, "")
	require.Equal(t, http.StatusCreated, recorder.Code)
	payload := env.decode(recorder)
	data := payload["data"].(map[string]interface{})
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, false, data["is_paid"])

	var orders []models.Order
	require.NoError(t, env.db.Preload("OrderItems").Find(&orders).Error)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("22.50")))
	assert.Equal(t, models.StatusPending, order.Status)
	assert.False(t, order.IsPaid)
	assert.Nil(t, order.UserID, "guest checkout must leave the order ownerless")
	require.Len(t, order.OrderItems, 2)

	// Order total equals the snapshot sum of its items.
	sum := decimal.Zero
	for _, orderItem := range order.OrderItems {
		sum = sum.Add(orderItem.ItemPrice.Mul(decimal.NewFromInt(int64(orderItem.Quantity))))
	}
	assert.True(t, sum.Equal(order.TotalPrice))

	// The cart is gone after checkout.
	recorder = env.do(http.MethodGet, "/cart", nil, "")
	assert.Empty(t, cartLines(t, env.decode(recorder)))
}

func TestCheckoutEmptyCartIsTurnedAway(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(http.MethodPost, "/checkout", nil, "")
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	payload := env.decode(recorder)
	assert.Equal(t, false, payload["success"])
	assert.NotEmpty(t, payload["redirect"])

	var count int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count, "a failed checkout must create nothing")
}

func TestCheckoutCarriesTableNumberFromSession(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createUser("alice")
	pizza := env.createItem(owner, "Pizza", "10.00", true)

	env.do(http.MethodGet, "/table/alice/7", nil, "")
	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", pizza.ID), nil, "")

	recorder := env.do(http.MethodPost, "/checkout", nil, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var order models.Order
	require.NoError(t, env.db.First(&order).Error)
	assert.Equal(t, "7", order.TableNumber)
}

func TestCheckoutSurvivesItemDeletion(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createUser("alice")
	pizza := env.createItem(owner, "Pizza", "10.00", true)

	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", pizza.ID), nil, "")
	require.NoError(t, env.db.Delete(&models.Item{}, pizza.ID).Error)

	recorder := env.do(http.MethodPost, "/checkout", nil, "")
	require.Equal(t, http.StatusCreated, recorder.Code)

	var orderItem models.OrderItem
	require.NoError(t, env.db.First(&orderItem).Error)
	assert.Nil(t, orderItem.ItemID, "deleted item leaves a null reference")
	assert.Equal(t, "Pizza", orderItem.ItemName)
	assert.True(t, orderItem.ItemPrice.Equal(decimal.RequireFromString("10.00")))
}

func TestCheckoutRecordsAuthenticatedOwner(t *testing.T) {
	env := newTestEnv(t)
	owner, token := env.createUser("alice")
	pizza := env.createItem(owner, "Pizza", "10.00", true)

	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", pizza.ID), nil, token)

	recorder := env.do(http.MethodPost, "/checkout", nil, token)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var order models.Order
	require.NoError(t, env.db.First(&order).Error)
	require.NotNil(t, order.UserID)
	assert.Equal(t, owner.ID, *order.UserID)
}

func TestUpdateOrderStatusCompletedSetsPaid(t *testing.T) {
	env := newTestEnv(t)
	owner, token := env.createUser("alice")
	pizza := env.createItem(owner, "Pizza", "10.00", true)

	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", pizza.ID), nil, "")
	env.do(http.MethodPost, "/checkout", nil, "")

	var order models.Order
	require.NoError(t, env.db.First(&order).Error)

	recorder := env.do(http.MethodPost, fmt.Sprintf("/management/order/%d/status/preparing", order.ID), nil, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, env.db.First(&order, order.ID).Error)
	assert.Equal(t, models.StatusPreparing, order.Status)
	assert.False(t, order.IsPaid, "only completed marks an order paid")

	recorder = env.do(http.MethodPost, fmt.Sprintf("/management/order/%d/status/completed", order.ID), nil, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, env.db.First(&order, order.ID).Error)
	assert.Equal(t, models.StatusCompleted, order.Status)
	assert.True(t, order.IsPaid)
}

func TestUpdateOrderStatusCancelledDoesNotSetPaid(t *testing.T) {
	env := newTestEnv(t)
	owner, token := env.createUser("alice")
	pizza := env.createItem(owner, "Pizza", "10.00", true)

	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", pizza.ID), nil, "")
	env.do(http.MethodPost, "/checkout", nil, "")

	var order models.Order
	require.NoError(t, env.db.First(&order).Error)

	recorder := env.do(http.MethodPost, fmt.Sprintf("/management/order/%d/status/cancelled", order.ID), nil, token)
	require.Equal(t, http.StatusOK, recorder.Code)

	require.NoError(t, env.db.First(&order, order.ID).Error)
	assert.Equal(t, models.StatusCancelled, order.Status)
	assert.False(t, order.IsPaid)
}

func TestUpdateOrderStatusUnrecognizedValueChangesNothing(t *testing.T) {
	env := newTestEnv(t)
	owner, token := env.createUser("alice")
	pizza := env.createItem(owner, "Pizza", "10.00", true)

	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", pizza.ID), nil, "")
	env.do(http.MethodPost, "/checkout", nil, "")

	var order models.Order
	require.NoError(t, env.db.First(&order).Error)

	recorder := env.do(http.MethodPost, fmt.Sprintf("/management/order/%d/status/shipped", order.ID), nil, token)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	var unchanged models.Order
	require.NoError(t, env.db.First(&unchanged, order.ID).Error)
	assert.Equal(t, models.StatusPending, unchanged.Status)
	assert.False(t, unchanged.IsPaid)
}

func TestUpdateOrderStatusForeignTenantMaskedAsNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.createUser("alice")
	_, bobToken := env.createUser("bob")
	burger := env.createItem(alice, "Burger", "8.00", true)

	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", burger.ID), nil, "")
	env.do(http.MethodPost, "/checkout", nil, "")

	var order models.Order
	require.NoError(t, env.db.First(&order).Error)

	recorder := env.do(http.MethodPost, fmt.Sprintf("/management/order/%d/status/preparing", order.ID), nil, bobToken)
	assert.Equal(t, http.StatusNotFound, recorder.Code, "foreign orders must look like they do not exist")

	recorder = env.do(http.MethodPost, fmt.Sprintf("/management/order/%d/status/preparing", order.ID), nil, aliceToken)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestGetOrdersListsOnlyManageableOrders(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceToken := env.createUser("alice")
	bob, _ := env.createUser("bob")
	aliceItem := env.createItem(alice, "Burger", "8.00", true)
	bobItem := env.createItem(bob, "Sushi", "15.00", true)

	env.createPaidOrder(aliceItem)
	env.createPaidOrder(bobItem)

	recorder := env.do(http.MethodGet, "/management/orders", nil, aliceToken)
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := env.decode(recorder)
	orders := payload["data"].([]interface{})
	require.Len(t, orders, 1)

	orderItems := orders[0].(map[string]interface{})["order_items"].([]interface{})
	require.Len(t, orderItems, 1)
	assert.Equal(t, "Burger", orderItems[0].(map[string]interface{})["item_name"])
}
