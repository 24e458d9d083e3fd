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

func cartLines(t *testing.T, payload map[string]interface{}) []interface{} {
	t.Helper()
	data, ok := payload["data"].(map[string]interface{})
	require.True(t, ok)
	lines, ok := data["lines"].([]interface{})
	require.True(t, ok)
	return lines
}

func cartTotal(t *testing.T, payload map[string]interface{}) decimal.Decimal {
	t.Helper()
	data := payload["data"].(map[string]interface{})
	total, err := decimal.NewFromString(data["total"].(string))
	require.NoError(t, err)
	return total
}

func TestAddToCartIncrementsAndKeepsFirstSnapshot(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createUser("alice")
	item := env.createItem(owner, "Pizza", "10.00", true)

	recorder := env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", item.ID), nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	// The price changes after the first add; the cart must not notice.
	require.NoError(t, env.db.Model(&models.Item{}).Where("id = ?", item.ID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	recorder = env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", item.ID), nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.do(http.MethodGet, "/cart", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	payload := env.decode(recorder)

	lines := cartLines(t, payload)
	require.Len(t, lines, 1)
	line := lines[0].(map[string]interface{})
	assert.Equal(t, "Pizza", line["name"])
	assert.Equal(t, float64(2), line["quantity"])

	price, err := decimal.NewFromString(line["price"].(string))
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("10.00")), "price must stay at the first-add snapshot")

	assert.True(t, cartTotal(t, payload).Equal(decimal.RequireFromString("20.00")))
}

func TestAddToCartUnavailableItemNotFound(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createUser("alice")
	item := env.createItem(owner, "Secret Special", "5.00", false)

	recorder := env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", item.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = env.do(http.MethodPost, "/cart/add/98765", nil, "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestViewCartEmpty(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(http.MethodGet, "/cart", nil, "")
	require.Equal(t, http.StatusOK, recorder.Code)
	payload := env.decode(recorder)

	assert.Empty(t, cartLines(t, payload))
	assert.True(t, cartTotal(t, payload).IsZero())
}

func TestCartTotalAcrossItems(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createUser("alice")
	pizza := env.createItem(owner, "Pizza", "10.00", true)
	soda := env.createItem(owner, "Soda", "2.50", true)

	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", pizza.ID), nil, "")
	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", pizza.ID), nil, "")
	env.do(http.MethodPost, fmt.Sprintf("/cart/add/%d", soda.ID), nil, "")

	recorder := env.do(http.MethodGet, "/cart", nil, "")
	payload := env.decode(recorder)

	lines := cartLines(t, payload)
	require.Len(t, lines, 2)
	// Insertion order is preserved.
	assert.Equal(t, "Pizza", lines[0].(map[string]interface{})["name"])
	assert.Equal(t, "Soda", lines[1].(map[string]interface{})["name"])
	assert.True(t, cartTotal(t, payload).Equal(decimal.RequireFromString("22.50")))
}
