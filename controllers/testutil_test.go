package controller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tabledine/Table_Ordering_Backend/config"
	controller "github.com/tabledine/Table_Ordering_Backend/controllers"
	"github.com/tabledine/Table_Ordering_Backend/helper"
	middleware "github.com/tabledine/Table_Ordering_Backend/middlewares"
	"github.com/tabledine/Table_Ordering_Backend/models"
	"github.com/tabledine/Table_Ordering_Backend/routes"
	"github.com/tabledine/Table_Ordering_Backend/session"
)

const testSecret = "test-secret"
const testBaseURL = "http://menu.test"

// testEnv wires the full router against an in-memory database and session
// store, with a cookie jar so consecutive requests share a customer session.
type testEnv struct {
	t       *testing.T
	db      *gorm.DB
	router  *mux.Router
	cookies map[string]string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.InitMigrate(db))

	sessions := session.NewManager(session.NewMemoryStore())
	logger := zerolog.Nop()

	userController := controller.NewUserController(db, testSecret, logger)
	itemController := controller.NewItemController(db, logger)
	menuController := controller.NewMenuController(db, sessions, testBaseURL, logger)
	cartController := controller.NewCartController(db, sessions, testBaseURL, logger)
	orderController := controller.NewOrderController(db, sessions, testBaseURL, logger)
	dashboardController := controller.NewDashboardController(db, logger)
	qrController := controller.NewQRController(testBaseURL)

	router := mux.NewRouter().StrictSlash(true)
	routes.PublicUserRoutes(router, userController)

	customerRoutes := router.PathPrefix("/").Subrouter()
	customerRoutes.Use(middleware.Session, middleware.OptionalAuthentication(testSecret))
	routes.CustomerRoutes(customerRoutes, menuController, cartController, orderController)

	securedRoutes := router.PathPrefix("/").Subrouter()
	securedRoutes.Use(middleware.Authentication(testSecret))
	routes.ProtectedUserRoutes(securedRoutes, userController)
	routes.ItemProtectedRoutes(securedRoutes, itemController)
	routes.OrderProtectedRoutes(securedRoutes, orderController, dashboardController, qrController)

	return &testEnv{t: t, db: db, router: router, cookies: make(map[string]string)}
}

// do sends a request through the router, replaying and collecting cookies so
// the customer session survives across calls.
func (e *testEnv) do(method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	e.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(e.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	for name, value := range e.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)

	for _, cookie := range recorder.Result().Cookies() {
		e.cookies[cookie.Name] = cookie.Value
	}
	return recorder
}

func (e *testEnv) decode(recorder *httptest.ResponseRecorder) map[string]interface{} {
	e.t.Helper()
	var payload map[string]interface{}
	require.NoError(e.t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

// createUser inserts an account directly, skipping the bcrypt cost of the
// signup endpoint, and returns it with a valid access token.
func (e *testEnv) createUser(username string) (models.User, string) {
	e.t.Helper()

	user := models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "unused-hash",
	}
	require.NoError(e.t, e.db.Create(&user).Error)

	token, _, err := helper.GenerateAllTokens(user.Username, user.ID, testSecret)
	require.NoError(e.t, err)
	return user, token
}

func (e *testEnv) createItem(owner models.User, name, price string, available bool) models.Item {
	e.t.Helper()

	item := models.Item{
		Name:        name,
		Price:       decimal.RequireFromString(price),
		Description: name + " description",
		IsAvailable: available,
		UserID:      &owner.ID,
	}
	require.NoError(e.t, e.db.Create(&item).Error)
	return item
}

// createPaidOrder inserts a completed, paid order containing the given items
// with quantity 1 each.
func (e *testEnv) createPaidOrder(items ...models.Item) models.Order {
	e.t.Helper()

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}
	order := models.Order{
		TotalPrice: total,
		Status:     models.StatusCompleted,
		IsPaid:     true,
	}
	require.NoError(e.t, e.db.Create(&order).Error)

	for i := range items {
		orderItem := models.OrderItem{
			OrderID:   order.ID,
			ItemID:    &items[i].ID,
			ItemName:  items[i].Name,
			ItemPrice: items[i].Price,
			Quantity:  1,
		}
		require.NoError(e.t, e.db.Create(&orderItem).Error)
	}
	return order
}
