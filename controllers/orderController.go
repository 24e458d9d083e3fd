package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	middleware "github.com/tabledine/Table_Ordering_Backend/middlewares"
	"github.com/tabledine/Table_Ordering_Backend/models"
	"github.com/tabledine/Table_Ordering_Backend/session"
)

// manageableOrders restricts an order query to orders containing at least
// one item owned by the given account. Ownership violations upstream surface
// as plain not-found, so one tenant can never probe another's orders.
const manageableOrders = `EXISTS (
	SELECT 1 FROM order_items
	JOIN items ON items.id = order_items.item_id
	WHERE order_items.order_id = orders.id AND items.user_id = ?)`

// OrderController turns carts into durable orders and lets staff walk an
// order through its statuses.
type OrderController struct {
	DB       *gorm.DB
	Sessions *session.Manager
	BaseURL  string
	Log      zerolog.Logger
}

func NewOrderController(db *gorm.DB, sessions *session.Manager, baseURL string, log zerolog.Logger) *OrderController {
	return &OrderController{DB: db, Sessions: sessions, BaseURL: baseURL, Log: log}
}

// Checkout drains the session cart into one Order plus its OrderItems inside
// a single transaction, then clears the cart. The live Item is re-resolved
// per line only to keep the reference; the snapshot taken at add time is what
// gets billed.
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(r)

	cart, err := oc.Sessions.Cart(ctx, sessionID)
	if err != nil {
		oc.Log.Error().Err(err).Msg("loading cart")
		http.Error(w, `{"success": false, "message": "Error loading cart"}`, http.StatusInternalServerError)
		return
	}

	if cart.IsEmpty() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success":  false,
			"message":  "Your cart is empty",
			"redirect": oc.Sessions.MenuURL(ctx, sessionID, oc.BaseURL+"/"),
		})
		return
	}

	// Guest checkout is allowed; the order only gets an owner when the
	// request carried a valid token.
	var ownerID *uint
	if userID, _, ok := middleware.GetUserFromContext(r); ok {
		ownerID = &userID
	}

	tableNumber, err := oc.Sessions.Table(ctx, sessionID)
	if err != nil {
		oc.Log.Error().Err(err).Msg("loading table number")
		http.Error(w, `{"success": false, "message": "Error loading session"}`, http.StatusInternalServerError)
		return
	}
	if tableNumber == session.UnknownTable {
		tableNumber = ""
	}

	order := models.Order{
		UserID:      ownerID,
		TableNumber: tableNumber,
		TotalPrice:  cart.Total(),
		Status:      models.StatusPending,
		IsPaid:      false,
	}

	err = oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		orderItems := make([]models.OrderItem, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			orderItem := models.OrderItem{
				OrderID:   order.ID,
				ItemName:  line.Name,
				ItemPrice: line.Price,
				Quantity:  line.Quantity,
			}
			// Best effort: an item deleted since it was added to the
			// cart leaves the reference NULL.
			var live models.Item
			if err := tx.First(&live, line.ItemID).Error; err == nil {
				orderItem.ItemID = &live.ID
			}
			orderItems = append(orderItems, orderItem)
		}

		return tx.Create(&orderItems).Error
	})
	if err != nil {
		oc.Log.Error().Err(err).Msg("checkout transaction failed")
		http.Error(w, `{"success": false, "message": "Checkout failed"}`, http.StatusInternalServerError)
		return
	}

	if err := oc.Sessions.ClearCart(ctx, sessionID); err != nil {
		oc.Log.Error().Err(err).Msg("clearing cart after checkout")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Order placed successfully",
		"data": map[string]interface{}{
			"order_id":     order.ID,
			"total_price":  order.TotalPrice,
			"status":       order.Status,
			"table_number": order.TableNumber,
			"is_paid":      order.IsPaid,
			"created_at":   order.CreatedAt,
		},
	})
}

// GetOrders lists the orders manageable by the current account, newest
// first, with their line items.
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	var orders []models.Order
	err := oc.DB.Preload("OrderItems").
		Where(manageableOrders, userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		oc.Log.Error().Err(err).Msg("listing orders")
		http.Error(w, `{"success": false, "message": "Error retrieving orders"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Orders retrieved successfully",
		"data":    orders,
	})
}

// UpdateOrderStatus applies a status transition to a manageable order. The
// status set is closed; completed marks the order paid. Recognized statuses
// may move to any other recognized status: no ordering is enforced between
// them.
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)

	orderID, err := strconv.Atoi(vars["order_id"])
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid order ID"}`, http.StatusBadRequest)
		return
	}

	newStatus, err := models.ParseOrderStatus(vars["new_status"])
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid order status"}`, http.StatusBadRequest)
		return
	}

	var order models.Order
	err = oc.DB.Where("orders.id = ?", orderID).
		Where(manageableOrders, userID).
		First(&order).Error
	if err != nil {
		http.Error(w, `{"success": false, "message": "Order not found"}`, http.StatusNotFound)
		return
	}

	order.Status = newStatus
	if newStatus == models.StatusCompleted {
		order.IsPaid = true
	}

	if err := oc.DB.Save(&order).Error; err != nil {
		oc.Log.Error().Err(err).Uint("order_id", order.ID).Msg("updating order status")
		http.Error(w, `{"success": false, "message": "Order status update failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Order status updated successfully",
		"data": map[string]interface{}{
			"order_id": order.ID,
			"status":   order.Status,
			"is_paid":  order.IsPaid,
		},
	})
}
