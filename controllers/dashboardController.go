package controller

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	middleware "github.com/tabledine/Table_Ordering_Backend/middlewares"
	"github.com/tabledine/Table_Ordering_Backend/models"
)

// DashboardController computes the staff rollups: active orders, paid
// revenue and the per-item sales report. Everything is recomputed per
// request; there is no cache to invalidate.
type DashboardController struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewDashboardController(db *gorm.DB, log zerolog.Logger) *DashboardController {
	return &DashboardController{DB: db, Log: log}
}

type itemSale struct {
	ItemName      string          `json:"item_name"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

func (dc *DashboardController) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	var activeOrders []models.Order
	err := dc.DB.Preload("OrderItems").
		Where("status IN ?", []models.OrderStatus{models.StatusPending, models.StatusPreparing}).
		Where(manageableOrders, userID).
		Order("created_at DESC").
		Find(&activeOrders).Error
	if err != nil {
		dc.Log.Error().Err(err).Msg("loading active orders")
		http.Error(w, `{"success": false, "message": "Error retrieving dashboard"}`, http.StatusInternalServerError)
		return
	}

	var totalOrders int64
	err = dc.DB.Model(&models.Order{}).
		Where(manageableOrders, userID).
		Count(&totalOrders).Error
	if err != nil {
		dc.Log.Error().Err(err).Msg("counting orders")
		http.Error(w, `{"success": false, "message": "Error retrieving dashboard"}`, http.StatusInternalServerError)
		return
	}

	var totalRevenue decimal.Decimal
	err = dc.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("is_paid = ?", true).
		Where(manageableOrders, userID).
		Scan(&totalRevenue).Error
	if err != nil {
		dc.Log.Error().Err(err).Msg("summing revenue")
		http.Error(w, `{"success": false, "message": "Error retrieving dashboard"}`, http.StatusInternalServerError)
		return
	}

	var itemSales []itemSale
	err = dc.DB.Model(&models.OrderItem{}).
		Select("order_items.item_name AS item_name, "+
			"SUM(order_items.quantity) AS total_quantity, "+
			"SUM(order_items.item_price * order_items.quantity) AS total_revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.is_paid = ?", true).
		Where(manageableOrders, userID).
		Group("order_items.item_name").
		Order("total_quantity DESC").
		Scan(&itemSales).Error
	if err != nil {
		dc.Log.Error().Err(err).Msg("building item sales report")
		http.Error(w, `{"success": false, "message": "Error retrieving dashboard"}`, http.StatusInternalServerError)
		return
	}
	if itemSales == nil {
		itemSales = []itemSale{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Dashboard retrieved successfully",
		"data": map[string]interface{}{
			"active_orders": activeOrders,
			"total_orders":  totalOrders,
			"total_revenue": totalRevenue,
			"item_sales":    itemSales,
		},
	})
}
