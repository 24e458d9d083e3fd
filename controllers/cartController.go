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

// CartController mutates and reads the session cart. The cart never touches
// the relational store.
type CartController struct {
	DB       *gorm.DB
	Sessions *session.Manager
	BaseURL  string
	Log      zerolog.Logger
}

func NewCartController(db *gorm.DB, sessions *session.Manager, baseURL string, log zerolog.Logger) *CartController {
	return &CartController{DB: db, Sessions: sessions, BaseURL: baseURL, Log: log}
}

// AddToCart puts one unit of an item into the cart. A repeated add bumps the
// quantity; name, price and description stay as captured by the first add.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(r)

	itemID, err := strconv.Atoi(mux.Vars(r)["item_id"])
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid item ID"}`, http.StatusBadRequest)
		return
	}

	var item models.Item
	if err := cc.DB.Where("id = ? AND is_available = ?", itemID, true).First(&item).Error; err != nil {
		http.Error(w, `{"success": false, "message": "Item not found"}`, http.StatusNotFound)
		return
	}

	cart, err := cc.Sessions.Cart(ctx, sessionID)
	if err != nil {
		cc.Log.Error().Err(err).Msg("loading cart")
		http.Error(w, `{"success": false, "message": "Error loading cart"}`, http.StatusInternalServerError)
		return
	}

	cart.Add(item)

	if err := cc.Sessions.SaveCart(ctx, sessionID, cart); err != nil {
		cc.Log.Error().Err(err).Msg("saving cart")
		http.Error(w, `{"success": false, "message": "Error saving cart"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":  true,
		"message":  item.Name + " added to your cart",
		"redirect": cc.Sessions.MenuURL(ctx, sessionID, cc.BaseURL+"/"),
	})
}

// ViewCart returns the cart lines in insertion order plus the running total.
// An empty cart is a normal response, not an error.
func (cc *CartController) ViewCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(r)

	cart, err := cc.Sessions.Cart(ctx, sessionID)
	if err != nil {
		cc.Log.Error().Err(err).Msg("loading cart")
		http.Error(w, `{"success": false, "message": "Error loading cart"}`, http.StatusInternalServerError)
		return
	}

	lines := cart.Lines
	if lines == nil {
		lines = []models.CartLine{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Cart retrieved successfully",
		"data": map[string]interface{}{
			"lines": lines,
			"total": cart.Total(),
		},
	})
}
