package controller

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	middleware "github.com/tabledine/Table_Ordering_Backend/middlewares"
	"github.com/tabledine/Table_Ordering_Backend/models"
	"github.com/tabledine/Table_Ordering_Backend/session"
)

// MenuController resolves the customer-facing menu: available items only,
// optionally narrowed to one account's catalog, with table continuity kept in
// the session.
type MenuController struct {
	DB       *gorm.DB
	Sessions *session.Manager
	BaseURL  string
	Log      zerolog.Logger
}

func NewMenuController(db *gorm.DB, sessions *session.Manager, baseURL string, log zerolog.Logger) *MenuController {
	return &MenuController{DB: db, Sessions: sessions, BaseURL: baseURL, Log: log}
}

// GetMenu serves both the plain menu and the QR landing spot
// /table/{username}/{table_id}. A table id in the path is recorded in the
// session together with the menu URL the cart flow should send the customer
// back to; its absence clears any previously recorded table.
func (mc *MenuController) GetMenu(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := middleware.GetSessionID(r)
	vars := mux.Vars(r)
	username := vars["username"]
	tableID := vars["table_id"]

	query := mc.DB.Where("items.is_available = ?", true)
	if username != "" {
		query = query.Joins("JOIN users ON users.id = items.user_id").
			Where("users.username = ?", username)
	}

	var items []models.Item
	if err := query.Order("items.id").Find(&items).Error; err != nil {
		mc.Log.Error().Err(err).Msg("resolving menu")
		http.Error(w, `{"success": false, "message": "Error retrieving menu"}`, http.StatusInternalServerError)
		return
	}

	tableNumber := session.UnknownTable
	if tableID != "" {
		menuURL := fmt.Sprintf("%s/table/%s/%s", mc.BaseURL, username, tableID)
		if err := mc.Sessions.SetTable(ctx, sessionID, tableID, menuURL); err != nil {
			mc.Log.Error().Err(err).Msg("recording table number")
			http.Error(w, `{"success": false, "message": "Error saving session"}`, http.StatusInternalServerError)
			return
		}
		tableNumber = tableID
	} else {
		if err := mc.Sessions.ClearTable(ctx, sessionID); err != nil {
			mc.Log.Error().Err(err).Msg("clearing table number")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Menu retrieved successfully",
		"data": map[string]interface{}{
			"items":        items,
			"table_number": tableNumber,
		},
	})
}
