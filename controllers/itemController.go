package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	middleware "github.com/tabledine/Table_Ordering_Backend/middlewares"
	"github.com/tabledine/Table_Ordering_Backend/models"
)

var validate = validator.New()

// ItemController manages the menu items of the authenticated account. Every
// query is scoped by owner: another account's items behave as if they do not
// exist.
type ItemController struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewItemController(db *gorm.DB, log zerolog.Logger) *ItemController {
	return &ItemController{DB: db, Log: log}
}

type createItemRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	IsAvailable *bool           `json:"is_available"`
}

type updateItemRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=2,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description"`
	IsAvailable *bool            `json:"is_available"`
}

// Get all items owned by the current account, with pagination
func (ic *ItemController) GetItems(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	recordPerPage, err := strconv.Atoi(r.URL.Query().Get("recordPerPage"))
	if err != nil || recordPerPage < 1 {
		recordPerPage = 10
	}

	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	startIndex := (page - 1) * recordPerPage

	var totalItems int64
	if err := ic.DB.Model(&models.Item{}).Where("user_id = ?", userID).Count(&totalItems).Error; err != nil {
		http.Error(w, `{"success": false, "message": "Error retrieving item count"}`, http.StatusInternalServerError)
		return
	}

	var items []models.Item
	err = ic.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(startIndex).
		Limit(recordPerPage).
		Find(&items).Error
	if err != nil {
		ic.Log.Error().Err(err).Msg("listing items")
		http.Error(w, `{"success": false, "message": "Error retrieving items"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Items retrieved successfully",
		"data":    items,
		"pagination": map[string]interface{}{
			"current_page":     page,
			"records_per_page": recordPerPage,
			"total_items":      totalItems,
			"total_pages":      (totalItems + int64(recordPerPage) - 1) / int64(recordPerPage),
		},
	})
}

// Get a single item, ownership required
func (ic *ItemController) GetItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	itemID, err := strconv.Atoi(mux.Vars(r)["item_id"])
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid item ID"}`, http.StatusBadRequest)
		return
	}

	var item models.Item
	if err := ic.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		http.Error(w, `{"success": false, "message": "Item not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Item retrieved successfully",
		"data":    item,
	})
}

// Create an item, owner = current account
func (ic *ItemController) CreateItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if validationErr := validate.Struct(req); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	if !req.Price.IsPositive() {
		http.Error(w, `{"success": false, "message": "Price must be greater than zero"}`, http.StatusBadRequest)
		return
	}

	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	item := models.Item{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		IsAvailable: available,
		UserID:      &userID,
	}

	if err := ic.DB.Create(&item).Error; err != nil {
		ic.Log.Error().Err(err).Msg("creating item")
		http.Error(w, `{"success": false, "message": "Item could not be created"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Item created successfully",
		"data":    item,
	})
}

// Update an item, ownership required; absent fields are left untouched
func (ic *ItemController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	itemID, err := strconv.Atoi(mux.Vars(r)["item_id"])
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid item ID"}`, http.StatusBadRequest)
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"success": false, "message": "Invalid request body"}`, http.StatusBadRequest)
		return
	}

	if validationErr := validate.Struct(req); validationErr != nil {
		http.Error(w, `{"success": false, "message": "`+validationErr.Error()+`"}`, http.StatusBadRequest)
		return
	}

	var item models.Item
	if err := ic.DB.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		http.Error(w, `{"success": false, "message": "Item not found"}`, http.StatusNotFound)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Price != nil {
		if !req.Price.IsPositive() {
			http.Error(w, `{"success": false, "message": "Price must be greater than zero"}`, http.StatusBadRequest)
			return
		}
		item.Price = *req.Price
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := ic.DB.Save(&item).Error; err != nil {
		ic.Log.Error().Err(err).Uint("item_id", item.ID).Msg("updating item")
		http.Error(w, `{"success": false, "message": "Item update failed"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Item updated successfully",
		"data":    item,
	})
}

// Delete an item, ownership required. Past orders keep their snapshots; the
// OrderItem reference is nulled out by the schema.
func (ic *ItemController) DeleteItem(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	itemID, err := strconv.Atoi(mux.Vars(r)["item_id"])
	if err != nil {
		http.Error(w, `{"success": false, "message": "Invalid item ID"}`, http.StatusBadRequest)
		return
	}

	result := ic.DB.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.Item{})
	if result.Error != nil {
		ic.Log.Error().Err(result.Error).Int("item_id", itemID).Msg("deleting item")
		http.Error(w, `{"success": false, "message": "Error deleting item"}`, http.StatusInternalServerError)
		return
	}
	if result.RowsAffected == 0 {
		http.Error(w, `{"success": false, "message": "Item not found"}`, http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Item deleted successfully",
	})
}
