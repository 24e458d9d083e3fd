package routes

import (
	"net/http"

	controller "github.com/tabledine/Table_Ordering_Backend/controllers"
	"github.com/gorilla/mux"
)

func ItemProtectedRoutes(router *mux.Router, ic *controller.ItemController) {
	router.HandleFunc("/management/items", ic.GetItems).Methods(http.MethodGet)
	router.HandleFunc("/management/items", ic.CreateItem).Methods(http.MethodPost)
	router.HandleFunc("/management/items/{item_id}", ic.GetItem).Methods(http.MethodGet)
	router.HandleFunc("/management/items/{item_id}", ic.UpdateItem).Methods(http.MethodPatch)
	router.HandleFunc("/management/items/{item_id}", ic.DeleteItem).Methods(http.MethodDelete)
}
