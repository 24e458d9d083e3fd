package routes

import (
	"net/http"

	controller "github.com/tabledine/Table_Ordering_Backend/controllers"
	"github.com/gorilla/mux"
)

// CustomerRoutes are the public, session-backed routes a customer walks
// through: menu, cart, checkout.
func CustomerRoutes(router *mux.Router, mc *controller.MenuController, cc *controller.CartController, oc *controller.OrderController) {
	router.HandleFunc("/", mc.GetMenu).Methods(http.MethodGet)
	router.HandleFunc("/table/{username}/{table_id}", mc.GetMenu).Methods(http.MethodGet)
	router.HandleFunc("/cart", cc.ViewCart).Methods(http.MethodGet)
	router.HandleFunc("/cart/add/{item_id}", cc.AddToCart).Methods(http.MethodPost)
	router.HandleFunc("/checkout", oc.Checkout).Methods(http.MethodPost)
}
