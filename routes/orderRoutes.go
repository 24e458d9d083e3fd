package routes

import (
	"net/http"

	controller "github.com/tabledine/Table_Ordering_Backend/controllers"
	"github.com/gorilla/mux"
)

func OrderProtectedRoutes(router *mux.Router, oc *controller.OrderController, dc *controller.DashboardController, qc *controller.QRController) {
	router.HandleFunc("/management/orders", oc.GetOrders).Methods(http.MethodGet)
	router.HandleFunc("/management/order/{order_id}/status/{new_status}", oc.UpdateOrderStatus).Methods(http.MethodPost)
	router.HandleFunc("/management/dashboard", dc.GetDashboard).Methods(http.MethodGet)
	router.HandleFunc("/management/qr/{table_id}", qc.GenerateQRCode).Methods(http.MethodGet)
}
