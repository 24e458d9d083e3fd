package routes

import (
	"net/http"

	controller "github.com/tabledine/Table_Ordering_Backend/controllers"
	"github.com/gorilla/mux"
)

func PublicUserRoutes(router *mux.Router, uc *controller.UserController) {
	router.HandleFunc("/users/signup", uc.SignUp).Methods(http.MethodPost)
	router.HandleFunc("/users/login", uc.Login).Methods(http.MethodPost)
	router.HandleFunc("/users/token/refresh", uc.RefreshToken).Methods(http.MethodPost)
}

func ProtectedUserRoutes(router *mux.Router, uc *controller.UserController) {
	router.HandleFunc("/users/me", uc.GetMe).Methods(http.MethodGet)
	router.HandleFunc("/users/profile", uc.UpdateProfile).Methods(http.MethodPatch)
	router.HandleFunc("/users/logout", uc.Logout).Methods(http.MethodPost)
}
