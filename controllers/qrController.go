package controller

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	qrcode "github.com/skip2/go-qrcode"

	middleware "github.com/tabledine/Table_Ordering_Backend/middlewares"
)

// QRController renders the scannable link a table card carries: the current
// account's menu URL with the table id baked in.
type QRController struct {
	BaseURL string
}

func NewQRController(baseURL string) *QRController {
	return &QRController{BaseURL: baseURL}
}

func (qc *QRController) GenerateQRCode(w http.ResponseWriter, r *http.Request) {
	_, username, ok := middleware.GetUserFromContext(r)
	if !ok {
		http.Error(w, `{"success": false, "message": "Unauthenticated"}`, http.StatusUnauthorized)
		return
	}

	tableID := mux.Vars(r)["table_id"]
	menuURL := fmt.Sprintf("%s/table/%s/%s", qc.BaseURL, username, tableID)

	png, err := qrcode.Encode(menuURL, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, `{"success": false, "message": "Error generating QR code"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Menu-URL", menuURL)
	w.Write(png)
}
