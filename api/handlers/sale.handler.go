package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/panaderiadelsol/pos-api/internal/dbrepo"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
)

type SaleHandler struct {
	DB       *dbrepo.SaleRepo
	Audit    *dbrepo.AuditRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewSaleHandler(db *dbrepo.SaleRepo, audit *dbrepo.AuditRepo, infoLog, errorLog *log.Logger) *SaleHandler {
	return &SaleHandler{
		DB:       db,
		Audit:    audit,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// AddSale handles POST /api/sales. Everything the sale touches (header,
// items, stock, inventory log, ledger) commits or rolls back together in
// the repository.
func (h *SaleHandler) AddSale(w http.ResponseWriter, r *http.Request) {
	user := utils.GetUser(r)
	if user == nil {
		utils.Unauthorized(w, "")
		return
	}

	var req models.SaleRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		h.errorLog.Println("AddSale_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	sale, err := h.DB.CreateSale(r.Context(), user.ID, &req)
	if err != nil {
		respondError(w, h.errorLog, "AddSale_DB", err)
		return
	}

	h.infoLog.Printf("sale %s created by user %d, total %s", sale.Code, user.ID, sale.Total)

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "Sale registered successfully",
		"sale":    sale,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)

	// Post-response audit entry; failure only gets logged.
	if err := h.Audit.Record(r.Context(), &user.ID, "SALE_CREATED",
		fmt.Sprintf("Sale %s total %s (payment %s, credit %t)",
			sale.Code, sale.Total, sale.PaymentMethod, sale.IsCredit),
		r.RemoteAddr); err != nil {
		h.errorLog.Println("AddSale_Audit:", err)
	}
}

// GetSalesHandler handles GET /api/sales
func (h *SaleHandler) GetSalesHandler(w http.ResponseWriter, r *http.Request) {
	sales, err := h.DB.GetSales(r.Context())
	if err != nil {
		h.errorLog.Println("GetSalesHandler:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error": false,
		"sales": sales,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetSaleByID handles GET /api/sales/{id}
func (h *SaleHandler) GetSaleByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	sale, err := h.DB.GetSaleByID(r.Context(), id)
	if err != nil {
		respondError(w, h.errorLog, "GetSaleByID_DB", err)
		return
	}

	resp := map[string]any{
		"error": false,
		"sale":  sale,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
