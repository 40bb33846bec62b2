package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/panaderiadelsol/pos-api/internal/dbrepo"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
)

type CustomerHandler struct {
	DB       *dbrepo.CustomerRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewCustomerHandler(db *dbrepo.CustomerRepo, infoLog, errorLog *log.Logger) *CustomerHandler {
	return &CustomerHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// GetCustomersHandler handles GET /api/customers
func (h *CustomerHandler) GetCustomersHandler(w http.ResponseWriter, r *http.Request) {
	customers, err := h.DB.GetCustomers(r.Context())
	if err != nil {
		h.errorLog.Println("GetCustomersHandler:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error":     false,
		"customers": customers,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetCustomerByID handles GET /api/customers/{id}
func (h *CustomerHandler) GetCustomerByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	customer, err := h.DB.GetCustomerByID(r.Context(), id)
	if err != nil {
		respondError(w, h.errorLog, "GetCustomerByID_DB", err)
		return
	}

	resp := map[string]any{
		"error":    false,
		"customer": customer,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// AddCustomer handles POST /api/customers
func (h *CustomerHandler) AddCustomer(w http.ResponseWriter, r *http.Request) {
	var c models.Customer
	if err := utils.ReadJSON(w, r, &c); err != nil {
		h.errorLog.Println("AddCustomer_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	if strings.TrimSpace(c.Name) == "" {
		utils.BadRequest(w, errors.New("name is required"))
		return
	}

	customer, err := h.DB.CreateCustomer(r.Context(), &c)
	if err != nil {
		h.errorLog.Println("AddCustomer_DB:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error":    false,
		"status":   "success",
		"message":  "Customer created successfully",
		"customer": customer,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// UpdateCustomer handles PUT /api/customers/{id}
func (h *CustomerHandler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	var c models.Customer
	if err := utils.ReadJSON(w, r, &c); err != nil {
		h.errorLog.Println("UpdateCustomer_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}
	c.ID = id

	customer, err := h.DB.UpdateCustomer(r.Context(), &c)
	if err != nil {
		respondError(w, h.errorLog, "UpdateCustomer_DB", err)
		return
	}

	resp := map[string]any{
		"error":    false,
		"customer": customer,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// DeleteCustomer handles DELETE /api/customers/{id}. Sales that referenced
// the customer survive with the reference cleared.
func (h *CustomerHandler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.DeleteCustomer(r.Context(), id); err != nil {
		respondError(w, h.errorLog, "DeleteCustomer_DB", err)
		return
	}

	resp := models.Response{
		Error:   false,
		Status:  "success",
		Message: "Customer deleted successfully",
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
