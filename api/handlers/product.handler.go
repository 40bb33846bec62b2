package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/panaderiadelsol/pos-api/internal/dbrepo"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	DB       *dbrepo.ProductRepo
	Audit    *dbrepo.AuditRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewProductHandler(db *dbrepo.ProductRepo, audit *dbrepo.AuditRepo, infoLog, errorLog *log.Logger) *ProductHandler {
	return &ProductHandler{
		DB:       db,
		Audit:    audit,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// GetProductsHandler handles GET /api/products
func (h *ProductHandler) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.DB.GetProducts(r.Context())
	if err != nil {
		h.errorLog.Println("GetProductsHandler:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error":    false,
		"products": products,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetProductByID handles GET /api/products/{id}
func (h *ProductHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	product, err := h.DB.GetProductByID(r.Context(), id)
	if err != nil {
		respondError(w, h.errorLog, "GetProductByID_DB", err)
		return
	}

	resp := map[string]any{
		"error":   false,
		"product": product,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// AddProduct handles POST /api/products
func (h *ProductHandler) AddProduct(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Code        string          `json:"code"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		Stock       int64           `json:"stock"`
	}

	if err := utils.ReadJSON(w, r, &requestBody); err != nil {
		h.errorLog.Println("AddProduct_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	if strings.TrimSpace(requestBody.Code) == "" || strings.TrimSpace(requestBody.Name) == "" {
		utils.BadRequest(w, errors.New("code and name are required"))
		return
	}
	if requestBody.Price.IsNegative() {
		utils.BadRequest(w, errors.New("price cannot be negative"))
		return
	}
	if requestBody.Stock < 0 {
		utils.BadRequest(w, errors.New("stock cannot be negative"))
		return
	}

	product, err := h.DB.CreateProduct(r.Context(), &models.Product{
		Code:        requestBody.Code,
		Name:        requestBody.Name,
		Description: requestBody.Description,
		Price:       requestBody.Price,
		Stock:       requestBody.Stock,
		Active:      true,
	})
	if err != nil {
		if utils.IsUniqueViolation(err, "products_code_key") {
			utils.BadRequest(w, errors.New("product code already exists"))
			return
		}
		h.errorLog.Println("AddProduct_DB:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "Product created successfully",
		"product": product,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// UpdateProduct handles PUT /api/products/{id}. Stock is not updatable here;
// it only moves through the stock endpoint or a sale.
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	var upd models.ProductUpdate
	if err := utils.ReadJSON(w, r, &upd); err != nil {
		h.errorLog.Println("UpdateProduct_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	if upd.Price != nil && upd.Price.IsNegative() {
		utils.BadRequest(w, errors.New("price cannot be negative"))
		return
	}

	product, err := h.DB.UpdateProduct(r.Context(), id, &upd)
	if err != nil {
		if utils.IsUniqueViolation(err, "products_code_key") {
			utils.BadRequest(w, errors.New("product code already exists"))
			return
		}
		respondError(w, h.errorLog, "UpdateProduct_DB", err)
		return
	}

	resp := map[string]any{
		"error":   false,
		"product": product,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// DeactivateProduct handles DELETE /api/products/{id}. Soft delete: the
// product disappears from the catalog but past sales keep their reference.
func (h *ProductHandler) DeactivateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	if err := h.DB.DeactivateProduct(r.Context(), id); err != nil {
		respondError(w, h.errorLog, "DeactivateProduct_DB", err)
		return
	}

	resp := models.Response{
		Error:   false,
		Status:  "success",
		Message: "Product deactivated successfully",
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// AddStock handles PUT /api/products/{id}/stock
func (h *ProductHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	user := utils.GetUser(r)
	if user == nil {
		utils.Unauthorized(w, "")
		return
	}

	id, err := idParam(r)
	if err != nil {
		utils.BadRequest(w, err)
		return
	}

	var requestBody struct {
		Quantity int64 `json:"quantity"`
	}
	if err := utils.ReadJSON(w, r, &requestBody); err != nil {
		h.errorLog.Println("AddStock_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	product, err := h.DB.AddStock(r.Context(), id, requestBody.Quantity, user.ID)
	if err != nil {
		respondError(w, h.errorLog, "AddStock_DB", err)
		return
	}

	h.infoLog.Printf("stock +%d for product %d by user %d", requestBody.Quantity, id, user.ID)

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "Stock updated successfully",
		"product": product,
	}
	utils.WriteJSON(w, http.StatusOK, resp)

	// Post-response audit entry; failure only gets logged.
	if err := h.Audit.Record(r.Context(), &user.ID, "STOCK_ADJUSTED",
		fmt.Sprintf("Stock +%d for product %s (%d)", requestBody.Quantity, product.Name, product.ID),
		r.RemoteAddr); err != nil {
		h.errorLog.Println("AddStock_Audit:", err)
	}
}
