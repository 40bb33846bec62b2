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

type FinanceHandler struct {
	DB       *dbrepo.FinanceRepo
	Audit    *dbrepo.AuditRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewFinanceHandler(db *dbrepo.FinanceRepo, audit *dbrepo.AuditRepo, infoLog, errorLog *log.Logger) *FinanceHandler {
	return &FinanceHandler{
		DB:       db,
		Audit:    audit,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// AddMovement handles POST /api/finance, the manual ledger entry. Sale
// income never comes through here; the sale transaction writes it itself.
func (h *FinanceHandler) AddMovement(w http.ResponseWriter, r *http.Request) {
	user := utils.GetUser(r)
	if user == nil {
		utils.Unauthorized(w, "")
		return
	}

	var requestBody struct {
		Type        string          `json:"type"`
		Category    string          `json:"category"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}

	if err := utils.ReadJSON(w, r, &requestBody); err != nil {
		h.errorLog.Println("AddMovement_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	if requestBody.Type != models.FIN_INCOME && requestBody.Type != models.FIN_EXPENSE {
		utils.BadRequest(w, fmt.Errorf("invalid movement type: %s", requestBody.Type))
		return
	}
	if strings.TrimSpace(requestBody.Category) == "" {
		utils.BadRequest(w, errors.New("category is required"))
		return
	}
	if !requestBody.Amount.IsPositive() {
		utils.BadRequest(w, errors.New("amount must be greater than zero"))
		return
	}

	movementID, err := h.DB.CreateMovement(r.Context(), &models.FinancialMovement{
		Type:        requestBody.Type,
		Category:    requestBody.Category,
		Amount:      requestBody.Amount.Round(2),
		Description: requestBody.Description,
		UserID:      user.ID,
	})
	if err != nil {
		h.errorLog.Println("AddMovement_DB:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error":       false,
		"status":      "success",
		"message":     "Movement registered successfully",
		"movement_id": movementID,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)

	// Post-response audit entry; failure only gets logged.
	if err := h.Audit.Record(r.Context(), &user.ID, "FINANCE_MOVEMENT",
		fmt.Sprintf("%s %s in %s", requestBody.Type, requestBody.Amount.Round(2), requestBody.Category),
		r.RemoteAddr); err != nil {
		h.errorLog.Println("AddMovement_Audit:", err)
	}
}

// GetMovementsHandler handles GET /api/finance
func (h *FinanceHandler) GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	movements, err := h.DB.ListMovements(r.Context())
	if err != nil {
		h.errorLog.Println("GetMovementsHandler:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error":     false,
		"movements": movements,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
