package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/panaderiadelsol/pos-api/internal/dbrepo"
	"github.com/panaderiadelsol/pos-api/internal/utils"
)

type InventoryHandler struct {
	DB       *dbrepo.InventoryRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewInventoryHandler(db *dbrepo.InventoryRepo, infoLog, errorLog *log.Logger) *InventoryHandler {
	return &InventoryHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// GetMovementsHandler handles GET /api/inventory/movements?limit=N
func (h *InventoryHandler) GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	movements, err := h.DB.ListMovements(r.Context(), limit)
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
