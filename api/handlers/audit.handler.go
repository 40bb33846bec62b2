package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/panaderiadelsol/pos-api/internal/dbrepo"
	"github.com/panaderiadelsol/pos-api/internal/utils"
)

type AuditHandler struct {
	DB       *dbrepo.AuditRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewAuditHandler(db *dbrepo.AuditRepo, infoLog, errorLog *log.Logger) *AuditHandler {
	return &AuditHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// GetLogsHandler handles GET /api/audit?limit=N
func (h *AuditHandler) GetLogsHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.DB.ListLogs(r.Context(), limit)
	if err != nil {
		h.errorLog.Println("GetLogsHandler:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error": false,
		"logs":  logs,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
