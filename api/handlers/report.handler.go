package handlers

import (
	"log"
	"net/http"

	"github.com/panaderiadelsol/pos-api/internal/dbrepo"
	"github.com/panaderiadelsol/pos-api/internal/utils"
)

type ReportHandler struct {
	Finance  *dbrepo.FinanceRepo
	Reports  *dbrepo.ReportRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewReportHandler(finance *dbrepo.FinanceRepo, reports *dbrepo.ReportRepo, infoLog, errorLog *log.Logger) *ReportHandler {
	return &ReportHandler{
		Finance:  finance,
		Reports:  reports,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// GetCashboxSummary handles GET /api/cashbox/summary
func (h *ReportHandler) GetCashboxSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Finance.CashboxSummary(r.Context())
	if err != nil {
		h.errorLog.Println("GetCashboxSummary:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error":   false,
		"summary": summary,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// GetSummaryReport handles GET /api/reports/summary
func (h *ReportHandler) GetSummaryReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.Reports.GetSummaryReport(r.Context())
	if err != nil {
		h.errorLog.Println("GetSummaryReport:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error":  false,
		"report": report,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
