// Package handlers holds the HTTP handlers, thin wrappers over the
// repositories in internal/dbrepo.
package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
)

// idParam parses the {id} route parameter.
func idParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// respondError maps a repository error onto the HTTP surface: missing
// references become 404, validation and business-rule failures 400, and
// anything else a generic 500 with the detail kept server-side.
func respondError(w http.ResponseWriter, errorLog *log.Logger, op string, err error) {
	switch {
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrCustomerNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrSaleNotFound):
		utils.NotFound(w, err.Error())
	case models.IsBusinessError(err):
		utils.BadRequest(w, err)
	default:
		errorLog.Printf("%s: %v", op, err)
		utils.ServerError(w)
	}
}
