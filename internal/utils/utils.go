package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/panaderiadelsol/pos-api/internal/models"
)

// ReadJSON reads json from request body into data. It accepts a single JSON of 1MB max size value in the body
func ReadJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 //maximum allowable bytes is 1MB

	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return err
	}

	err = dec.Decode(&struct{}{})

	if err != io.EOF {
		return errors.New("body must only have a single JSON value")
	}

	return nil
}

// WriteJSON writes arbitrary data out as json
func WriteJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return err
	}
	//add the headers if exists
	if len(headers) > 0 {
		for i, v := range headers[0] {
			w.Header()[i] = v
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
	return nil
}

// BadRequest sends a JSON response with the status http.StatusBadRequest, describing the error
func BadRequest(w http.ResponseWriter, err error) {
	var payload struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}

	payload.Error = true
	payload.Message = err.Error()
	_ = WriteJSON(w, http.StatusBadRequest, payload)
}

// NotFound sends a 404 JSON response with a standard structure.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Resource not found"
	}

	resp := models.Response{
		Error:   true,
		Status:  "not_found",
		Message: message,
	}

	_ = WriteJSON(w, http.StatusNotFound, resp)
}

// Unauthorized sends a 401 JSON response.
func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "Authentication required"
	}

	resp := models.Response{
		Error:   true,
		Status:  "unauthorized",
		Message: message,
	}

	_ = WriteJSON(w, http.StatusUnauthorized, resp)
}

// Forbidden sends a 403 JSON response.
func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "You do not have permission for this route"
	}

	resp := models.Response{
		Error:   true,
		Status:  "forbidden",
		Message: message,
	}

	_ = WriteJSON(w, http.StatusForbidden, resp)
}

// ServerError sends a 500 JSON response with a generic message. The real
// error stays server-side; callers log it before getting here.
func ServerError(w http.ResponseWriter) {
	resp := models.Response{
		Error:   true,
		Status:  "server_error",
		Message: "Internal server error",
	}

	_ = WriteJSON(w, http.StatusInternalServerError, resp)
}

// Today returns the current date with time set to 00:00:00
func Today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// GetURLParam returns a trimmed query parameter value.
func GetURLParam(r *http.Request, parameterName string) string {
	return strings.TrimSpace(r.URL.Query().Get(parameterName))
}

// SaleCode formats the sale code for an allocated sale id, like "V-000042".
// Deriving the code from the id keeps it unique without retries.
func SaleCode(saleID int64) string {
	return fmt.Sprintf("%s-%06d", models.SALE_CODE_PREFIX, saleID)
}

// IsUniqueViolation checks if an error is a unique constraint violation
// for the specified database constraint name.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 23505 = unique_violation
		return pgErr.Code == "23505" &&
			(constraintName == "" || strings.EqualFold(pgErr.ConstraintName, constraintName))
	}
	return false
}
