package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/panaderiadelsol/pos-api/internal/dbrepo"
	"github.com/panaderiadelsol/pos-api/internal/models"
	"github.com/panaderiadelsol/pos-api/internal/utils"
)

type UserHandler struct {
	DB       *dbrepo.UserRepo
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewUserHandler(db *dbrepo.UserRepo, infoLog, errorLog *log.Logger) *UserHandler {
	return &UserHandler{
		DB:       db,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// GetUsersHandler handles GET /api/users
func (h *UserHandler) GetUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.DB.GetUsers(r.Context())
	if err != nil {
		h.errorLog.Println("GetUsersHandler:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error": false,
		"users": users,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// AddUser handles POST /api/users
func (h *UserHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Role     string `json:"role"`
	}

	if err := utils.ReadJSON(w, r, &requestBody); err != nil {
		h.errorLog.Println("AddUser_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	if !models.ValidRole(requestBody.Role) {
		utils.BadRequest(w, fmt.Errorf("invalid role: %s", requestBody.Role))
		return
	}
	if len(requestBody.Password) < 6 {
		utils.BadRequest(w, errors.New("password is required and must be at least 6 characters"))
		return
	}

	hashed, err := utils.HashPassword(requestBody.Password)
	if err != nil {
		h.errorLog.Println("AddUser_Hash:", err)
		utils.ServerError(w)
		return
	}

	user, err := h.DB.CreateUser(r.Context(), &models.User{
		Name:     requestBody.Name,
		Email:    requestBody.Email,
		Password: hashed,
		Phone:    requestBody.Phone,
		Role:     requestBody.Role,
	})
	if err != nil {
		if utils.IsUniqueViolation(err, "users_email_key") {
			utils.BadRequest(w, errors.New("email is already registered"))
			return
		}
		h.errorLog.Println("AddUser_DB:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "User created successfully",
		"user":    user,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// UpdateUser handles PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.BadRequest(w, errors.New("invalid user id"))
		return
	}

	var requestBody struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Role     string `json:"role"`
	}

	if err := utils.ReadJSON(w, r, &requestBody); err != nil {
		h.errorLog.Println("UpdateUser_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	if requestBody.Role != "" && !models.ValidRole(requestBody.Role) {
		utils.BadRequest(w, fmt.Errorf("invalid role: %s", requestBody.Role))
		return
	}

	hashed := ""
	if requestBody.Password != "" {
		if len(requestBody.Password) < 6 {
			utils.BadRequest(w, errors.New("password must be at least 6 characters"))
			return
		}
		hashed, err = utils.HashPassword(requestBody.Password)
		if err != nil {
			h.errorLog.Println("UpdateUser_Hash:", err)
			utils.ServerError(w)
			return
		}
	}

	user, err := h.DB.UpdateUser(r.Context(), &models.User{
		ID:       id,
		Name:     requestBody.Name,
		Email:    requestBody.Email,
		Password: hashed,
		Phone:    requestBody.Phone,
		Role:     requestBody.Role,
	})
	if err != nil {
		if utils.IsUniqueViolation(err, "users_email_key") {
			utils.BadRequest(w, errors.New("email is already registered"))
			return
		}
		respondError(w, h.errorLog, "UpdateUser_DB", err)
		return
	}

	resp := map[string]any{
		"error": false,
		"user":  user,
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}

// DeleteUser handles DELETE /api/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		utils.BadRequest(w, errors.New("invalid user id"))
		return
	}

	if err := h.DB.DeleteUser(r.Context(), id); err != nil {
		respondError(w, h.errorLog, "DeleteUser_DB", err)
		return
	}

	resp := models.Response{
		Error:   false,
		Status:  "success",
		Message: "User deleted successfully",
	}
	utils.WriteJSON(w, http.StatusOK, resp)
}
