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
)

type AuthHandler struct {
	DB       *dbrepo.UserRepo
	Audit    *dbrepo.AuditRepo
	jwtCfg   models.JWTConfig
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewAuthHandler(db *dbrepo.UserRepo, audit *dbrepo.AuditRepo, jwtCfg models.JWTConfig, infoLog, errorLog *log.Logger) *AuthHandler {
	return &AuthHandler{
		DB:       db,
		Audit:    audit,
		jwtCfg:   jwtCfg,
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Role     string `json:"role"`
	}

	if err := utils.ReadJSON(w, r, &requestBody); err != nil {
		h.errorLog.Println("Register_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	if strings.TrimSpace(requestBody.Name) == "" || strings.TrimSpace(requestBody.Email) == "" {
		utils.BadRequest(w, errors.New("name and email are required"))
		return
	}
	if len(requestBody.Password) < 6 {
		utils.BadRequest(w, errors.New("password must be at least 6 characters"))
		return
	}
	if !models.ValidRole(requestBody.Role) {
		utils.BadRequest(w, fmt.Errorf("invalid role: %s", requestBody.Role))
		return
	}

	hashed, err := utils.HashPassword(requestBody.Password)
	if err != nil {
		h.errorLog.Println("Register_Hash:", err)
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
		h.errorLog.Println("Register_DB:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error":   false,
		"status":  "success",
		"message": "User registered successfully",
		"user":    user,
	}
	utils.WriteJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var requestBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := utils.ReadJSON(w, r, &requestBody); err != nil {
		h.errorLog.Println("Login_ReadJSON:", err)
		utils.BadRequest(w, err)
		return
	}

	user, err := h.DB.GetUserByEmail(r.Context(), requestBody.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			utils.Unauthorized(w, "Invalid credentials")
			return
		}
		h.errorLog.Println("Login_DB:", err)
		utils.ServerError(w)
		return
	}

	if !utils.CheckPassword(requestBody.Password, user.Password) {
		utils.Unauthorized(w, "Invalid credentials")
		return
	}

	token, err := utils.GenerateJWT(models.JWT{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}, h.jwtCfg)
	if err != nil {
		h.errorLog.Println("Login_JWT:", err)
		utils.ServerError(w)
		return
	}

	resp := map[string]any{
		"error": false,
		"token": token,
		"user": map[string]any{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	}
	utils.WriteJSON(w, http.StatusOK, resp)

	// Post-response audit entry; failure only gets logged.
	if err := h.Audit.Record(r.Context(), &user.ID, "USER_LOGIN",
		fmt.Sprintf("User %s logged in", user.Email), r.RemoteAddr); err != nil {
		h.errorLog.Println("Login_Audit:", err)
	}
}
