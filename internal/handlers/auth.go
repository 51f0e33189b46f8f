package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/abdaljehan03-maker/clinic-project/internal/config"
	"github.com/abdaljehan03-maker/clinic-project/internal/middleware"
	"github.com/abdaljehan03-maker/clinic-project/internal/utils"
)

// AuthHandler handles staff authentication requests.
type AuthHandler struct {
	Cfg *config.Config
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{Cfg: cfg}
}

// LoginRequest represents the request body for staff login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response body for successful login.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	Username    string      `json:"username"`
	Role        config.Role `json:"role"`
	ExpiresIn   int         `json:"expiresIn"`
}

// Login handles staff login against the configured desk accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !utils.BindAndValidate(c, &req) {
		return // Error response handled by BindAndValidate
	}

	account, ok := h.Cfg.FindAccount(req.Username)
	if !ok || !account.CheckPassword(req.Password) {
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	accessToken, err := utils.GenerateToken(account, h.Cfg)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token: "+err.Error())
		return
	}

	utils.Success(c, "Login successful", LoginResponse{
		AccessToken: accessToken,
		Username:    account.Username,
		Role:        account.Role,
		ExpiresIn:   h.Cfg.JWTExpirationMinutes * 60,
	})
}

// GetProfile returns the identity of the authenticated staff member.
func (h *AuthHandler) GetProfile(c *gin.Context) {
	username, ok := middleware.GetUsernameFromContext(c)
	if !ok {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	role, _ := middleware.GetUserRoleFromContext(c)

	utils.Success(c, "Profile fetched successfully", gin.H{
		"username": username,
		"role":     role,
	})
}
