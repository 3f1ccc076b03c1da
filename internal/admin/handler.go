package admin

import (
	"errors"
	"net/http"

	"cleanslot/internal/api"
	"cleanslot/internal/auth"
	"cleanslot/internal/logger"
	"cleanslot/internal/pricing"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

const (
	defaultUsername = "admin"
	defaultPassword = "admin123"
)

type Handler struct {
	repo      *Repository
	settings  *pricing.SettingsRepository
	jwtSecret string
}

func NewHandler(db *sqlx.DB, jwtSecret string) *Handler {
	return &Handler{
		repo:      NewRepository(db),
		settings:  pricing.NewSettingsRepository(db),
		jwtSecret: jwtSecret,
	}
}

// Login responds with the same message for unknown usernames and wrong
// passwords.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	admin, err := h.repo.FindByUsername(c.Request.Context(), req.Username)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Invalid credentials"})
		return
	}

	token, err := auth.GenerateAdminToken(admin.Username, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Username: admin.Username})
}

// Init seeds the default admin account and settings. A no-op once any
// admin exists, so the route can stay open for first-boot setup.
func (h *Handler) Init(c *gin.Context) {
	ctx := c.Request.Context()

	exists, err := h.repo.Any(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}
	if exists {
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Admin already exists"})
		return
	}

	passwordHash, err := auth.HashPassword(defaultPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to hash password"})
		return
	}

	if err := h.repo.Create(ctx, defaultUsername, passwordHash); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create admin"})
		return
	}

	if err := h.settings.Upsert(ctx, pricing.FridayDiscountKey, "10"); err != nil {
		logger.Errorf("failed to seed default settings: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Admin created",
		"username": defaultUsername,
		"password": defaultPassword,
	})
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	username, ok := auth.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Not authenticated"})
		return
	}

	admin, err := h.repo.FindByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	if !auth.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Current password is incorrect"})
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to hash password"})
		return
	}

	if err := h.repo.UpdatePassword(c.Request.Context(), username, newHash); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password updated"})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.settings.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *Handler) UpdateSetting(c *gin.Context) {
	var req struct {
		Key   string `json:"key" binding:"required"`
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.settings.Upsert(c.Request.Context(), req.Key, req.Value); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update setting"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Setting updated"})
}
