package customer

import (
	"errors"
	"net/http"

	"cleanslot/internal/api"
	"cleanslot/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo      *Repository
	ledger    Ledger
	jwtSecret string
}

func NewHandler(db *sqlx.DB, jwtSecret string) *Handler {
	repo := NewRepository(db)
	return &Handler{
		repo:      repo,
		ledger:    NewLedger(repo),
		jwtSecret: jwtSecret,
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	customer, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrPhoneExists) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Phone already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create customer"})
		return
	}

	token, err := auth.GenerateCustomerToken(customer.Name, customer.Phone, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Customer: *customer, Token: token})
}

// Login authenticates by phone alone; possession of the phone number
// is the whole credential for customers.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	customer, err := h.repo.FindByPhone(c.Request.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Phone not registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	token, err := auth.GenerateCustomerToken(customer.Name, customer.Phone, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, AuthResponse{Customer: *customer, Token: token})
}

func (h *Handler) GetProfile(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "phone query parameter is required"})
		return
	}

	customer, err := h.repo.FindByPhone(c.Request.Context(), phone)
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.repo.UpdateAddress(c.Request.Context(), req.Phone, req.Address); err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Customer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update address"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Address updated"})
}

func (h *Handler) UseReferral(c *gin.Context) {
	var req UseReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	err := h.ledger.ApplyReferral(c.Request.Context(), req.ReferralCode, req.CustomerPhone)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Referral bonus applied"})
	case errors.Is(err, ErrCodeNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Invalid referral code"})
	case errors.Is(err, ErrCustomerNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Customer not found"})
	case errors.Is(err, ErrSelfReferral):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Cannot use your own referral code"})
	case errors.Is(err, ErrAlreadyReferred):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Referral code already used"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to apply referral"})
	}
}

func (h *Handler) AdminList(c *gin.Context) {
	customers, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, customers)
}
