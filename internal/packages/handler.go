package packages

import (
	"errors"
	"net/http"
	"strconv"

	"cleanslot/internal/api"
	"cleanslot/internal/customer"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo      *Repository
	customers *customer.Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		repo:      NewRepository(db),
		customers: customer.NewRepository(db),
	}
}

func (h *Handler) ListActive(c *gin.Context) {
	pkgs, err := h.repo.ListActive(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, pkgs)
}

func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()

	if _, err := h.customers.FindByPhone(ctx, req.CustomerPhone); err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			c.JSON(http.StatusPreconditionFailed, api.ErrorResponse{Error: "Please register before subscribing"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	pkg, err := h.repo.GetByID(ctx, req.PackageID)
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}
	if !pkg.Active {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Package is not available"})
		return
	}

	sub, err := h.repo.CreateSubscription(ctx, req.CustomerPhone, pkg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create subscription"})
		return
	}

	c.JSON(http.StatusOK, sub)
}

func (h *Handler) ListSubscriptions(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "phone query parameter is required"})
		return
	}

	subs, err := h.repo.ListSubscriptionsByPhone(c.Request.Context(), phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, subs)
}

func (h *Handler) AdminList(c *gin.Context) {
	pkgs, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, pkgs)
}

func (h *Handler) AdminCreate(c *gin.Context) {
	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	pkg, err := h.repo.Create(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create package"})
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

func (h *Handler) AdminUpdate(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid package ID"})
		return
	}

	var req PackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update package"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Package updated"})
}

func (h *Handler) AdminDelete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid package ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Package not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to delete package"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Package deleted"})
}
