package booking

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cleanslot/internal/api"
	"cleanslot/internal/catalog"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	allocator Allocator
}

func NewHandler(allocator Allocator) *Handler {
	return &Handler{allocator: allocator}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if _, err := time.Parse("2006-01-02", req.BookingDate); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "booking_date must be YYYY-MM-DD"})
		return
	}
	if _, err := time.Parse("15:04", req.BookingTime); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "booking_time must be HH:MM"})
		return
	}

	created, err := h.allocator.Create(c.Request.Context(), req)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, created)
	case errors.Is(err, catalog.ErrServiceNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Service not found"})
	case errors.Is(err, ErrCustomerRequired):
		c.JSON(http.StatusPreconditionFailed, api.ErrorResponse{Error: "Please register before booking"})
	case errors.Is(err, ErrDateUnavailable):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Date not available"})
	case errors.Is(err, ErrSlotInvalid):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Time slot not available"})
	case errors.Is(err, ErrSlotTaken):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Time slot already booked"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking"})
	}
}

// CheckByPhone lists a customer's bookings, newest first, each flagged
// with whether a review exists. Unknown phones get an empty list.
func (h *Handler) CheckByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "phone query parameter is required"})
		return
	}

	bookings, err := h.allocator.ListByPhone(c.Request.Context(), phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	phone := c.Query("phone")
	if phone == "" {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "phone query parameter is required"})
		return
	}

	err = h.allocator.Cancel(c.Request.Context(), id, phone)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully"})
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, ErrTerminalStatus):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking cannot be cancelled"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
	}
}

func (h *Handler) AdminList(c *gin.Context) {
	bookings, err := h.allocator.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) AdminUpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	var req StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	err = h.allocator.AdminSetStatus(c.Request.Context(), id, req.Status)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking updated"})
	case errors.Is(err, ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid status"})
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update booking"})
	}
}
