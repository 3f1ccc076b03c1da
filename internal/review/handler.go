package review

import (
	"errors"
	"net/http"
	"strconv"

	"cleanslot/internal/api"
	"cleanslot/internal/booking"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	gate Gate
	repo *Repository
}

func NewHandler(gate Gate, repo *Repository) *Handler {
	return &Handler{gate: gate, repo: repo}
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	bookingID, err := strconv.Atoi(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	review, err := h.gate.Submit(c.Request.Context(), bookingID, req.Rating, req.Comment)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, review)
	case errors.Is(err, ErrInvalidRating):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Rating must be between 1 and 5"})
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
	case errors.Is(err, ErrNotCompleted):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Only completed bookings can be reviewed"})
	case errors.Is(err, ErrDuplicateReview):
		c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Booking already has a review"})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create review"})
	}
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	reviews, err := h.gate.List(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.gate.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// AdminList returns every review without the public list cap.
func (h *Handler) AdminList(c *gin.Context) {
	reviews, err := h.repo.List(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}
