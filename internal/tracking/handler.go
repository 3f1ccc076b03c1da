package tracking

import (
	"errors"
	"net/http"
	"strconv"

	"cleanslot/internal/api"
	"cleanslot/internal/booking"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo     *Repository
	bookings booking.Repository
}

func NewHandler(db *sqlx.DB, bookings booking.Repository) *Handler {
	return &Handler{
		repo:     NewRepository(db),
		bookings: bookings,
	}
}

func (h *Handler) UploadPhoto(c *gin.Context) {
	var req UploadPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if req.PhotoType != PhotoTypeBefore && req.PhotoType != PhotoTypeAfter {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "photo_type must be before or after"})
		return
	}

	bookingID, err := strconv.Atoi(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	if _, err := h.bookings.GetByID(c.Request.Context(), bookingID); err != nil {
		if errors.Is(err, booking.ErrBookingNotFound) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	photo, err := h.repo.InsertPhoto(c.Request.Context(), bookingID, req.PhotoType, req.PhotoBase64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to save photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": photo.ID, "message": "Photo uploaded"})
}

// ListPhotos returns an empty list for unknown bookings; this is a
// read endpoint, not an identified-resource lookup.
func (h *Handler) ListPhotos(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusOK, []WorkPhoto{})
		return
	}

	photos, err := h.repo.ListPhotos(c.Request.Context(), bookingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, photos)
}

func (h *Handler) UpdateLocation(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	bookingID, err := strconv.Atoi(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	loc := &TeamLocation{
		BookingID: bookingID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Status:    req.Status,
	}

	if err := h.repo.UpsertLocation(c.Request.Context(), loc); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update location"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Location updated"})
}

func (h *Handler) GetLocation(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	loc, err := h.repo.GetLocation(c.Request.Context(), bookingID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}
	if loc == nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No location recorded"})
		return
	}

	c.JSON(http.StatusOK, loc)
}
