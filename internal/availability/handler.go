package availability

import (
	"net/http"
	"strconv"
	"time"

	"cleanslot/internal/api"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	ledger Ledger
	repo   *Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	repo := NewRepository(db)
	return &Handler{
		ledger: NewLedger(repo),
		repo:   repo,
	}
}

func (h *Handler) GetMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "year and month query parameters are required"})
		return
	}

	entries, err := h.ledger.MonthSlate(c.Request.Context(), year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": entries})
}

func (h *Handler) GetDaySlots(c *gin.Context) {
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "date must be YYYY-MM-DD"})
		return
	}

	slots, err := h.ledger.DaySlots(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *Handler) AdminGetMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "year and month query parameters are required"})
		return
	}

	days, err := h.repo.ListMonth(c.Request.Context(), year, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Database error"})
		return
	}

	c.JSON(http.StatusOK, days)
}

func (h *Handler) AdminSetDay(c *gin.Context) {
	var req SetDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	if fieldErrors := api.ValidateStruct(req); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "date must be YYYY-MM-DD and time slots HH:MM",
			"fields": fieldErrors,
		})
		return
	}

	if err := h.ledger.SetDay(c.Request.Context(), req.Date, req.Available, req.TimeSlots); err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update availability"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Availability updated"})
}
