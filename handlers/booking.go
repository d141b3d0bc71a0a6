package handlers

import (
	"net/http"

	"handyhelp/middleware"
	"handyhelp/models"
	"handyhelp/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking lifecycle routes.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(s booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: s}
}

// CreateBookingHandler handles POST /api/bookings.
func (h *BookingHandler) CreateBookingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Warn("Invalid booking payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid booking request"})
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), middleware.PrincipalFrom(c), req)
	if err != nil {
		respondError(c, err, "message", "Error saving booking request")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Booking request saved successfully",
		"bookingId": b.ID.Hex(),
	})
}

// GetBookingHandler handles GET /api/bookings/:bookingId.
func (h *BookingHandler) GetBookingHandler(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("bookingId"))
	if err != nil {
		respondError(c, err, "message", "Server error")
		return
	}
	c.JSON(http.StatusOK, b)
}

// RequestedProfilesHandler handles GET /requested-profiles?handymanId=.
func (h *BookingHandler) RequestedProfilesHandler(c *gin.Context) {
	profiles, err := h.Service.ListRequestedForHandyman(c.Request.Context(), c.Query("handymanId"))
	if err != nil {
		respondError(c, err, "message", "Server error")
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// AcceptBookingHandler handles POST /accept-booking.
func (h *BookingHandler) AcceptBookingHandler(c *gin.Context) {
	var req models.AcceptBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if err := h.Service.AcceptBooking(c.Request.Context(), middleware.PrincipalFrom(c), req); err != nil {
		respondError(c, err, "error", "Failed to accept booking.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking accepted, chat and notification sent."})
}

// DeclineBookingHandler handles POST /decline-booking.
func (h *BookingHandler) DeclineBookingHandler(c *gin.Context) {
	var req models.DeclineBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if err := h.Service.DeclineBooking(c.Request.Context(), middleware.PrincipalFrom(c), req); err != nil {
		respondError(c, err, "error", "Failed to decline booking.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking declined, notification sent."})
}
