package handlers

import (
	"net/http"

	"beu/models"
	"beu/services/reservation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	Service reservation.ReservationService
}

func NewReservationHandler(svc reservation.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

// ListHandler handles GET /api/reservations.
func (h *ReservationHandler) ListHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var filter models.ReservationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query", "message": err.Error()})
		return
	}
	items, err := h.Service.List(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": items})
}

// GetHandler handles GET /api/reservations/:id.
func (h *ReservationHandler) GetHandler(c *gin.Context) {
	res, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Reservation not available")
		return
	}
	c.JSON(http.StatusOK, res)
}

// CreateHandler handles POST /api/reservations.
func (h *ReservationHandler) CreateHandler(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	res, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create reservation")
		return
	}
	getLogger(c).Info("Reservation created", zap.String("reservationID", res.ID))
	c.JSON(http.StatusCreated, res)
}

// ConfirmHandler handles POST /api/reservations/:id/confirm.
func (h *ReservationHandler) ConfirmHandler(c *gin.Context) {
	res, err := h.Service.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to confirm reservation")
		return
	}
	c.JSON(http.StatusOK, res)
}

// RejectHandler handles POST /api/reservations/:id/reject.
func (h *ReservationHandler) RejectHandler(c *gin.Context) {
	var req models.RejectReservationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
			return
		}
	}
	res, err := h.Service.Reject(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to reject reservation")
		return
	}
	c.JSON(http.StatusOK, res)
}
