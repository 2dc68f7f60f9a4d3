package handlers

import (
	"net/http"

	"beu/models"
	"beu/services/reservation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CalendarHandler serves the week strip, the month grid and the feed.
type CalendarHandler struct {
	Service reservation.ReservationService
}

func NewCalendarHandler(svc reservation.ReservationService) *CalendarHandler {
	return &CalendarHandler{Service: svc}
}

// WeekStripHandler handles GET /api/calendar/week-strip.
func (h *CalendarHandler) WeekStripHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var q models.WeekStripQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query", "message": err.Error()})
		return
	}
	view, err := h.Service.WeekStrip(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, err, "Failed to build week strip")
		return
	}
	c.JSON(http.StatusOK, view)
}

// SelectDayHandler handles POST /api/calendar/week-strip/select.
func (h *CalendarHandler) SelectDayHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req models.WeekStripSelect
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	res, err := h.Service.SelectDay(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to select day")
		return
	}
	c.JSON(http.StatusOK, res)
}

// MonthGridHandler handles GET /api/calendar/month.
func (h *CalendarHandler) MonthGridHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var q models.MonthGridQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query", "message": err.Error()})
		return
	}
	view, err := h.Service.MonthGrid(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, err, "Failed to build month grid")
		return
	}
	c.JSON(http.StatusOK, view)
}

// TapMonthHandler handles POST /api/calendar/month/tap.
func (h *CalendarHandler) TapMonthHandler(c *gin.Context) {
	var req models.MonthTap
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	res, err := h.Service.TapMonth(req)
	if err != nil {
		respondError(c, err, "Failed to select date")
		return
	}
	c.JSON(http.StatusOK, res)
}

// ConnectionHandler handles GET /api/calendar/connection.
func (h *CalendarHandler) ConnectionHandler(c *gin.Context) {
	conn, err := h.Service.Connection(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load calendar connection")
		return
	}
	c.JSON(http.StatusOK, conn)
}

// FeedLinkHandler handles POST /api/calendar/feed-url.
func (h *CalendarHandler) FeedLinkHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	link, err := h.Service.FeedLink(userID)
	if err != nil {
		respondError(c, err, "Failed to create feed link")
		return
	}
	getLogger(c).Info("Calendar feed link issued")
	c.JSON(http.StatusOK, link)
}

// FeedHandler handles the public GET /calendar/:token/reservations.ics.
func (h *CalendarHandler) FeedHandler(c *gin.Context) {
	body, err := h.Service.Feed(c.Request.Context(), c.Param("token"))
	if err != nil {
		getLogger(c).Debug("Calendar feed refused", zap.Error(err))
		respondError(c, err, "Calendar feed unavailable")
		return
	}
	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}
