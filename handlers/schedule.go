package handlers

import (
	"net/http"

	"beu/models"
	"beu/services/schedule"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ScheduleHandler struct {
	Service schedule.ScheduleService
}

func NewScheduleHandler(svc schedule.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// CreateDraftHandler handles POST /api/schedule/drafts.
func (h *ScheduleHandler) CreateDraftHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	draft, err := h.Service.CreateDraft(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to open schedule editor")
		return
	}
	c.JSON(http.StatusCreated, draft)
}

// GetDraftHandler handles GET /api/schedule/drafts/:id.
func (h *ScheduleHandler) GetDraftHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	draft, err := h.Service.GetDraft(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "Schedule draft unavailable")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// PatchDraftHandler handles PATCH /api/schedule/drafts/:id.
func (h *ScheduleHandler) PatchDraftHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var body struct {
		Edits []models.ScheduleEdit `json:"edits" binding:"required,min=1,dive"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	draft, err := h.Service.ApplyEdits(c.Request.Context(), userID, c.Param("id"), body.Edits)
	if err != nil {
		respondError(c, err, "Failed to edit schedule")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SaveDraftHandler handles POST /api/schedule/drafts/:id/save.
func (h *ScheduleHandler) SaveDraftHandler(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	saved, err := h.Service.SaveDraft(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		getLogger(c).Info("Schedule save refused", zap.Error(err))
		respondError(c, err, "Failed to save schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule saved", "schedule": saved})
}

// ValidateHandler handles POST /api/schedule/validate.
func (h *ScheduleHandler) ValidateHandler(c *gin.Context) {
	var body struct {
		Schedule []models.DaySchedule `json:"schedule" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	days, err := h.Service.Validate(body.Schedule)
	if err != nil {
		respondError(c, err, "Invalid schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true, "schedule": days})
}
