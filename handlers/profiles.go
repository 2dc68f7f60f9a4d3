package handlers

import (
	"net/http"

	"beu/models"
	"beu/services/profile"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	Service profile.ProfileService
}

func NewProfileHandler(svc profile.ProfileService) *ProfileHandler {
	return &ProfileHandler{Service: svc}
}

// PublicProfileHandler handles GET /api/profiles/:id. A missing profile is
// answered with exists=false.
func (h *ProfileHandler) PublicProfileHandler(c *gin.Context) {
	view, err := h.Service.PublicProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load profile")
		return
	}
	c.JSON(http.StatusOK, view)
}

// ServicesHandler handles GET /api/profiles/:id/services.
func (h *ProfileHandler) ServicesHandler(c *gin.Context) {
	items, err := h.Service.Services(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": items})
}

// CreateServiceHandler handles POST /api/services.
func (h *ProfileHandler) CreateServiceHandler(c *gin.Context) {
	var svc models.ServiceOffering
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	created, err := h.Service.CreateService(c.Request.Context(), svc)
	if err != nil {
		respondError(c, err, "Failed to create service")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateServiceHandler handles PATCH /api/services/:id.
func (h *ProfileHandler) UpdateServiceHandler(c *gin.Context) {
	var svc models.ServiceOffering
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	updated, err := h.Service.UpdateService(c.Request.Context(), c.Param("id"), svc)
	if err != nil {
		respondError(c, err, "Failed to update service")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CustomServicesHandler handles GET /api/custom-services.
func (h *ProfileHandler) CustomServicesHandler(c *gin.Context) {
	items, err := h.Service.CustomServices(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to load custom services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"custom_services": items})
}

// CreateCustomServiceHandler handles POST /api/custom-services.
func (h *ProfileHandler) CreateCustomServiceHandler(c *gin.Context) {
	var svc models.CustomService
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	created, err := h.Service.CreateCustomService(c.Request.Context(), svc)
	if err != nil {
		respondError(c, err, "Failed to create custom service")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateCustomServiceHandler handles PATCH /api/custom-services/:id.
func (h *ProfileHandler) UpdateCustomServiceHandler(c *gin.Context) {
	var svc models.CustomService
	if err := c.ShouldBindJSON(&svc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	updated, err := h.Service.UpdateCustomService(c.Request.Context(), c.Param("id"), svc)
	if err != nil {
		respondError(c, err, "Failed to update custom service")
		return
	}
	c.JSON(http.StatusOK, updated)
}
