package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"cleanbook/internal/domain"
	"cleanbook/internal/pkg/response"
	"cleanbook/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	service  *Service
	userRepo *repository.UserRepository
}

func NewHandler(service *Service, userRepo *repository.UserRepository) *Handler {
	return &Handler{service: service, userRepo: userRepo}
}

// RegisterPublicRoutes mounts the unauthenticated store page.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/stores/:slug", h.GetStorePage)
}

// RegisterProtectedRoutes mounts owner-facing catalog management. The auth
// middleware must run first so the actor is in the context.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/stores/:id/services", h.CreateService)
	rg.POST("/stores/:id/services/:service_id/options", h.CreateOption)
	rg.PUT("/stores/:id/business_hours", h.UpdateBusinessHours)
	rg.PUT("/stores/:id/capacity", h.UpdateCapacitySettings)
}

// GetStorePage handles GET /stores/:slug.
func (h *Handler) GetStorePage(c *gin.Context) {
	page, err := h.service.StorePage(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load store")
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) CreateService(c *gin.Context) {
	storeID, actor, ok := h.storeAndActor(c)
	if !ok {
		return
	}

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), actor, storeID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"service": svc})
}

func (h *Handler) CreateOption(c *gin.Context) {
	storeID, actor, ok := h.storeAndActor(c)
	if !ok {
		return
	}
	serviceID, err := strconv.ParseInt(c.Param("service_id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid service id")
		return
	}

	var req CreateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	opt, err := h.service.CreateOption(c.Request.Context(), actor, storeID, serviceID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"option": opt})
}

func (h *Handler) UpdateBusinessHours(c *gin.Context) {
	storeID, actor, ok := h.storeAndActor(c)
	if !ok {
		return
	}

	var req UpdateHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.UpdateBusinessHours(c.Request.Context(), actor, storeID, req); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"store_id": storeID})
}

func (h *Handler) UpdateCapacitySettings(c *gin.Context) {
	storeID, actor, ok := h.storeAndActor(c)
	if !ok {
		return
	}

	var req UpdateCapacityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	store, err := h.service.UpdateCapacitySettings(c.Request.Context(), actor, storeID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"store": store})
}

// storeAndActor parses the :id param and loads the authenticated user placed
// in the context by the auth middleware.
func (h *Handler) storeAndActor(c *gin.Context) (int64, *domain.User, bool) {
	storeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid store id")
		return 0, nil, false
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return 0, nil, false
	}
	actor, err := h.userRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load user")
		return 0, nil, false
	}
	return storeID, actor, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't manage this store")
	case errors.Is(err, ErrInvalidHours):
		response.Error(c, http.StatusBadRequest, "INVALID_HOURS", "Business hours must be keyed by mon..sun")
	case errors.Is(err, ErrInvalidMode), errors.Is(err, ErrInvalidCapacity):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
