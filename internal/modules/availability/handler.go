package availability

import (
	"errors"
	"net/http"

	"cleanbook/internal/domain"
	"cleanbook/internal/modules/pricing"
	"cleanbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/availability", h.Availability)
}

type availabilityRequest struct {
	StoreSlug string            `json:"store_slug" binding:"required"`
	Date      string            `json:"date" binding:"required"`
	CartItems []domain.CartItem `json:"cart_items"`
}

func (h *Handler) Availability(c *gin.Context) {
	var req availabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	res, err := h.service.ForDate(c.Request.Context(), req.StoreSlug, req.Date, req.CartItems)
	if err != nil {
		switch {
		case errors.Is(err, ErrStoreNotFound):
			response.Error(c, http.StatusNotFound, "STORE_NOT_FOUND", "Store not found")
		case errors.Is(err, ErrInvalidDate):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Date must be YYYY-MM-DD")
		case errors.Is(err, pricing.ErrUnknownService), errors.Is(err, pricing.ErrInvalidQuantity):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute availability")
		}
		return
	}

	// The capacity-pool contract is a plain list of bookable start times.
	if res.Mode == domain.AvailabilityCapacityPool {
		starts := make([]string, 0, len(res.Slots))
		for _, s := range res.Slots {
			starts = append(starts, s.Start)
		}
		response.Success(c, http.StatusOK, gin.H{
			"store_id":               res.StoreID,
			"date":                   res.Date,
			"max_capacity":           res.MaxCapacity,
			"total_duration_minutes": res.TotalDurationMin,
			"slots":                  starts,
		})
		return
	}

	response.Success(c, http.StatusOK, res)
}
