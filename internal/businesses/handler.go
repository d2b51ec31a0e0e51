package businesses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"permits-backend/internal/shared/server/middleware"
	"permits-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches business routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/businesses", h.list)
	rg.POST("/businesses", h.create)
	rg.PATCH("/businesses/:id", h.update)
	rg.DELETE("/businesses/:id", h.remove)
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	list, err := h.Svc.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list businesses", nil)
		return
	}

	resp := make([]BusinessResponse, 0, len(list))
	for _, biz := range list {
		resp = append(resp, toResponse(biz))
	}
	respond.JSON(c, http.StatusOK, resp)
}

type createBusinessRequest struct {
	Name             string `json:"name"`
	Phone            string `json:"phone"`
	Notes            string `json:"notes"`
	BusinessTypeName string `json:"businessTypeName"`
	JurisdictionName string `json:"jurisdictionName"`
}

func (h *Handler) create(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req createBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	biz, err := h.Svc.Create(c.Request.Context(), userID, CreateInput{
		Name:             req.Name,
		Phone:            req.Phone,
		Notes:            req.Notes,
		BusinessTypeName: req.BusinessTypeName,
		JurisdictionName: req.JurisdictionName,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create business", nil)
		}
		return
	}

	c.Set("businessId", biz.ID)
	respond.JSON(c, http.StatusCreated, toResponse(biz))
}

type updateBusinessRequest struct {
	Name             *string `json:"name"`
	Phone            *string `json:"phone"`
	Notes            *string `json:"notes"`
	BusinessTypeName *string `json:"businessTypeName"`
	JurisdictionName *string `json:"jurisdictionName"`
}

func (h *Handler) update(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	businessID := c.Param("id")
	c.Set("businessId", businessID)

	var req updateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	biz, err := h.Svc.Update(c.Request.Context(), userID, businessID, UpdateInput{
		Name:             req.Name,
		Phone:            req.Phone,
		Notes:            req.Notes,
		BusinessTypeName: req.BusinessTypeName,
		JurisdictionName: req.JurisdictionName,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "business not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update business", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(biz))
}

func (h *Handler) remove(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	businessID := c.Param("id")
	c.Set("businessId", businessID)

	if err := h.Svc.Delete(c.Request.Context(), userID, businessID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "business not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete business", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{"deleted": true})
}
