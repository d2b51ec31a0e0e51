package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"permits-backend/internal/shared/server/middleware"
	"permits-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/profile", h.getProfile)
	rg.PATCH("/profile", h.patchProfile)
}

func (h *Handler) getProfile(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	user, err := h.Svc.GetByID(c.Request.Context(), userID)
	if errors.Is(err, ErrNotFound) {
		// First authenticated request for this identity: create the local row.
		email := middleware.UserEmailFromContext(c)
		name := middleware.UserNameFromContext(c)
		if ensureErr := h.Svc.EnsureFromAuth(c.Request.Context(), userID, email, name); ensureErr != nil {
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to create user", nil)
			return
		}
		user, err = h.Svc.GetByID(c.Request.Context(), userID)
	}
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(user))
}

type patchProfileRequest struct {
	FullName *string `json:"fullName"`
	Phone    *string `json:"phone"`
}

func (h *Handler) patchProfile(c *gin.Context) {
	if h.Svc == nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "service unavailable", nil)
		return
	}
	userID := middleware.UserIDFromContext(c)

	var req patchProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	current, err := h.Svc.GetByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}

	fullName := current.FullName
	if req.FullName != nil {
		fullName = strings.TrimSpace(*req.FullName)
	}
	phone := current.Phone
	if req.Phone != nil {
		phone = strings.TrimSpace(*req.Phone)
	}

	user, err := h.Svc.UpdateProfile(c.Request.Context(), userID, fullName, phone)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(user))
}

func toResponse(user User) gin.H {
	return gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"fullName": user.FullName,
		"phone":    user.Phone,
	}
}
