package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the profile service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/profile", h.create)
	rg.GET("/profile", h.get)
	rg.PUT("/profile", h.replace)
}

type mutationResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func (h *Handler) create(c *gin.Context) {
	var p Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	id, err := h.Svc.Create(c.Request.Context(), p)
	if err != nil {
		if errors.Is(err, ErrInvalidProfile) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "full_name is required", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, mutationResponse{ID: id, Message: "Profile saved successfully"})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "profile_not_found", "Profile not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}

	respond.OK(c, p)
}

func (h *Handler) replace(c *gin.Context) {
	var p Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	id, err := h.Svc.Replace(c.Request.Context(), p)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidProfile):
			respond.Error(c, http.StatusBadRequest, "validation_error", "full_name is required", nil)
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "profile_not_found", "Profile not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to update profile", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, mutationResponse{ID: id, Message: "Profile updated successfully"})
}
