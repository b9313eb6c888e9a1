package jobposting

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/server/respond"
)

// Extractor resolves a posting URL into job details.
type Extractor interface {
	Extract(ctx context.Context, jobURL string) (JobDetails, error)
}

var _ Extractor = (*Client)(nil)

// Handler wires HTTP handlers for posting extraction.
type Handler struct {
	Extractor Extractor
}

// NewHandler constructs a Handler.
func NewHandler(extractor Extractor) *Handler {
	return &Handler{Extractor: extractor}
}

// RegisterRoutes attaches job posting routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/job/extract", h.extract)
}

type extractRequest struct {
	URL string `json:"url"`
}

func (h *Handler) extract(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}

	details, err := h.Extractor.Extract(c.Request.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidURL):
			respond.Error(c, http.StatusBadRequest, "validation_error", "url is not a LinkedIn job posting", nil)
		case errors.Is(err, ErrEmptyPosting):
			respond.Error(c, http.StatusBadGateway, "upstream_error", "job posting could not be extracted", nil)
		default:
			respond.Error(c, http.StatusBadGateway, "upstream_error", "job posting fetch failed", nil)
		}
		return
	}

	respond.OK(c, details)
}
