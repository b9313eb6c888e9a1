package cv

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/cv/render"
	"cvmaker-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers for the generation and render flows.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches CV routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cv/generate-data", h.generateData)
	rg.POST("/cv/render", h.renderDocument)
	rg.POST("/job/generate-document", h.generateDocument)
	rg.POST("/job/generate-document-from-description", h.generateDocumentFromDescription)
}

func (h *Handler) generateData(c *gin.Context) {
	var req GenerateDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	resp, err := h.Svc.GenerateData(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond.OK(c, resp)
}

func (h *Handler) renderDocument(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}

	doc, err := h.Svc.RenderDocument(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	writeDocument(c, doc)
}

func (h *Handler) generateDocument(c *gin.Context) {
	var req GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	if req.URL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "url is required", nil)
		return
	}
	req.JobDescription = ""

	doc, err := h.Svc.GenerateDocument(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	writeDocument(c, doc)
}

func (h *Handler) generateDocumentFromDescription(c *gin.Context) {
	var req GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	if req.JobDescription == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "job_description is required", nil)
		return
	}
	req.URL = ""

	doc, err := h.Svc.GenerateDocument(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	writeDocument(c, doc)
}

func writeDocument(c *gin.Context, doc RenderedDocument) {
	c.Header("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	c.Data(http.StatusOK, doc.MediaType, doc.Bytes)
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, render.ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, "render_error", "format must be pdf or docx", nil)
	case errors.Is(err, ErrProfileNotFound):
		respond.Error(c, http.StatusNotFound, "profile_not_found", "Profile not found. Save a profile first.", nil)
	case errors.Is(err, ErrUnrecoverableOutput):
		respond.Error(c, http.StatusBadGateway, "invalid_llm_output", "model output could not be parsed into documents", nil)
	case errors.Is(err, ErrUpstream):
		respond.Error(c, http.StatusBadGateway, "upstream_error", "an upstream dependency failed", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "unexpected failure", nil)
	}
}
