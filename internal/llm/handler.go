package llm

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cvmaker-backend/internal/shared/server/respond"
)

// Handler exposes a direct chat endpoint for prompt experiments.
type Handler struct {
	Client Client
}

// NewHandler constructs a Handler.
func NewHandler(client Client) *Handler {
	return &Handler{Client: client}
}

// RegisterRoutes attaches LLM routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/llm/chat", h.chat)
}

type chatRequest struct {
	Message      string `json:"message"`
	Model        string `json:"model"`
	GeminiAPIKey string `json:"gemini_api_key"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (h *Handler) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid json body", nil)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		return
	}

	text, err := h.Client.Generate(c.Request.Context(), GenerateInput{
		Prompt:         req.Message,
		Model:          strings.TrimSpace(req.Model),
		APIKeyOverride: strings.TrimSpace(req.GeminiAPIKey),
	})
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "upstream_error", "LLM request failed", nil)
		return
	}

	respond.JSON(c, http.StatusOK, chatResponse{Response: text})
}
