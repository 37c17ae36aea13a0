package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/nansinho/innovtec-v2/internal/ai"
)

// Generator dispatches one gated AI generation request.
type Generator interface {
	Generate(ctx context.Context, input ai.GenerateInput) (*ai.Generation, error)
}

// AIHandler handles AI generation endpoints.
type AIHandler struct {
	gateway Generator
}

// NewAIHandler constructs an AIHandler.
func NewAIHandler(gateway Generator) *AIHandler {
	return &AIHandler{gateway: gateway}
}

// generateRequest defines the request body for text generation.
type generateRequest struct {
	Task    string `json:"task"`
	Prompt  string `json:"prompt"`
	Context string `json:"context"`
}

// Generate runs a text-only generation task.
func (h *AIHandler) Generate(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body generateRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if strings.TrimSpace(body.Prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt requis"})
		return
	}

	out, errGen := h.gateway.Generate(c.Request.Context(), ai.GenerateInput{
		UserID:  userID,
		Role:    getUserRole(c),
		Task:    ai.Task(body.Task),
		Prompt:  body.Prompt,
		Context: body.Context,
	})
	h.respond(c, out, errGen)
}

// analyzeFileMaxMemory bounds the multipart parse buffer.
const analyzeFileMaxMemory = 16 << 20

// AnalyzeFile runs a generation task over an uploaded PDF or image.
func (h *AIHandler) AnalyzeFile(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if errParse := c.Request.ParseMultipartForm(analyzeFileMaxMemory); errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	fileHeader, errFile := c.FormFile("file")
	if errFile != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fichier requis"})
		return
	}

	file, errOpen := fileHeader.Open()
	if errOpen != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read file failed"})
		return
	}
	defer func() { _ = file.Close() }()

	data, errRead := io.ReadAll(file)
	if errRead != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "read file failed"})
		return
	}

	task := ai.Task(strings.TrimSpace(c.PostForm("type")))
	if task == "" {
		task = ai.TaskFile
	}

	out, errGen := h.gateway.Generate(c.Request.Context(), ai.GenerateInput{
		UserID: userID,
		Role:   getUserRole(c),
		Task:   task,
		Prompt: c.PostForm("prompt"),
		Attachment: &ai.Attachment{
			Data:     data,
			MimeType: fileHeader.Header.Get("Content-Type"),
		},
	})
	h.respond(c, out, errGen)
}

// respond maps gateway outcomes to HTTP responses.
func (h *AIHandler) respond(c *gin.Context, out *ai.Generation, errGen error) {
	if errGen == nil {
		c.JSON(http.StatusOK, gin.H{
			"result":            out.Result,
			"credits_remaining": out.CreditsRemaining,
		})
		return
	}

	var quotaErr *ai.QuotaError
	if errors.As(errGen, &quotaErr) {
		c.JSON(http.StatusTooManyRequests, gin.H{
			"error":         "crédits IA épuisés pour ce mois",
			"credits_used":  quotaErr.Used,
			"credits_limit": quotaErr.Limit,
		})
		return
	}
	if errors.Is(errGen, ai.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "requête invalide: prompt requis, fichier PDF ou image (PNG, JPG, WebP) de 10 Mo maximum"})
		return
	}
	var provErr *ai.ProviderError
	if errors.As(errGen, &provErr) {
		log.WithError(errGen).Warn("ai: provider call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "erreur lors de la génération IA"})
		return
	}

	log.WithError(errGen).Error("ai: generate failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "erreur lors de la génération IA"})
}
