package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nansinho/innovtec-v2/internal/models"
)

// UsageHandler handles AI usage statistics endpoints.
type UsageHandler struct {
	db *gorm.DB
}

// NewUsageHandler constructs a UsageHandler.
func NewUsageHandler(db *gorm.DB) *UsageHandler {
	return &UsageHandler{db: db}
}

// usageSummary aggregates AI call statistics.
type usageSummary struct {
	TotalRequests  int64 `json:"total_requests"`
	FailedRequests int64 `json:"failed_requests"`
	InputTokens    int64 `json:"input_tokens"`
	OutputTokens   int64 `json:"output_tokens"`
}

// Stats returns the caller's AI usage summaries for recent time windows.
func (h *UsageHandler) Stats(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	periods := map[string]time.Time{
		"today":   today,
		"7_days":  today.AddDate(0, 0, -6),
		"30_days": today.AddDate(0, 0, -29),
	}

	result := make(map[string]usageSummary)
	for name, since := range periods {
		var summary usageSummary
		if errScan := h.db.WithContext(c.Request.Context()).Model(&models.AIUsage{}).
			Where("user_id = ? AND requested_at >= ?", userID, since).
			Select("COUNT(*) AS total_requests, COALESCE(SUM(CASE WHEN failed THEN 1 ELSE 0 END), 0) AS failed_requests, COALESCE(SUM(input_tokens), 0) AS input_tokens, COALESCE(SUM(output_tokens), 0) AS output_tokens").
			Scan(&summary).Error; errScan != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query usage failed"})
			return
		}
		result[name] = summary
	}

	c.JSON(http.StatusOK, result)
}
