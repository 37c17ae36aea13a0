package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nansinho/innovtec-v2/internal/models"
	"github.com/nansinho/innovtec-v2/internal/quota"
)

// CreditsHandler handles AI credit balance endpoints.
type CreditsHandler struct {
	db     *gorm.DB
	ledger *quota.Ledger
}

// NewCreditsHandler constructs a CreditsHandler.
func NewCreditsHandler(db *gorm.DB, ledger *quota.Ledger) *CreditsHandler {
	return &CreditsHandler{db: db, ledger: ledger}
}

// Mine returns the caller's credit balance for the current period, creating
// the record on first access.
func (h *CreditsHandler) Mine(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	record, errGet := h.ledger.GetOrCreate(c.Request.Context(), userID, getUserRole(c))
	if errGet != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query credits failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":    record.Period,
		"used":      record.CreditsUsed,
		"limit":     record.CreditsLimit,
		"remaining": quota.Remaining(record),
	})
}

// creditRow is one entry of the admin credit overview.
type creditRow struct {
	UserID       uint64 `json:"user_id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Role         string `json:"role"`
	CreditsUsed  int64  `json:"credits_used"`
	CreditsLimit int64  `json:"credits_limit"`
}

// All returns every user's balance for the current period, heaviest users
// first. Restricted to admin and rh.
func (h *CreditsHandler) All(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !hasRole(c, models.RoleAdmin, models.RoleRH) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var rows []creditRow
	if errScan := h.db.WithContext(c.Request.Context()).Model(&models.AICredit{}).
		Select("ai_credits.user_id, users.first_name, users.last_name, users.role, ai_credits.credits_used, ai_credits.credits_limit").
		Joins("JOIN users ON users.id = ai_credits.user_id").
		Where("ai_credits.period = ?", h.ledger.Period()).
		Order("ai_credits.credits_used DESC").
		Scan(&rows).Error; errScan != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query credits failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"period":  h.ledger.Period(),
		"credits": rows,
	})
}
