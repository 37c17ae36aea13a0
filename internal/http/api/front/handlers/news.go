package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dbpkg "github.com/nansinho/innovtec-v2/internal/db"
	"github.com/nansinho/innovtec-v2/internal/models"
)

// NewsHandler handles company news endpoints.
type NewsHandler struct {
	db *gorm.DB
}

// NewNewsHandler constructs a NewsHandler.
func NewNewsHandler(db *gorm.DB) *NewsHandler {
	return &NewsHandler{db: db}
}

// List returns published news, newest first, optionally filtered by category
// and by a case-insensitive title/excerpt search.
func (h *NewsHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).
		Where("is_published = ?", true).
		Order("published_at DESC")
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := dbpkg.NormalizeLikePattern(h.db, "%"+search+"%")
		expr := fmt.Sprintf("%s OR %s",
			dbpkg.CaseInsensitiveLikeExpr(h.db, "title"),
			dbpkg.CaseInsensitiveLikeExpr(h.db, "excerpt"))
		query = query.Where(expr, pattern, pattern)
	}

	var items []models.News
	if errFind := query.Find(&items).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query news failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"news": items})
}

// Get returns one published news article.
func (h *NewsHandler) Get(c *gin.Context) {
	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var item models.News
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND is_published = ?", id, true).
		First(&item).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "news not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query news failed"})
		return
	}
	c.JSON(http.StatusOK, item)
}

// createNewsRequest defines the request body for publishing news.
type createNewsRequest struct {
	Title      string `json:"title"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	Priority   string `json:"priority"`
	ImageURL   string `json:"image_url"`
	IsCarousel bool   `json:"is_carousel"`
	Publish    bool   `json:"publish"`
}

// Create stores a news article. Publishing is restricted to admin and rh.
func (h *NewsHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !hasRole(c, models.RoleAdmin, models.RoleRH) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	var body createNewsRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	title := strings.TrimSpace(body.Title)
	content := strings.TrimSpace(body.Content)
	if title == "" || content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title or content"})
		return
	}
	priority := strings.TrimSpace(body.Priority)
	if priority == "" {
		priority = models.NewsPriorityNormal
	}

	now := time.Now().UTC()
	item := models.News{
		Title:       title,
		Excerpt:     strings.TrimSpace(body.Excerpt),
		Content:     content,
		Category:    strings.TrimSpace(body.Category),
		Priority:    priority,
		ImageURL:    strings.TrimSpace(body.ImageURL),
		IsCarousel:  body.IsCarousel,
		IsPublished: body.Publish,
		AuthorID:    &userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if body.Publish {
		item.PublishedAt = &now
	}

	if errCreate := h.db.WithContext(c.Request.Context()).Create(&item).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create news failed"})
		return
	}
	c.JSON(http.StatusCreated, item)
}
