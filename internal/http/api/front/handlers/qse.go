package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nansinho/innovtec-v2/internal/models"
)

// QSEHandler handles danger report and REX endpoints.
type QSEHandler struct {
	db *gorm.DB
}

// NewQSEHandler constructs a QSEHandler.
func NewQSEHandler(db *gorm.DB) *QSEHandler {
	return &QSEHandler{db: db}
}

// ListDangers returns danger reports, newest first.
func (h *QSEHandler) ListDangers(c *gin.Context) {
	var reports []models.DangerReport
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&reports).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query dangers failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dangers": reports})
}

// createDangerRequest defines the request body for reporting a danger.
type createDangerRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	PhotoURL    string `json:"photo_url"`
	Severity    int    `json:"severity"`
}

// CreateDanger records a dangerous situation. Any authenticated employee can
// report one.
func (h *QSEHandler) CreateDanger(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body createDangerRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	title := strings.TrimSpace(body.Title)
	description := strings.TrimSpace(body.Description)
	if title == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title or description"})
		return
	}
	if body.Severity < 1 || body.Severity > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "severity must be between 1 and 5"})
		return
	}

	report := models.DangerReport{
		Title:       title,
		Description: description,
		Location:    strings.TrimSpace(body.Location),
		PhotoURL:    strings.TrimSpace(body.PhotoURL),
		Status:      models.DangerStatusSignale,
		Severity:    body.Severity,
		ReportedBy:  userID,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&report).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create danger failed"})
		return
	}
	c.JSON(http.StatusCreated, report)
}

// updateDangerStatusRequest defines the request body for status changes.
type updateDangerStatusRequest struct {
	Status string `json:"status"`
}

// validDangerStatuses guards the status lifecycle values.
var validDangerStatuses = map[string]struct{}{
	models.DangerStatusSignale: {},
	models.DangerStatusEnCours: {},
	models.DangerStatusResolu:  {},
	models.DangerStatusCloture: {},
}

// UpdateDangerStatus moves a report through its lifecycle. Restricted to
// admin and responsable_qse.
func (h *QSEHandler) UpdateDangerStatus(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	if !hasRole(c, models.RoleAdmin, models.RoleResponsableQSE) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body updateDangerStatusRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	status := strings.TrimSpace(body.Status)
	if _, ok := validDangerStatuses[status]; !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	var report models.DangerReport
	if errFind := h.db.WithContext(c.Request.Context()).First(&report, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "danger not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query danger failed"})
		return
	}

	now := time.Now().UTC()
	updates := map[string]any{"status": status, "updated_at": now}
	if status == models.DangerStatusResolu || status == models.DangerStatusCloture {
		updates["resolved_at"] = now
	}
	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&report).Updates(updates).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update danger failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListRex returns lessons-learned reports, newest first.
func (h *QSEHandler) ListRex(c *gin.Context) {
	var items []models.Rex
	if errFind := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&items).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query rex failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rex": items})
}

// createRexRequest defines the request body for a lessons-learned report.
type createRexRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	LessonsLearned string `json:"lessons_learned"`
	Chantier       string `json:"chantier"`
}

// CreateRex records a lessons-learned report.
func (h *QSEHandler) CreateRex(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body createRexRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	title := strings.TrimSpace(body.Title)
	description := strings.TrimSpace(body.Description)
	if title == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing title or description"})
		return
	}

	item := models.Rex{
		Title:          title,
		Description:    description,
		LessonsLearned: strings.TrimSpace(body.LessonsLearned),
		Chantier:       strings.TrimSpace(body.Chantier),
		AuthorID:       userID,
	}
	if errCreate := h.db.WithContext(c.Request.Context()).Create(&item).Error; errCreate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create rex failed"})
		return
	}
	c.JSON(http.StatusCreated, item)
}
