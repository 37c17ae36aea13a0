package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nansinho/innovtec-v2/internal/models"
)

// notificationListLimit caps the list endpoint.
const notificationListLimit = 50

// NotificationHandler handles in-app notification endpoints.
type NotificationHandler struct {
	db *gorm.DB
}

// NewNotificationHandler constructs a NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

// List returns the caller's most recent notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var items []models.Notification
	if errFind := h.db.WithContext(c.Request.Context()).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(notificationListLimit).
		Find(&items).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query notifications failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": items})
}

// UnreadCount returns the number of unread notifications for the caller.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var count int64
	if errCount := h.db.WithContext(c.Request.Context()).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; errCount != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query notifications failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// MarkRead marks one of the caller's notifications as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, errParse := strconv.ParseUint(c.Param("id"), 10, 64)
	if errParse != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update notification failed"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// MarkAllRead marks every unread notification of the caller as read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update notifications failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
