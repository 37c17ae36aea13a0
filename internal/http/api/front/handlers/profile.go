package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/nansinho/innovtec-v2/internal/models"
	"github.com/nansinho/innovtec-v2/internal/security"
)

// ProfileHandler handles employee profile endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// Get returns the current user's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"email":         user.Email,
		"first_name":    user.FirstName,
		"last_name":     user.LastName,
		"role":          user.Role,
		"job_title":     user.JobTitle,
		"phone":         user.Phone,
		"avatar_url":    user.AvatarURL,
		"date_of_birth": user.DateOfBirth,
		"hire_date":     user.HireDate,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	})
}

// updateProfileRequest defines the editable profile fields.
type updateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	JobTitle  *string `json:"job_title"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

// Update modifies the caller's own profile fields. Role is not editable here.
func (h *ProfileHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body updateProfileRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if body.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*body.FirstName)
	}
	if body.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*body.LastName)
	}
	if body.JobTitle != nil {
		updates["job_title"] = strings.TrimSpace(*body.JobTitle)
	}
	if body.Phone != nil {
		updates["phone"] = strings.TrimSpace(*body.Phone)
	}
	if body.AvatarURL != nil {
		updates["avatar_url"] = strings.TrimSpace(*body.AvatarURL)
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&models.User{}).
		Where("id = ?", userID).
		Updates(updates).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update profile failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// changePasswordRequest defines the request body for password changes.
type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword verifies and updates the user's password.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID := getUserID(c)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body changePasswordRequest
	if errBind := c.ShouldBindJSON(&body); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	oldPassword := strings.TrimSpace(body.OldPassword)
	newPassword := strings.TrimSpace(body.NewPassword)
	if oldPassword == "" || newPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing password"})
		return
	}

	var user models.User
	if errFind := h.db.WithContext(c.Request.Context()).First(&user, userID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	if !security.CheckPassword(user.Password, oldPassword) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "old password incorrect"})
		return
	}

	hash, errHash := security.HashPassword(newPassword)
	if errHash != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "hash password failed"})
		return
	}

	if errUpdate := h.db.WithContext(c.Request.Context()).Model(&user).Updates(map[string]any{
		"password":   hash,
		"updated_at": time.Now().UTC(),
	}).Error; errUpdate != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "change password failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
