package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nansinho/innovtec-v2/internal/models"
	"gorm.io/gorm"
)

func seedNotifications(t *testing.T, conn *gorm.DB) {
	t.Helper()
	rows := []models.Notification{
		{UserID: 1, Type: "news", Title: "n1", IsRead: false},
		{UserID: 1, Type: "danger", Title: "n2", IsRead: false},
		{UserID: 1, Type: "system", Title: "n3", IsRead: true},
		{UserID: 2, Type: "news", Title: "other", IsRead: false},
	}
	for i := range rows {
		if errCreate := conn.Create(&rows[i]).Error; errCreate != nil {
			t.Fatalf("create notification: %v", errCreate)
		}
	}
}

func TestUnreadCountOnlyCountsCallerUnread(t *testing.T) {
	conn := newTestDB(t)
	seedNotifications(t, conn)
	h := NewNotificationHandler(conn)

	c, w := authedContext(t, http.MethodGet, "/v0/front/notifications/unread-count", "", 1, models.RoleTechnicien)
	h.UnreadCount(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Count int64 `json:"count"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 unread, got %d", resp.Count)
	}
}

func TestMarkReadRejectsForeignNotification(t *testing.T) {
	conn := newTestDB(t)
	seedNotifications(t, conn)
	h := NewNotificationHandler(conn)

	var foreign models.Notification
	if errFind := conn.Where("user_id = ?", 2).First(&foreign).Error; errFind != nil {
		t.Fatalf("find foreign notification: %v", errFind)
	}

	c, w := authedContext(t, http.MethodPost, "/v0/front/notifications/1/read", "", 1, models.RoleTechnicien)
	c.Params = gin.Params{{Key: "id", Value: strconv.FormatUint(foreign.ID, 10)}}
	h.MarkRead(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestMarkAllReadClearsCallerOnly(t *testing.T) {
	conn := newTestDB(t)
	seedNotifications(t, conn)
	h := NewNotificationHandler(conn)

	c, w := authedContext(t, http.MethodPost, "/v0/front/notifications/read-all", "", 1, models.RoleTechnicien)
	h.MarkAllRead(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var mine, others int64
	if errCount := conn.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", 1, false).Count(&mine).Error; errCount != nil {
		t.Fatalf("count mine: %v", errCount)
	}
	if errCount := conn.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", 2, false).Count(&others).Error; errCount != nil {
		t.Fatalf("count others: %v", errCount)
	}
	if mine != 0 {
		t.Fatalf("expected caller unread to drop to 0, got %d", mine)
	}
	if others != 1 {
		t.Fatalf("expected other user's unread untouched, got %d", others)
	}
}
