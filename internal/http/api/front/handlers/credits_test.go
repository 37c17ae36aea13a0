package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nansinho/innovtec-v2/internal/models"
	"github.com/nansinho/innovtec-v2/internal/quota"
)

func creditsContext(t *testing.T, userID uint64, role string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userID", userID)
	c.Set("userRole", role)
	c.Request = httptest.NewRequest(http.MethodGet, "/v0/front/ai/credits", nil)
	return c, w
}

func TestCreditsMineCreatesRecordWithRoleLimit(t *testing.T) {
	conn := newTestDB(t)
	ledger := quota.NewLedger(conn)
	h := NewCreditsHandler(conn, ledger)

	c, w := creditsContext(t, 42, models.RoleChefChantier)
	h.Mine(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Period    string `json:"period"`
		Used      int64  `json:"used"`
		Limit     int64  `json:"limit"`
		Remaining int64  `json:"remaining"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if resp.Limit != 50 || resp.Used != 0 || resp.Remaining != 50 {
		t.Fatalf("expected fresh 0/50 balance, got used=%d limit=%d remaining=%d", resp.Used, resp.Limit, resp.Remaining)
	}
	if resp.Period != quota.CurrentPeriod() {
		t.Fatalf("expected period %q, got %q", quota.CurrentPeriod(), resp.Period)
	}
}

func TestCreditsAllForbiddenForTechnicien(t *testing.T) {
	conn := newTestDB(t)
	h := NewCreditsHandler(conn, quota.NewLedger(conn))

	c, w := creditsContext(t, 1, models.RoleTechnicien)
	h.All(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
}

func TestCreditsAllListsCurrentPeriodHeaviestFirst(t *testing.T) {
	conn := newTestDB(t)
	ledger := quota.NewLedger(conn)
	h := NewCreditsHandler(conn, ledger)

	now := time.Now().UTC()
	users := []models.User{
		{Email: "a@innovtec.fr", Password: "x", FirstName: "Alice", LastName: "Martin", Role: models.RoleTechnicien, Active: true, CreatedAt: now, UpdatedAt: now},
		{Email: "b@innovtec.fr", Password: "x", FirstName: "Bruno", LastName: "Petit", Role: models.RoleChefChantier, Active: true, CreatedAt: now, UpdatedAt: now},
	}
	for i := range users {
		if errCreate := conn.Create(&users[i]).Error; errCreate != nil {
			t.Fatalf("create user: %v", errCreate)
		}
	}
	records := []models.AICredit{
		{UserID: users[0].ID, Period: quota.CurrentPeriod(), CreditsUsed: 3, CreditsLimit: 30},
		{UserID: users[1].ID, Period: quota.CurrentPeriod(), CreditsUsed: 12, CreditsLimit: 50},
	}
	for i := range records {
		if errCreate := conn.Create(&records[i]).Error; errCreate != nil {
			t.Fatalf("create credit: %v", errCreate)
		}
	}
	// A past period row must not show up.
	stale := models.AICredit{UserID: users[0].ID, Period: "2020-01", CreditsUsed: 30, CreditsLimit: 30}
	if errCreate := conn.Create(&stale).Error; errCreate != nil {
		t.Fatalf("create stale credit: %v", errCreate)
	}

	c, w := creditsContext(t, 99, models.RoleRH)
	h.All(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Credits []struct {
			FirstName   string `json:"first_name"`
			CreditsUsed int64  `json:"credits_used"`
		} `json:"credits"`
	}
	if errDecode := json.Unmarshal(w.Body.Bytes(), &resp); errDecode != nil {
		t.Fatalf("decode response: %v", errDecode)
	}
	if len(resp.Credits) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(resp.Credits))
	}
	if resp.Credits[0].FirstName != "Bruno" || resp.Credits[0].CreditsUsed != 12 {
		t.Fatalf("expected heaviest user first, got %+v", resp.Credits[0])
	}
}
