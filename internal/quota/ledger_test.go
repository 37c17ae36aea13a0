package quota

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/nansinho/innovtec-v2/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}
	if errMigrate := conn.AutoMigrate(&models.AICredit{}); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return conn
}

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time {
		return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	}
}

func TestLimitForRole(t *testing.T) {
	cases := []struct {
		role string
		want int64
	}{
		{"admin", 999999},
		{"rh", 100},
		{"responsable_qse", 100},
		{"chef_chantier", 50},
		{"technicien", 30},
		{"stagiaire", 30},
		{"", 30},
	}
	for _, tc := range cases {
		if got := LimitForRole(tc.role); got != tc.want {
			t.Fatalf("LimitForRole(%q) = %d, want %d", tc.role, got, tc.want)
		}
	}
}

func TestGetOrCreateFreezesLimitAtCreation(t *testing.T) {
	ledger := NewLedger(openTestDB(t)).WithClock(fixedClock(2026, time.February, 15))
	ctx := context.Background()

	record, errGet := ledger.GetOrCreate(ctx, 1, "chef_chantier")
	if errGet != nil {
		t.Fatalf("get or create: %v", errGet)
	}
	if record.CreditsUsed != 0 || record.CreditsLimit != 50 {
		t.Fatalf("fresh record: used=%d limit=%d", record.CreditsUsed, record.CreditsLimit)
	}

	// Role change mid-month does not touch the stored limit.
	again, errAgain := ledger.GetOrCreate(ctx, 1, "admin")
	if errAgain != nil {
		t.Fatalf("get or create again: %v", errAgain)
	}
	if again.ID != record.ID {
		t.Fatalf("expected same record, got %d and %d", record.ID, again.ID)
	}
	if again.CreditsLimit != 50 {
		t.Fatalf("limit changed mid-period: %d", again.CreditsLimit)
	}
}

func TestGetOrCreateSamePeriodSameRecord(t *testing.T) {
	conn := openTestDB(t)
	ctx := context.Background()

	feb15 := NewLedger(conn).WithClock(fixedClock(2026, time.February, 15))
	feb28 := NewLedger(conn).WithClock(fixedClock(2026, time.February, 28))
	mar01 := NewLedger(conn).WithClock(fixedClock(2026, time.March, 1))

	first, errFirst := feb15.GetOrCreate(ctx, 7, "technicien")
	if errFirst != nil {
		t.Fatalf("feb 15: %v", errFirst)
	}
	if _, errConsume := feb15.Consume(ctx, first.ID); errConsume != nil {
		t.Fatalf("consume: %v", errConsume)
	}

	second, errSecond := feb28.GetOrCreate(ctx, 7, "technicien")
	if errSecond != nil {
		t.Fatalf("feb 28: %v", errSecond)
	}
	if second.ID != first.ID {
		t.Fatalf("same month should reuse the record")
	}
	if second.CreditsUsed != 1 {
		t.Fatalf("expected used=1, got %d", second.CreditsUsed)
	}

	third, errThird := mar01.GetOrCreate(ctx, 7, "technicien")
	if errThird != nil {
		t.Fatalf("mar 01: %v", errThird)
	}
	if third.ID == first.ID {
		t.Fatalf("new month should create a new record")
	}
	if third.CreditsUsed != 0 {
		t.Fatalf("new month starts at 0, got %d", third.CreditsUsed)
	}
}

func TestConsumeCountsEachCall(t *testing.T) {
	ledger := NewLedger(openTestDB(t)).WithClock(fixedClock(2026, time.April, 2))
	ctx := context.Background()

	record, errGet := ledger.GetOrCreate(ctx, 3, "rh")
	if errGet != nil {
		t.Fatalf("get or create: %v", errGet)
	}

	for i := 1; i <= 5; i++ {
		updated, errConsume := ledger.Consume(ctx, record.ID)
		if errConsume != nil {
			t.Fatalf("consume %d: %v", i, errConsume)
		}
		if updated.CreditsUsed != int64(i) {
			t.Fatalf("after %d consumes, used=%d", i, updated.CreditsUsed)
		}
	}
}

func TestConsumeStopsAtLimit(t *testing.T) {
	ledger := NewLedger(openTestDB(t)).WithClock(fixedClock(2026, time.April, 2))
	ctx := context.Background()

	record, errGet := ledger.GetOrCreate(ctx, 4, "technicien")
	if errGet != nil {
		t.Fatalf("get or create: %v", errGet)
	}

	for i := 0; i < 30; i++ {
		if _, errConsume := ledger.Consume(ctx, record.ID); errConsume != nil {
			t.Fatalf("consume %d: %v", i, errConsume)
		}
	}

	if _, errConsume := ledger.Consume(ctx, record.ID); errConsume != ErrExhausted {
		t.Fatalf("expected ErrExhausted, got %v", errConsume)
	}

	var final models.AICredit
	if errFind := ledger.db.First(&final, record.ID).Error; errFind != nil {
		t.Fatalf("reload: %v", errFind)
	}
	if final.CreditsUsed != 30 {
		t.Fatalf("used moved past the limit: %d", final.CreditsUsed)
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	cases := []struct {
		used, limit, want int64
	}{
		{0, 30, 30},
		{29, 30, 1},
		{30, 30, 0},
		{31, 30, 0},
	}
	for _, tc := range cases {
		record := &models.AICredit{CreditsUsed: tc.used, CreditsLimit: tc.limit}
		if got := Remaining(record); got != tc.want {
			t.Fatalf("Remaining(used=%d limit=%d) = %d, want %d", tc.used, tc.limit, got, tc.want)
		}
	}
	if Remaining(nil) != 0 {
		t.Fatal("Remaining(nil) should be 0")
	}
}

func TestPeriodAt(t *testing.T) {
	feb := time.Date(2026, time.February, 15, 23, 59, 0, 0, time.UTC)
	if got := PeriodAt(feb); got != "2026-02" {
		t.Fatalf("PeriodAt feb = %s", got)
	}
	mar := time.Date(2026, time.March, 1, 0, 0, 1, 0, time.UTC)
	if got := PeriodAt(mar); got != "2026-03" {
		t.Fatalf("PeriodAt mar = %s", got)
	}
}
