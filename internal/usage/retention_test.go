package usage

import (
	"context"
	"testing"
	"time"

	dbpkg "github.com/nansinho/innovtec-v2/internal/db"
	"github.com/nansinho/innovtec-v2/internal/models"
)

func TestRetentionCleanerDeletesOnlyOldRows(t *testing.T) {
	conn, errOpen := dbpkg.Open(":memory:")
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := dbpkg.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}

	now := time.Now().UTC()
	old := models.AIUsage{UserID: 1, Task: "news", Model: "m", RequestedAt: now.AddDate(0, 0, -200)}
	recent := models.AIUsage{UserID: 1, Task: "news", Model: "m", RequestedAt: now.AddDate(0, 0, -1)}
	for _, row := range []*models.AIUsage{&old, &recent} {
		if errCreate := conn.Create(row).Error; errCreate != nil {
			t.Fatalf("create usage: %v", errCreate)
		}
	}

	cleaner := NewRetentionCleaner(conn)
	cleaner.cleanupOnce(context.Background())

	var count int64
	if errCount := conn.Model(&models.AIUsage{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count usages: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected 1 remaining row, got %d", count)
	}

	var remaining models.AIUsage
	if errFind := conn.First(&remaining).Error; errFind != nil {
		t.Fatalf("find remaining: %v", errFind)
	}
	if remaining.ID != recent.ID {
		t.Fatalf("expected recent row to survive, got id=%d", remaining.ID)
	}
}
