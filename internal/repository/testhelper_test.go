package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mlcinall/mentor-service/internal/model"
)

// setupTestDB opens an in-memory SQLite database with the service schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// every pooled connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(
		&model.Mentor{},
		&model.TimeWindow{},
		&model.Request{},
		&model.FavoriteMentor{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedMentor(t *testing.T, repo *Repository, telegramID, name string) *model.Mentor {
	t.Helper()
	mentor := &model.Mentor{TelegramID: telegramID, Name: name, Info: "# " + name}
	if err := repo.Mentor.Create(context.Background(), mentor); err != nil {
		t.Fatalf("create mentor: %v", err)
	}
	return mentor
}

func strPtr(s string) *string { return &s }
