package repository

import (
	"testing"

	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.HomeworkSession{},
		&model.HomeworkFile{},
		&model.HomeworkWorkProduct{},
		&model.HomeworkHint{},
		&model.RegulationActivity{},
		&model.RegulationSession{},
		&model.EmotionHistory{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
