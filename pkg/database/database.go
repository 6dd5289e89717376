package database

import (
	"fmt"
	"log"

	"github.com/artpromedia/aivo-v5-sub004/internal/config"
	"github.com/artpromedia/aivo-v5-sub004/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.HomeworkSession{},
		&model.HomeworkFile{},
		&model.HomeworkWorkProduct{},
		&model.HomeworkHint{},
		&model.RegulationActivity{},
		&model.RegulationSession{},
		&model.EmotionHistory{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Default regulation activity catalog.
	var count int64
	db.Model(&model.RegulationActivity{}).Count(&count)
	if count == 0 {
		defaults := []model.RegulationActivity{
			{Code: "box-breathing", Name: "Box Breathing", ActivityType: model.ActivityBreathing, Description: "Breathe in, hold, out, hold, four counts each", DurationSeconds: 120, MinGrade: "K", Enabled: true},
			{Code: "five-senses", Name: "Five Senses Check", ActivityType: model.ActivityMindfulness, Description: "Name something you can see, hear, touch, smell, taste", DurationSeconds: 180, MinGrade: "K", Enabled: true},
			{Code: "wall-pushes", Name: "Wall Pushes", ActivityType: model.ActivityMovement, Description: "Push against a wall as hard as you can for ten seconds", DurationSeconds: 60, MinGrade: "K", Enabled: true},
			{Code: "fidget-break", Name: "Fidget Break", ActivityType: model.ActivitySensory, Description: "Two minutes with a fidget tool", DurationSeconds: 120, MinGrade: "K", Enabled: true},
			{Code: "draw-it-out", Name: "Draw It Out", ActivityType: model.ActivityCreative, Description: "Draw how you feel right now", DurationSeconds: 300, MinGrade: "3", Enabled: true},
		}
		for _, a := range defaults {
			db.Create(&a)
		}
	}

	return db, nil
}
