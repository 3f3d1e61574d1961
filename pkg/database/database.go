package database

import (
	"fmt"
	"log"

	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"

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
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

// Migrate runs the schema migration and seeds the default marketplace
// organization used by self-registered instructors.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Organization{},
		&model.User{},
		&model.Course{},
		&model.Section{},
		&model.Lecture{},
		&model.Enrollment{},
		&model.LectureProgress{},
		&model.Certificate{},
	)
	if err != nil {
		return err
	}

	var count int64
	db.Model(&model.Organization{}).Count(&count)
	if count == 0 {
		db.Create(&model.Organization{
			Name:        "learnhub",
			DisplayName: "LearnHub Marketplace",
		})
	}

	return nil
}
