package utils

import (
	"fmt"

	"fitnessfiend/backend/config"
	"fitnessfiend/backend/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// MigrateDB provisions every table and seeds the fitness goal lookup.
func MigrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.FitnessGoal{},
		&models.User{},
		&models.LoginHistory{},
		&models.Monster{},
		&models.Workout{},
		&models.WorkoutConnection{},
		&models.WorkoutTip{},
		&models.WorkoutLog{},
		&models.UserRelationship{},
		&models.UserPR{},
	)
	if err != nil {
		return err
	}

	for _, name := range []string{"general", "Strength", "Endurance"} {
		var goal models.FitnessGoal
		if err := db.Where("name = ?", name).FirstOrCreate(&goal, models.FitnessGoal{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
