package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email              string `gorm:"unique;not null"`
	Username           string `gorm:"unique;not null"`
	PasswordHash       string `gorm:"not null"`
	LastLoggedIn       time.Time
	LoginStreak        int `gorm:"default:1"`
	Height             float64
	Weight             float64
	FitnessGoalID      *uint
	HasFinishedQuiz    bool `gorm:"default:false"`
	WantsEmails        bool
	ShowTips           bool   `gorm:"default:true"`
	Experience         string // free text: beginner, intermediate, ...
	DaysPerWeek        int
	AvailableEquipment string
}

type FitnessGoal struct {
	gorm.Model
	Name string `gorm:"not null"`
}

type LoginHistory struct {
	gorm.Model
	UserID    uint
	LoginTime time.Time
}

// UserRelationship links two users (friends, rivals, ...).
type UserRelationship struct {
	UserFirstID      uint   `gorm:"not null"`
	UserSecondID     uint   `gorm:"not null"`
	RelationshipType string `gorm:"not null"`
}

// UserPR stores a user's personal record for a workout.
type UserPR struct {
	UserID    uint `gorm:"not null"`
	WorkoutID uint `gorm:"not null"`
	Weight    float64
	Time      float64
	Distance  float64
}
