package models

import "gorm.io/gorm"

// Workout is a catalog entry. The catalog is read-only at request time and
// bulk-loaded by the importer.
type Workout struct {
	gorm.Model
	Type       string `gorm:"not null"` // body part category (Chest, Calves, ...)
	Name       string `gorm:"not null"`
	Equipment  string
	Difficulty string // easy, moderate, hard
	IsPriority bool   `gorm:"default:false"` // preferred choice for its category
}

// WorkoutLog is one generated plan instance. Details holds the ordered,
// comma separated workout IDs of the plan. Append-only; the latest log for
// a user is the most recent by creation time.
type WorkoutLog struct {
	gorm.Model
	UserID           uint   `gorm:"not null"`
	Details          string `gorm:"not null"`
	UserHasCompleted bool   `gorm:"default:false"`
	Reps             int
	Sets             int
	Weight           float64
	TimeDuration     float64
	DistanceDuration float64
	UserEnjoyment    int `gorm:"default:0"`
}

type WorkoutTip struct {
	gorm.Model
	TipStr    string `gorm:"not null"`
	WorkoutID uint   `gorm:"not null"`
}

// WorkoutConnection maps a workout to the fitness goals it serves.
type WorkoutConnection struct {
	WorkoutID     uint `gorm:"not null"`
	FitnessGoalID uint `gorm:"not null"`
}
