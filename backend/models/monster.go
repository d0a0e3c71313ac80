package models

import "gorm.io/gorm"

// Monster is the pet creature that levels up as its owner works out.
// SpeciesID is a four character code: a two letter species abbreviation
// followed by a two digit growth stage (KM01 = baby Kettlehell).
type Monster struct {
	gorm.Model
	UserID    uint `gorm:"not null"`
	Name      string
	Species   string `gorm:"not null"`
	SpeciesID string
	Exp       int `gorm:"default:0"`
	Level     int `gorm:"default:1"`
	ImageName string
}
