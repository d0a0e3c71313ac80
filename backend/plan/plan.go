package plan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fitnessfiend/backend/models"

	"gorm.io/gorm"
)

// ErrNoPlan is returned when a user has no workout log yet.
var ErrNoPlan = errors.New("user has no workout plan")

// Kind selects the category template a plan is built from. The goal stored
// on the user decides the kind: "general" trains the whole body in one
// session, "Strength" uses a push/pull split, everything else falls back to
// an upper/lower split.
type Kind int

const (
	FullBody Kind = iota
	PushPull
	UpperLower
)

func KindForGoal(goal string) Kind {
	switch goal {
	case "general":
		return FullBody
	case "Strength":
		return PushPull
	default:
		return UpperLower
	}
}

func (k Kind) Name() string {
	switch k {
	case FullBody:
		return "Full Body"
	case PushPull:
		return "Push/Pull"
	default:
		return "Upper/Lower"
	}
}

// Categories returns the ordered body part list of the template. One
// workout is picked per category.
func (k Kind) Categories() []string {
	switch k {
	case PushPull:
		return []string{
			"Chest", "Shoulders", "Biceps", "Triceps",
			"Upper Back", "Abs", "Thighs", "Hamstrings",
		}
	default: // FullBody and UpperLower share the same category set
		return []string{
			"Chest", "Shoulders", "Biceps", "Triceps",
			"Upper Back", "Lower Back", "Butt",
			"Thighs", "Hamstrings", "Calves",
		}
	}
}

type Generator struct {
	DB *gorm.DB
}

func NewGenerator(db *gorm.DB) *Generator {
	return &Generator{DB: db}
}

// Generate builds a plan for the user from their stored fitness goal and
// persists it as a new workout log. Categories with no priority workout are
// skipped; a partial plan is still a plan. Ties between priority workouts
// of the same category go to the lowest workout ID.
func (g *Generator) Generate(userID uint) (*models.WorkoutLog, error) {
	var user models.User
	if err := g.DB.First(&user, userID).Error; err != nil {
		return nil, fmt.Errorf("load user %d: %w", userID, err)
	}

	goal := "general"
	if user.FitnessGoalID != nil {
		var fitnessGoal models.FitnessGoal
		if err := g.DB.First(&fitnessGoal, *user.FitnessGoalID).Error; err == nil {
			goal = fitnessGoal.Name
		}
	}

	kind := KindForGoal(goal)
	ids := make([]uint, 0, len(kind.Categories()))
	for _, category := range kind.Categories() {
		var workout models.Workout
		err := g.DB.Where("type = ? AND is_priority = ?", category, true).
			Order("id").
			First(&workout).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // empty slot, plan stays partial
			}
			return nil, fmt.Errorf("pick workout for %s: %w", category, err)
		}
		ids = append(ids, workout.ID)
	}

	log := models.WorkoutLog{
		UserID:           userID,
		Details:          JoinDetails(ids),
		UserHasCompleted: false,
		UserEnjoyment:    0,
	}
	if err := g.DB.Create(&log).Error; err != nil {
		return nil, fmt.Errorf("store workout log: %w", err)
	}
	return &log, nil
}

// LatestLog returns the user's most recent workout log.
func LatestLog(db *gorm.DB, userID uint) (*models.WorkoutLog, error) {
	var log models.WorkoutLog
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&log).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoPlan
		}
		return nil, err
	}
	return &log, nil
}

// Render resolves a log's workout IDs to catalog names, one line per
// exercise with the default prescription. Unknown IDs degrade to a
// placeholder instead of failing the whole plan.
func Render(db *gorm.DB, log *models.WorkoutLog) []string {
	lines := []string{}
	for _, id := range ParseDetails(log.Details) {
		var workout models.Workout
		if err := db.First(&workout, id).Error; err != nil {
			lines = append(lines, "workout not added")
			continue
		}
		lines = append(lines, workout.Name+": 3 sets of 8 reps")
	}
	return lines
}

// JoinDetails encodes workout IDs as the comma separated details string.
func JoinDetails(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

// ParseDetails decodes a details string back into the ordered ID list.
// Malformed entries are dropped.
func ParseDetails(details string) []uint {
	ids := []uint{}
	for _, part := range strings.Split(details, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
