package progression

import (
	"errors"
	"fmt"
	"strconv"
)

// EvolveEvery is the level milestone at which a monster changes form.
const EvolveEvery = 5

// ErrNegativeExperience is returned when a caller tries to add a negative
// amount of experience. XP only ever grows; there is no drain mechanic.
var ErrNegativeExperience = errors.New("experience amount must not be negative")

// formNames maps the two digit growth stage of a species ID to its name.
var formNames = map[string]string{
	"01": "Baby",
	"02": "Juvenile",
	"03": "Normal",
	"04": "Mature",
	"05": "Magnificent",
	"06": "Geriatric",
	"07": "Ascended",
}

// Level tracks a monster's level, current experience and the experience
// needed for the next level-up. XP always stays in [0, XPCap); the cap
// follows the fast-leveling cubic curve 4*level^3/5, so a fresh level 1
// monster has a cap of 0 and levels up on its first experience gain.
type Level struct {
	Value int
	XPCap int
	XP    int
}

// CapFor returns the experience cap at a given level.
func CapFor(level int) int {
	return (4 * level * level * level) / 5
}

// NewLevel returns a Level at the given value with zero experience.
func NewLevel(value int) Level {
	if value < 1 {
		value = 1
	}
	return Level{Value: value, XPCap: CapFor(value)}
}

// AddExperience adds the amount to the level's experience and performs as
// many level-ups as the new total allows, recomputing the cap each time.
// Returns how many levels were gained. Zero is a no-op, negative amounts
// are rejected.
func (l *Level) AddExperience(amount int) (int, error) {
	if amount < 0 {
		return 0, ErrNegativeExperience
	}
	if amount == 0 {
		return 0, nil
	}

	oldLevel := l.Value
	l.XP += amount
	for l.XP >= l.XPCap {
		l.levelUp()
	}
	return l.Value - oldLevel, nil
}

// LevelUp forces a single level-up regardless of accumulated experience.
func (l *Level) LevelUp() {
	if l.XP < l.XPCap {
		l.XP = l.XPCap
	}
	l.levelUp()
}

func (l *Level) levelUp() {
	l.Value++
	l.XP -= l.XPCap
	if l.XP < 0 {
		l.XP = 0
	}
	l.XPCap = CapFor(l.Value)
}

// ShouldEvolve reports whether a transition fires: the call gained at least
// one level and the resulting level is an evolution milestone.
func ShouldEvolve(newLevel, levelsGained int) bool {
	return levelsGained > 0 && newLevel%EvolveEvery == 0
}

// AdvanceForm moves a species ID one growth stage forward. The species
// prefix stays untouched; only the trailing two digit stage changes.
func AdvanceForm(speciesID string) (string, error) {
	if len(speciesID) != 4 {
		return "", fmt.Errorf("invalid species id %q", speciesID)
	}
	stage, err := strconv.Atoi(speciesID[2:])
	if err != nil {
		return "", fmt.Errorf("invalid species id %q", speciesID)
	}
	return fmt.Sprintf("%s%02d", speciesID[:2], stage+1), nil
}

// FormName returns the growth stage name encoded in a species ID, or ""
// for an unknown stage.
func FormName(speciesID string) string {
	if len(speciesID) != 4 {
		return ""
	}
	return formNames[speciesID[2:]]
}
