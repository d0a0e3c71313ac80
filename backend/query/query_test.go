package query

import (
	"testing"

	"fitnessfiend/backend/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupManager(t *testing.T) *Manager {
	db, err := gorm.Open(sqlite.Open("file:querytest?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("could not open test database: %v", err)
	}
	if err := db.Migrator().DropTable(&models.Workout{}, &models.UserPR{}); err != nil {
		t.Fatalf("could not reset test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Workout{}, &models.UserPR{}); err != nil {
		t.Fatalf("could not migrate test database: %v", err)
	}
	return New(db)
}

func seedWorkouts(t *testing.T, m *Manager) {
	rows := []map[string]interface{}{
		{"type": "Chest", "name": "Bench Press", "equipment": "barbell", "difficulty": "easy", "is_priority": true},
		{"type": "Chest", "name": "Push Up", "equipment": "none", "difficulty": "easy", "is_priority": false},
		{"type": "Calves", "name": "Calf Raise", "equipment": "none", "difficulty": "easy", "is_priority": true},
	}
	if err := m.InsertMany("workouts", rows); err != nil {
		t.Fatalf("could not seed workouts: %v", err)
	}
}

func TestFetchAllRows(t *testing.T) {
	m := setupManager(t)
	seedWorkouts(t, m)

	rows, err := m.Fetch("workouts", []string{"name", "type"}, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Contains(t, rows[0], "name")
	assert.Contains(t, rows[0], "type")
}

func TestFetchWithCondition(t *testing.T) {
	m := setupManager(t)
	seedWorkouts(t, m)

	rows, err := m.Fetch("workouts", []string{"name"}, []Condition{Eq("type", "Chest")}, nil)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestFetchWithConnectors(t *testing.T) {
	m := setupManager(t)
	seedWorkouts(t, m)

	conds := []Condition{Eq("type", "Chest"), Eq("type", "Calves")}
	rows, err := m.Fetch("workouts", []string{"name"}, conds, []string{"OR"})
	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	rows, err = m.Fetch("workouts", []string{"name"}, conds, []string{"AND"})
	assert.NoError(t, err)
	assert.Len(t, rows, 0)
}

func TestConnectorCountMismatchFailsValidation(t *testing.T) {
	m := setupManager(t)
	seedWorkouts(t, m)

	conds := []Condition{Eq("type", "Chest"), Eq("difficulty", "easy")}
	_, err := m.Fetch("workouts", []string{"name"}, conds, nil)
	assert.ErrorIs(t, err, ErrMalformedQuery)

	_, err = m.Fetch("workouts", []string{"name"}, conds, []string{"AND", "AND"})
	assert.ErrorIs(t, err, ErrMalformedQuery)

	_, err = m.Fetch("workouts", []string{"name"}, conds, []string{"NOR"})
	assert.ErrorIs(t, err, ErrMalformedQuery)
}

func TestUnknownIdentifiersAreRejected(t *testing.T) {
	m := setupManager(t)

	_, err := m.Fetch("no_such_table", nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownTable)

	_, err = m.Fetch("workouts", []string{"name; DROP TABLE users"}, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownColumn)

	err = m.Update("workouts", map[string]interface{}{"nope": 1}, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestFetchOne(t *testing.T) {
	m := setupManager(t)
	seedWorkouts(t, m)

	row, err := m.FetchOne("workouts", []string{"name"}, []Condition{Eq("type", "Calves")}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Calf Raise", row["name"])

	_, err = m.FetchOne("workouts", []string{"name"}, []Condition{Eq("type", "Wings")}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateWithEmptyConditionsTouchesEveryRow(t *testing.T) {
	m := setupManager(t)
	seedWorkouts(t, m)

	err := m.Update("workouts", map[string]interface{}{"difficulty": "hard"}, nil, nil)
	assert.NoError(t, err)

	rows, err := m.Fetch("workouts", []string{"difficulty"}, nil, nil)
	assert.NoError(t, err)
	for _, row := range rows {
		assert.Equal(t, "hard", row["difficulty"])
	}
}

func TestUpdateWithCondition(t *testing.T) {
	m := setupManager(t)
	seedWorkouts(t, m)

	err := m.Update("workouts",
		map[string]interface{}{"equipment": "dumbbell"},
		[]Condition{Eq("type", "Chest")}, nil)
	assert.NoError(t, err)

	rows, err := m.Fetch("workouts", []string{"equipment"}, []Condition{Eq("type", "Calves")}, nil)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "none", rows[0]["equipment"])
}

func TestDeleteRows(t *testing.T) {
	m := setupManager(t)
	seedWorkouts(t, m)

	err := m.Delete("workouts", []Condition{Eq("type", "Chest")}, nil)
	assert.NoError(t, err)

	rows, err := m.Fetch("workouts", []string{"name"}, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestLastInsertedID(t *testing.T) {
	m := setupManager(t)

	_, err := m.LastInsertedID()
	assert.ErrorIs(t, err, ErrNoInsert)

	err = m.InsertOne("workouts", map[string]interface{}{
		"type": "Abs", "name": "Crunch", "equipment": "none",
		"difficulty": "easy", "is_priority": true,
	})
	assert.NoError(t, err)

	first, err := m.LastInsertedID()
	assert.NoError(t, err)
	assert.Greater(t, first, int64(0))

	err = m.InsertOne("workouts", map[string]interface{}{
		"type": "Abs", "name": "Plank", "equipment": "none",
		"difficulty": "easy", "is_priority": false,
	})
	assert.NoError(t, err)

	second, err := m.LastInsertedID()
	assert.NoError(t, err)
	assert.Equal(t, first+1, second)
}

func TestInsertManyStopsAtFirstFailure(t *testing.T) {
	m := setupManager(t)

	rows := []map[string]interface{}{
		{"type": "Chest", "name": "Bench Press", "equipment": "barbell", "difficulty": "easy", "is_priority": true},
		{"bogus_column": "boom"},
		{"type": "Abs", "name": "Crunch", "equipment": "none", "difficulty": "easy", "is_priority": false},
	}
	err := m.InsertMany("workouts", rows)
	assert.ErrorIs(t, err, ErrUnknownColumn)

	// Строки до ошибки остаются в таблице
	stored, err := m.Fetch("workouts", []string{"name"}, nil, nil)
	assert.NoError(t, err)
	assert.Len(t, stored, 1)
	assert.Equal(t, "Bench Press", stored[0]["name"])
}

func TestInsertIntoTableWithoutPrimaryKey(t *testing.T) {
	m := setupManager(t)

	err := m.InsertOne("user_prs", map[string]interface{}{
		"user_id": 1, "workout_id": 2, "weight": 100.5,
	})
	assert.NoError(t, err)

	rows, err := m.Fetch("user_prs", nil, []Condition{Eq("user_id", 1)}, nil)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}
