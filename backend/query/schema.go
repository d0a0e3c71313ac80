package query

import (
	"fmt"
	"sort"
)

// Schema allowlist. Placeholders can only bind values, never identifiers,
// so table and column names arriving from requests are checked here before
// being spliced into a statement.
var tableColumns = map[string][]string{
	"users": {
		"id", "created_at", "updated_at", "deleted_at",
		"email", "username", "password_hash", "last_logged_in", "login_streak",
		"height", "weight", "fitness_goal_id", "has_finished_quiz",
		"wants_emails", "show_tips", "experience", "days_per_week",
		"available_equipment",
	},
	"fitness_goals": {
		"id", "created_at", "updated_at", "deleted_at", "name",
	},
	"login_histories": {
		"id", "created_at", "updated_at", "deleted_at", "user_id", "login_time",
	},
	"monsters": {
		"id", "created_at", "updated_at", "deleted_at",
		"user_id", "name", "species", "species_id", "exp", "level", "image_name",
	},
	"workouts": {
		"id", "created_at", "updated_at", "deleted_at",
		"type", "name", "equipment", "difficulty", "is_priority",
	},
	"workout_logs": {
		"id", "created_at", "updated_at", "deleted_at",
		"user_id", "details", "user_has_completed", "reps", "sets", "weight",
		"time_duration", "distance_duration", "user_enjoyment",
	},
	"workout_tips": {
		"id", "created_at", "updated_at", "deleted_at", "tip_str", "workout_id",
	},
	"workout_connections": {
		"workout_id", "fitness_goal_id",
	},
	"user_relationships": {
		"user_first_id", "user_second_id", "relationship_type",
	},
	"user_prs": {
		"user_id", "workout_id", "weight", "time", "distance",
	},
}

// Junction tables have no autogenerated key and are absent here.
var primaryKeys = map[string]string{
	"users":           "id",
	"fitness_goals":   "id",
	"login_histories": "id",
	"monsters":        "id",
	"workouts":        "id",
	"workout_logs":    "id",
	"workout_tips":    "id",
}

// Tables returns the known table names, sorted.
func Tables() []string {
	names := make([]string, 0, len(tableColumns))
	for name := range tableColumns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Columns returns the column names of a known table, nil otherwise.
func Columns(table string) []string {
	return tableColumns[table]
}

// PrimaryKey returns the primary key column of a table, or "" if the table
// has none (junction tables).
func PrimaryKey(table string) string {
	return primaryKeys[table]
}

func checkTable(table string) error {
	if _, ok := tableColumns[table]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
	return nil
}

func checkColumn(table, column string) error {
	for _, col := range tableColumns[table] {
		if col == column {
			return nil
		}
	}
	return fmt.Errorf("%w: %s.%s", ErrUnknownColumn, table, column)
}

// quoteIdent wraps an already-validated identifier in double quotes, which
// both Postgres and SQLite accept.
func quoteIdent(ident string) string {
	return `"` + ident + `"`
}
