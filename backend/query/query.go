package query

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrMalformedQuery means the caller passed inconsistent arguments,
	// e.g. a connector count that does not match the condition count.
	ErrMalformedQuery = errors.New("malformed query arguments")
	ErrUnknownTable   = errors.New("unknown table")
	ErrUnknownColumn  = errors.New("unknown column")
	ErrNotFound       = errors.New("no matching rows")
	// ErrNoInsert means LastInsertedID was called before any insert.
	ErrNoInsert = errors.New("no insert has been performed")
)

// Condition is a single equality test in a WHERE clause. Conditions are
// chained with the AND/OR connectors passed alongside them.
type Condition struct {
	Column string
	Value  interface{}
}

func Eq(column string, value interface{}) Condition {
	return Condition{Column: column, Value: value}
}

// ConditionsFromMap converts a column->value map (as received in request
// bodies) into a deterministic condition list, sorted by column name.
func ConditionsFromMap(where map[string]interface{}) []Condition {
	keys := make([]string, 0, len(where))
	for k := range where {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conds := make([]Condition, 0, len(keys))
	for _, k := range keys {
		conds = append(conds, Eq(k, where[k]))
	}
	return conds
}

// AndConnectors returns the connector list for n all-AND conditions.
func AndConnectors(n int) []string {
	if n <= 1 {
		return nil
	}
	connectors := make([]string, n-1)
	for i := range connectors {
		connectors[i] = "AND"
	}
	return connectors
}

// Row is one result row keyed by column name.
type Row map[string]interface{}

// Manager executes structured CRUD statements against the store. Every
// value is bound as a placeholder parameter; identifiers cannot be bound,
// so they are checked against the schema allowlist instead.
type Manager struct {
	db     *gorm.DB
	lastID int64
	hasID  bool
}

func New(db *gorm.DB) *Manager {
	return &Manager{db: db}
}

// buildWhere validates conditions and connectors and returns the WHERE
// fragment (with placeholders) plus the bound arguments. An empty condition
// list yields an empty fragment, which callers must treat as "all rows".
func buildWhere(table string, conds []Condition, connectors []string) (string, []interface{}, error) {
	if len(conds) == 0 {
		if len(connectors) != 0 {
			return "", nil, fmt.Errorf("%w: connectors without conditions", ErrMalformedQuery)
		}
		return "", nil, nil
	}
	if len(connectors) != len(conds)-1 {
		return "", nil, fmt.Errorf("%w: %d conditions need %d connectors, got %d",
			ErrMalformedQuery, len(conds), len(conds)-1, len(connectors))
	}

	var sb strings.Builder
	args := make([]interface{}, 0, len(conds))
	sb.WriteString(" WHERE ")
	for i, cond := range conds {
		if i > 0 {
			connector := strings.ToUpper(connectors[i-1])
			if connector != "AND" && connector != "OR" {
				return "", nil, fmt.Errorf("%w: connector %q", ErrMalformedQuery, connectors[i-1])
			}
			sb.WriteString(" " + connector + " ")
		}
		if err := checkColumn(table, cond.Column); err != nil {
			return "", nil, err
		}
		sb.WriteString(quoteIdent(cond.Column) + " = ?")
		args = append(args, cond.Value)
	}
	return sb.String(), args, nil
}

// Fetch runs a SELECT of the given columns with zero or more equality
// conditions. Empty conditions return every row in the table.
func (m *Manager) Fetch(table string, columns []string, conds []Condition, connectors []string) ([]Row, error) {
	if err := checkTable(table); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		columns = Columns(table)
	}
	for _, col := range columns {
		if err := checkColumn(table, col); err != nil {
			return nil, err
		}
	}

	where, args, err := buildWhere(table, conds, connectors)
	if err != nil {
		return nil, err
	}

	quoted := make([]string, len(columns))
	for i, col := range columns {
		quoted[i] = quoteIdent(col)
	}
	sql := "SELECT " + strings.Join(quoted, ", ") + " FROM " + quoteIdent(table) + where

	var rows []map[string]interface{}
	if err := m.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("fetch from %s: %w", table, err)
	}

	result := make([]Row, len(rows))
	for i, row := range rows {
		result[i] = Row(row)
	}
	return result, nil
}

// FetchOne returns the first matching row, or ErrNotFound.
func (m *Manager) FetchOne(table string, columns []string, conds []Condition, connectors []string) (Row, error) {
	rows, err := m.Fetch(table, columns, conds, connectors)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// InsertOne inserts a single row. Values come from the caller as a map and
// are bound as parameters in deterministic column order.
func (m *Manager) InsertOne(table string, values map[string]interface{}) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: empty row", ErrMalformedQuery)
	}

	columns := make([]string, 0, len(values))
	for col := range values {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	quoted := make([]string, len(columns))
	placeholders := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, col := range columns {
		if err := checkColumn(table, col); err != nil {
			return err
		}
		quoted[i] = quoteIdent(col)
		placeholders[i] = "?"
		args[i] = values[col]
	}

	sql := "INSERT INTO " + quoteIdent(table) + " (" + strings.Join(quoted, ", ") +
		") VALUES (" + strings.Join(placeholders, ", ") + ")"

	pk, hasPK := primaryKeys[table]
	if !hasPK {
		if err := m.db.Exec(sql, args...).Error; err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
		return nil
	}

	var id int64
	if err := m.db.Raw(sql+" RETURNING "+quoteIdent(pk), args...).Scan(&id).Error; err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	m.lastID = id
	m.hasID = true
	return nil
}

// InsertMany inserts rows one by one and stops at the first failure.
// Rows inserted before the failure stay committed; each statement
// auto-commits on its own.
func (m *Manager) InsertMany(table string, rows []map[string]interface{}) error {
	for i, row := range rows {
		if err := m.InsertOne(table, row); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// Update sets the given columns on every row matching the conditions.
// IMPORTANT: empty conditions update ALL rows in the table.
func (m *Manager) Update(table string, newValues map[string]interface{}, conds []Condition, connectors []string) error {
	if err := checkTable(table); err != nil {
		return err
	}
	if len(newValues) == 0 {
		return fmt.Errorf("%w: no values to update", ErrMalformedQuery)
	}

	columns := make([]string, 0, len(newValues))
	for col := range newValues {
		columns = append(columns, col)
	}
	sort.Strings(columns)

	sets := make([]string, len(columns))
	args := make([]interface{}, 0, len(columns))
	for i, col := range columns {
		if err := checkColumn(table, col); err != nil {
			return err
		}
		sets[i] = quoteIdent(col) + " = ?"
		args = append(args, newValues[col])
	}

	where, whereArgs, err := buildWhere(table, conds, connectors)
	if err != nil {
		return err
	}
	args = append(args, whereArgs...)

	sql := "UPDATE " + quoteIdent(table) + " SET " + strings.Join(sets, ", ") + where
	if err := m.db.Exec(sql, args...).Error; err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

// Delete removes every row matching the conditions.
// IMPORTANT: empty conditions delete ALL rows in the table.
func (m *Manager) Delete(table string, conds []Condition, connectors []string) error {
	if err := checkTable(table); err != nil {
		return err
	}

	where, args, err := buildWhere(table, conds, connectors)
	if err != nil {
		return err
	}

	sql := "DELETE FROM " + quoteIdent(table) + where
	if err := m.db.Exec(sql, args...).Error; err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}

// LastInsertedID returns the autogenerated key of the most recent
// InsertOne performed through this manager.
func (m *Manager) LastInsertedID() (int64, error) {
	if !m.hasID {
		return 0, ErrNoInsert
	}
	return m.lastID, nil
}
