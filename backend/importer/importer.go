package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fitnessfiend/backend/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportConfig defines how the workout catalog file is read. Expected
// columns, in order: type, name, equipment, difficulty, is_priority.
type ImportConfig struct {
	FilePath   string
	SheetName  string // XLSX sheet to read
	SkipHeader bool
	Purge      bool // delete the existing catalog first
}

func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName:  "Sheet1",
		SkipHeader: true,
	}
}

// ImportResult holds the outcome of an import run.
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportWorkouts loads catalog entries from a CSV or XLSX file.
func ImportWorkouts(db *gorm.DB, config ImportConfig) (*ImportResult, error) {
	if config.Purge {
		if err := db.Unscoped().Where("1 = 1").Delete(&models.Workout{}).Error; err != nil {
			return nil, fmt.Errorf("failed to purge catalog: %w", err)
		}
	}

	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(db, config)
	}
	return importFromExcel(db, config)
}

func importFromExcel(db *gorm.DB, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i == 0 && config.SkipHeader {
			continue
		}
		result.TotalProcessed++
		if err := processRow(db, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}
	return result, nil
}

func importFromCSV(db *gorm.DB, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	result := &ImportResult{Errors: make([]string, 0)}
	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
			continue
		}
		if line == 1 && config.SkipHeader {
			continue
		}
		result.TotalProcessed++
		if err := processRow(db, row, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", line, err))
		}
	}
	return result, nil
}

func processRow(db *gorm.DB, row []string, result *ImportResult) error {
	if len(row) < 5 {
		result.Skipped++
		return fmt.Errorf("expected 5 columns, got %d", len(row))
	}

	workout := models.Workout{
		Type:       strings.TrimSpace(row[0]),
		Name:       strings.TrimSpace(row[1]),
		Equipment:  strings.TrimSpace(row[2]),
		Difficulty: strings.TrimSpace(row[3]),
		IsPriority: parseBool(row[4]),
	}
	if workout.Type == "" || workout.Name == "" {
		result.Skipped++
		return nil
	}

	if err := db.Create(&workout).Error; err != nil {
		result.Skipped++
		return err
	}
	result.Created++
	return nil
}

// parseBool accepts the TRUE/FALSE strings the spreadsheet exports use.
func parseBool(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "TRUE", "1", "YES":
		return true
	default:
		return false
	}
}
