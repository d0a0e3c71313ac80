package main

import (
	"flag"
	"log"

	"fitnessfiend/backend/config"
	"fitnessfiend/backend/importer"
	"fitnessfiend/backend/utils"
)

func main() {
	importConfig := importer.DefaultImportConfig()
	flag.StringVar(&importConfig.FilePath, "file", "workout_data.csv", "CSV or XLSX file with the workout catalog")
	flag.StringVar(&importConfig.SheetName, "sheet", importConfig.SheetName, "sheet name for XLSX files")
	flag.BoolVar(&importConfig.SkipHeader, "skip-header", importConfig.SkipHeader, "skip the first row")
	flag.BoolVar(&importConfig.Purge, "purge", false, "delete the existing catalog before importing")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	if err := utils.MigrateDB(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	result, err := importer.ImportWorkouts(db, importConfig)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("Processed %d rows: %d created, %d skipped",
		result.TotalProcessed, result.Created, result.Skipped)
	for _, importError := range result.Errors {
		log.Printf("  %s", importError)
	}
}
