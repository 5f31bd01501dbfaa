package models

import (
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"sort"
	"strings"

	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

/*
Developer tooling, run from main.go:

  GENERATE_MODELS=true         migrate, print the column report, then write typed
                               query helpers for every record into ./query
  GENERATE_COLUMN_REPORT=true  only print the column report

The column report lists database columns that no field of the matching Go
record maps to (via its `column:` gorm tag). Example:

	=== COLUMN MISMATCH REPORT ===
	--- Table: builders ---
	Found 1 columns not accounted for in model:
	  - legacy_notes
	=== SUMMARY ===
	Total mismatched columns across all tables: 1
*/

// Tables maps each table name to its record type.
func Tables() map[string]any {
	return map[string]any{
		User{}.TableName():              User{},
		RenovationProject{}.TableName(): RenovationProject{},
		Builder{}.TableName():           Builder{},
	}
}

// GenerateQueries migrates the schema and writes gorm/gen query helpers to outPath.
func GenerateQueries(db *gorm.DB, outPath string) error {
	if err := db.Exec("SELECT 1").Error; err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	verbose := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             0,
			LogLevel:                  logger.Info,
			IgnoreRecordNotFoundError: false,
			Colorful:                  true,
		},
	)
	migrateDB := db.Session(&gorm.Session{
		Logger:                 verbose,
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	if err := migrateDB.AutoMigrate(&User{}, &RenovationProject{}, &Builder{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	if _, err := ColumnMismatchReport(db, os.Stdout); err != nil {
		return err
	}

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(User{}, RenovationProject{}, Builder{})
	g.Execute()
	return nil
}

// ColumnMismatchReport writes the report to w and returns the total number of
// unmapped columns. Tables that don't exist yet are reported and skipped.
func ColumnMismatchReport(db *gorm.DB, w io.Writer) (int, error) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	tables := Tables()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	total := 0
	for _, tableName := range names {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", tableName)

		dbColumns, err := tableColumns(db, tableName)
		if err != nil {
			if strings.Contains(err.Error(), "does not exist") {
				fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
				continue
			}
			return total, err
		}

		mismatches := FindColumnMismatches(dbColumns, ModelColumns(tables[tableName]))
		if len(mismatches) == 0 {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
			continue
		}
		fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(mismatches))
		for _, col := range mismatches {
			fmt.Fprintf(w, "  - %s\n", col)
		}
		total += len(mismatches)
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
	return total, nil
}

func tableColumns(db *gorm.DB, tableName string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := db.Raw(query, tableName).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("query columns for table %s: %w", tableName, err)
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", tableName)
	}
	return columns, nil
}

// ModelColumns lists the `column:` names declared in a record's gorm tags.
// Association fields have no column tag and are skipped.
func ModelColumns(model any) []string {
	var fields []string
	t := reflect.TypeOf(model)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous {
			continue
		}
		if name := columnFromGormTag(field.Tag.Get("gorm")); name != "" {
			fields = append(fields, name)
		}
	}
	return fields
}

func columnFromGormTag(gormTag string) string {
	for _, part := range strings.Split(gormTag, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "column:") {
			return strings.TrimPrefix(part, "column:")
		}
	}
	return ""
}

// FindColumnMismatches returns the columns of dbColumns missing from modelFields.
func FindColumnMismatches(dbColumns, modelFields []string) []string {
	known := make(map[string]bool, len(modelFields))
	for _, field := range modelFields {
		known[field] = true
	}

	var mismatches []string
	for _, col := range dbColumns {
		if !known[col] {
			mismatches = append(mismatches, col)
		}
	}
	return mismatches
}
