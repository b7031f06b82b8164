package database

import (
	"os"
	"strings"

	"github.com/yeremiapane/resteasy/models"
	"github.com/yeremiapane/resteasy/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema. Tables are listed parents first so
// foreign keys always point at an existing table.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Vendor{},
		&models.Item{},
		&models.User{},
		&models.Admin{},
		&models.Dish{},
		&models.Order{},
		&models.OrderLine{},
	)
	if err != nil {
		return err
	}
	return RefreshSearchKeys(db)
}

// RefreshSearchKeys fills in the search key of vendors and items that were
// written without going through their models, such as seeded rows.
func RefreshSearchKeys(db *gorm.DB) error {
	for _, model := range []any{&models.Vendor{}, &models.Item{}} {
		var rows []struct {
			ID   uint
			Name string
		}
		if err := db.Model(model).Select("id, name").Where("name_key = ''").Scan(&rows).Error; err != nil {
			return err
		}
		for _, r := range rows {
			err := db.Model(model).Where("id = ?", r.ID).UpdateColumn("name_key", models.SearchKey(r.Name)).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// ExecuteSQLFile runs the ';'-separated statements of a SQL file, e.g. seed
// data. A failing statement is logged and skipped; the count of statements
// that succeeded is returned.
//
// Statements are split on every ';', including one inside a string literal,
// so seed files must not put ';' in their values.
func ExecuteSQLFile(db *gorm.DB, path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "--") {
			lines = append(lines, line)
		}
	}

	executed := 0
	for _, stmt := range strings.Split(strings.Join(lines, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if err := db.Exec(stmt).Error; err != nil {
			utils.ErrorLogger.Printf("Error executing statement: %v\nStatement: %s", err, stmt)
			continue
		}
		executed++
	}
	utils.InfoLogger.Printf("Executed %d statement(s) from %s", executed, path)
	return executed, RefreshSearchKeys(db)
}
