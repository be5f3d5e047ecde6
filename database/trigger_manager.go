package database

import (
	"os"
	"strings"

	"gorm.io/gorm"

	"github.com/yeremiapane/hotel-management-app/utils"
)

// ExecuteTriggers installs the store-level guards from
// database/migrations/triggers.sql. Only MySQL understands them; on
// other dialects (the sqlite test database) this is a no-op.
func ExecuteTriggers(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}

	triggerSQL, err := os.ReadFile("database/migrations/triggers.sql")
	if err != nil {
		return err
	}

	statements := strings.Split(string(triggerSQL), "DELIMITER")

	for _, block := range statements {
		if strings.TrimSpace(block) == "" {
			continue
		}

		for _, stmt := range strings.Split(block, "//") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" || stmt == ";" {
				continue
			}

			if err := db.Exec(stmt).Error; err != nil {
				utils.ErrorLogger.Printf("Error executing trigger: %v\nStatement: %s", err, stmt)
				continue
			}
		}
	}

	var triggers []struct {
		Trigger string
		Event   string
		Table   string
		Timing  string
	}

	db.Raw(`
        SELECT
            TRIGGER_NAME as trigger_name,
            EVENT_MANIPULATION as event_type,
            EVENT_OBJECT_TABLE as table_name,
            ACTION_TIMING as timing
        FROM information_schema.triggers
        WHERE TRIGGER_SCHEMA = DATABASE()
    `).Scan(&triggers)

	for _, t := range triggers {
		utils.InfoLogger.Printf("Trigger verified: %s (%s %s on %s)",
			t.Trigger, t.Timing, t.Event, t.Table)
	}

	return nil
}
