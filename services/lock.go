package services

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate takes a row-level lock inside the current transaction
// so two operators settling the same reservation serialize instead of
// losing an update. SQLite (used by the test suite) has no FOR UPDATE;
// its single-writer model gives the same guarantee.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
