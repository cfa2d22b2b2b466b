// Package repositories holds the data access layer. Every method takes
// the *gorm.DB to run against as its first argument so callers can pass
// either the shared pool or an open transaction.
package repositories

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// forUpdate adds a row-level lock on postgres. sqlite (used by the test
// suite) has no FOR UPDATE; its single-writer model covers the same races
// there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}
