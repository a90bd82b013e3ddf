// Package opsdb holds all the migrations for the operations checkpoint database
package opsdb

import (
	"github.com/uptrace/bun/migrate"
)

// Migrations is the collection of all migrations for the operations database
var Migrations = migrate.NewMigrations()
