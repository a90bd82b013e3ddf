package opsdb

import (
	"context"
	"testing"

	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"github.com/glipgg/btx-ops/pkg/pgutil"
	mghelper "github.com/glipgg/btx-ops/pkg/pgutil/migrations"
)

func TestOpsDBMigrations_UpDown(t *testing.T) {
	db, cleanup := pgutil.SetupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	logger := zap.NewNop()

	migrator := migrate.NewMigrator(db, Migrations)

	for _, cmd := range []string{"init", "up", "status"} {
		if err := mghelper.RunMigrations(ctx, migrator, logger, cmd); err != nil {
			t.Fatalf("%s failed: %v", cmd, err)
		}
	}

	pgutil.AssertTableExists(t, db, "airdrop_runs")
	pgutil.AssertColumnExists(t, db, "airdrop_runs", "plan_hash")
	pgutil.AssertTableExists(t, db, "airdrop_batches")
	pgutil.AssertIndexExists(t, db, "idx_airdrop_batches_run_id")
	pgutil.AssertIndexExists(t, db, "idx_airdrop_batches_status")

	// all migrations were applied as a single group
	if err := mghelper.RunMigrations(ctx, migrator, logger, "down"); err != nil {
		t.Fatalf("down failed: %v", err)
	}
	pgutil.AssertTableNotExists(t, db, "airdrop_runs")
	pgutil.AssertTableNotExists(t, db, "airdrop_batches")

	if err := mghelper.RunMigrations(ctx, migrator, logger, "sideways"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}
