package opsdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/glipgg/btx-ops/pkg/airdrop/store"
)

// Runs created before plan_hash existed keep an empty hash and are refused on resume.
func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewAddColumn().
			Model((*store.RunDao)(nil)).
			IfNotExists().
			ColumnExpr("plan_hash varchar(66) NOT NULL DEFAULT ''").
			Exec(ctx)
		return err
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, "ALTER TABLE airdrop_runs DROP COLUMN IF EXISTS plan_hash")
		return err
	})
}
