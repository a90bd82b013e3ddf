package opsdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/glipgg/btx-ops/pkg/airdrop/store"
	mghelper "github.com/glipgg/btx-ops/pkg/pgutil/migrations"
)

var batchIndexColumns = []string{"run_id", "status"}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if err := mghelper.CreateSchema(ctx, db, (*store.BatchDao)(nil)); err != nil {
			return err
		}
		return mghelper.CreateModelIndexes(ctx, db, (*store.BatchDao)(nil), batchIndexColumns...)
	}, func(ctx context.Context, db *bun.DB) error {
		if err := mghelper.DropModelIndexes(ctx, db, (*store.BatchDao)(nil), batchIndexColumns...); err != nil {
			return err
		}
		return mghelper.DropTables(ctx, db, (*store.BatchDao)(nil))
	})
}
