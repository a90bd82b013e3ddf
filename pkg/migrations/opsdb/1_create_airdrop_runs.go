package opsdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/glipgg/btx-ops/pkg/airdrop/store"
	mghelper "github.com/glipgg/btx-ops/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		return mghelper.CreateSchema(ctx, db, (*store.RunDao)(nil))
	}, func(ctx context.Context, db *bun.DB) error {
		return mghelper.DropTables(ctx, db, (*store.RunDao)(nil))
	})
}
