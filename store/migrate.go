package store

import (
	"context"

	"github.com/uptrace/bun"
)

// Migrate creates the schema if it does not exist yet. Unique constraints on
// users.username and users.email live here, application code relies on them
// instead of coordinating inserts.
func Migrate(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Author)(nil),
		(*Book)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}
