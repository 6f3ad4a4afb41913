package catalogue

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Conceptual-Machines/fretboard-api/internal/database"
	"github.com/Conceptual-Machines/fretboard-api/internal/logger"
)

// Open returns a Postgres-backed store when databaseURL is set, migrated and
// seeded on first use, and the seeded in-memory store otherwise. The returned
// *gorm.DB is nil for the in-memory store.
func Open(ctx context.Context, databaseURL string) (Store, *gorm.DB, error) {
	if databaseURL == "" {
		logger.Info("Using built-in shape catalogue", logger.Fields{"shapes": len(seedEntries)})
		return NewSeededStore(), nil, nil
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		return nil, nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}

	store := NewGormStore(db)
	seeded, err := store.SeedIfEmpty(ctx)
	if err != nil {
		_ = database.Close(db)
		return nil, nil, fmt.Errorf("seed catalogue: %w", err)
	}
	if seeded > 0 {
		logger.Info("Seeded shape catalogue", logger.Fields{"shapes": seeded})
	}
	return store, db, nil
}
