package server

import (
	"context"
	"fmt"
	"log/slog"
)

// SeedScorer makes sure the configured scorer account exists with the given
// bcrypt hash. Running it again only refreshes the hash.
func SeedScorer(ctx context.Context, logger *slog.Logger, store Store, email, passwordHash string) error {
	if email == "" || passwordHash == "" {
		return nil
	}
	if err := store.UpsertScorer(ctx, email, passwordHash); err != nil {
		return fmt.Errorf("seeding scorer %s: %w", email, err)
	}
	logger.Info("scorer account ready", "email", normalizeEmail(email))
	return nil
}
