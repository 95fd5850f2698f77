package database

import (
	"fmt"

	"becayis-backend/models"

	"gorm.io/gorm"
)

// AutoMigrate applies idempotent schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Unique pair-key index backing idempotent match creation
// - Participant and pool indexes
// - CHECK constraints for match status and pair distinctness
func AutoMigrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.User{},
			&models.ExchangeRequest{},
			&models.Match{},
			&models.Notification{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_matches_pair_key ON matches (pair_key)`,
			`CREATE INDEX IF NOT EXISTS idx_matches_user_id_a ON matches (user_id_a)`,
			`CREATE INDEX IF NOT EXISTS idx_matches_user_id_b ON matches (user_id_b)`,
			`CREATE INDEX IF NOT EXISTS idx_exchange_requests_pool ON exchange_requests (active, user_id)`,
			`CREATE INDEX IF NOT EXISTS idx_notifications_user_read ON notifications (user_id, read)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Status is one of the three lifecycle values
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'matches'::regclass
					  AND conname  = 'chk_matches_status'
				) THEN
					ALTER TABLE matches
					ADD CONSTRAINT chk_matches_status
					CHECK (status IN ('pending', 'accepted', 'rejected'));
				END IF;
			END $$;`,
			// A match never pairs a request or user with itself
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'matches'::regclass
					  AND conname  = 'chk_matches_distinct_pair'
				) THEN
					ALTER TABLE matches
					ADD CONSTRAINT chk_matches_distinct_pair
					CHECK (request_id_a <> request_id_b AND user_id_a <> user_id_b);
				END IF;
			END $$;`,
			// Scores stay in [0,1]
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'matches'::regclass
					  AND conname  = 'chk_matches_score_range'
				) THEN
					ALTER TABLE matches
					ADD CONSTRAINT chk_matches_score_range
					CHECK (score >= 0 AND score <= 1);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
