package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
)

// PostgresSlotRepository keeps slots in the quotation_slots table
type PostgresSlotRepository struct {
	db *sql.DB
}

// NewPostgresSlotRepository creates a new PostgresSlotRepository
func NewPostgresSlotRepository(db *sql.DB) *PostgresSlotRepository {
	return &PostgresSlotRepository{db: db}
}

// Ensure PostgresSlotRepository implements SlotRepositoryInterface
var _ SlotRepositoryInterface = (*PostgresSlotRepository)(nil)

// Load retrieves the payload stored under key
func (r *PostgresSlotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT payload::text FROM quotation_slots WHERE slot_key = $1`

	var payload string
	err := r.db.QueryRowContext(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		log.Printf("❌ Error loading slot %s: %v", key, err)
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}
	return []byte(payload), nil
}

// Save upserts the payload under key
func (r *PostgresSlotRepository) Save(ctx context.Context, key string, payload []byte) error {
	query := `
		INSERT INTO quotation_slots (slot_key, payload, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (slot_key) DO UPDATE
		SET payload = EXCLUDED.payload, updated_at = NOW()
	`

	if _, err := r.db.ExecContext(ctx, query, key, string(payload)); err != nil {
		log.Printf("❌ Error saving slot %s: %v", key, err)
		return fmt.Errorf("failed to save slot: %w", err)
	}
	return nil
}
