package repositories

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/adapters/codec"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/services"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for deliveries and schedule runs.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDeliveriesQuery := `
	CREATE TABLE IF NOT EXISTS deliveries (
		delivery_id TEXT PRIMARY KEY,
		total_duration INTEGER NOT NULL,
		seq BIGSERIAL NOT NULL
	);
	`

	createStepsQuery := `
	CREATE TABLE IF NOT EXISTS delivery_steps (
		delivery_id TEXT NOT NULL REFERENCES deliveries(delivery_id) ON DELETE CASCADE,
		step_index INTEGER NOT NULL,
		vehicle TEXT NOT NULL CHECK (vehicle IN ('plane', 'truck')),
		duration INTEGER NOT NULL CHECK (duration > 0),
		PRIMARY KEY (delivery_id, step_index)
	);
	`

	createRunsQuery := `
	CREATE TABLE IF NOT EXISTS schedule_runs (
		run_id TEXT PRIMARY KEY,
		max_planes INTEGER NOT NULL,
		max_trucks INTEGER NOT NULL,
		makespan INTEGER NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createSlotsQuery := `
	CREATE TABLE IF NOT EXISTS schedule_slots (
		run_id TEXT NOT NULL REFERENCES schedule_runs(run_id) ON DELETE CASCADE,
		slot_index INTEGER NOT NULL,
		vehicle TEXT NOT NULL,
		position INTEGER NOT NULL,
		delivery_id TEXT NOT NULL,
		PRIMARY KEY (run_id, slot_index, vehicle, position)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_deliveries_seq
	ON deliveries(seq);
	`

	statements := []string{
		createDeliveriesQuery,
		createStepsQuery,
		createRunsQuery,
		createSlotsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with deliveries from a JSON file. Existing
// deliveries with the same id are replaced, steps included.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	records, err := readDeliveryRecords(jsonPath)
	if err != nil {
		return fmt.Errorf("seed deliveries: %w", err)
	}

	deliveries := codec.DecodeDeliveries(records)

	// Seeds must be schedulable; capacity is irrelevant here.
	if err := services.ValidateBatch(deliveries, domain.Capacity{MaxPlanes: 1, MaxTrucks: 1}); err != nil {
		return fmt.Errorf("seed deliveries: %w", err)
	}

	if err := SaveDeliveries(ctx, db, deliveries); err != nil {
		return fmt.Errorf("seed deliveries: %w", err)
	}

	return nil
}

// SaveDeliveries upserts deliveries in the given order.
func SaveDeliveries(ctx context.Context, db *sql.DB, deliveries []domain.Delivery) error {
	if db == nil {
		return errors.New("save deliveries: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save deliveries: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsertDelivery, err := tx.PrepareContext(ctx, `
	INSERT INTO deliveries (delivery_id, total_duration)
	VALUES ($1, $2)
	ON CONFLICT (delivery_id) DO UPDATE
	SET total_duration = EXCLUDED.total_duration;
	`)
	if err != nil {
		return fmt.Errorf("save deliveries: prepare delivery insert: %w", err)
	}
	defer upsertDelivery.Close()

	deleteSteps, err := tx.PrepareContext(ctx, `DELETE FROM delivery_steps WHERE delivery_id = $1;`)
	if err != nil {
		return fmt.Errorf("save deliveries: prepare step delete: %w", err)
	}
	defer deleteSteps.Close()

	insertStep, err := tx.PrepareContext(ctx, `
	INSERT INTO delivery_steps (delivery_id, step_index, vehicle, duration)
	VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("save deliveries: prepare step insert: %w", err)
	}
	defer insertStep.Close()

	for _, d := range deliveries {
		if _, err := upsertDelivery.ExecContext(ctx, d.ID, d.TotalDuration); err != nil {
			return fmt.Errorf("save deliveries: upsert delivery_id=%q: %w", d.ID, err)
		}

		if _, err := deleteSteps.ExecContext(ctx, d.ID); err != nil {
			return fmt.Errorf("save deliveries: clear steps delivery_id=%q: %w", d.ID, err)
		}

		for i, s := range d.Steps {
			if _, err := insertStep.ExecContext(ctx, d.ID, i, s.Vehicle.String(), s.Duration); err != nil {
				return fmt.Errorf("save deliveries: insert step delivery_id=%q step=%d: %w", d.ID, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save deliveries: commit tx: %w", err)
	}

	return nil
}
