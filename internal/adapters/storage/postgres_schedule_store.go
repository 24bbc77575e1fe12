package storage

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"errors"
	"fmt"
)

// PostgresScheduleStore persists runs into schedule_runs and one row per
// occupant into schedule_slots.
type PostgresScheduleStore struct{ DB *sql.DB }

func NewPostgresScheduleStore(db *sql.DB) *PostgresScheduleStore {
	return &PostgresScheduleStore{DB: db}
}

func (s *PostgresScheduleStore) SaveSchedule(ctx context.Context, runID string, schedule *domain.Schedule) (err error) {
	defer obs.Time(ctx, "schedule.postgres.Save")(&err)

	if s.DB == nil {
		return errors.New("postgres schedule store: DB is nil")
	}
	if schedule == nil || schedule.Timeline == nil {
		return errors.New("save schedule: schedule is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save schedule: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO schedule_runs (run_id, max_planes, max_trucks, makespan)
	VALUES ($1, $2, $3, $4);
	`,
		runID,
		schedule.Capacity.MaxPlanes,
		schedule.Capacity.MaxTrucks,
		schedule.Makespan(),
	)
	if err != nil {
		return fmt.Errorf("save schedule: insert run_id=%s: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO schedule_slots (run_id, slot_index, vehicle, position, delivery_id)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return fmt.Errorf("save schedule: prepare slot insert: %w", err)
	}
	defer stmt.Close()

	for i, slot := range schedule.Timeline.Slots() {
		for _, v := range domain.Vehicles {
			for pos, id := range slot.Occupants(v) {
				if _, err := stmt.ExecContext(ctx, runID, i, v.String(), pos, id); err != nil {
					return fmt.Errorf("save schedule: insert slot=%d vehicle=%s run_id=%s: %w", i, v, runID, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save schedule: commit tx: %w", err)
	}

	return nil
}

// LoadSlots reads back the timeline of a stored run.
func (s *PostgresScheduleStore) LoadSlots(ctx context.Context, runID string) (*domain.Timeline, error) {
	if s.DB == nil {
		return nil, errors.New("postgres schedule store: DB is nil")
	}

	var makespan int
	err := s.DB.QueryRowContext(ctx, `SELECT makespan FROM schedule_runs WHERE run_id = $1;`, runID).Scan(&makespan)
	if err != nil {
		return nil, fmt.Errorf("load slots: run_id=%s: %w", runID, err)
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT slot_index, vehicle, delivery_id
	FROM schedule_slots
	WHERE run_id = $1
	ORDER BY slot_index, vehicle, position;
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("load slots: query schedule_slots: %w", err)
	}
	defer rows.Close()

	tl := domain.NewTimeline()
	tl.Grow(makespan)

	for rows.Next() {
		var (
			index   int
			vehicle string
			id      string
		)
		if err := rows.Scan(&index, &vehicle, &id); err != nil {
			return nil, fmt.Errorf("load slots: scan row: %w", err)
		}

		v, err := domain.ParseVehicle(vehicle)
		if err != nil {
			return nil, fmt.Errorf("load slots: slot=%d: %w", index, err)
		}
		tl.Assign(index, v, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load slots: row iteration: %w", err)
	}

	return tl, nil
}
