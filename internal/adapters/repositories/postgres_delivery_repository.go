package repositories

import (
	"context"
	"database/sql"
	"delivery-schedule-service/internal/domain"
	"delivery-schedule-service/internal/platform/obs"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the DeliveryRepository port.
type PostgresDeliveryRepository struct{ DB *sql.DB }

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{DB: db}
}

// Return all deliveries in insertion order with their steps.
func (p *PostgresDeliveryRepository) ListDeliveries(ctx context.Context) (_ []domain.Delivery, err error) {
	defer obs.Time(ctx, "deliveries.postgres.List")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres delivery repository: DB is nil")
	}

	query := `
	SELECT
		d.delivery_id,
		d.total_duration,
		s.vehicle,
		s.duration
	FROM deliveries d
	LEFT JOIN delivery_steps s ON s.delivery_id = d.delivery_id
	ORDER BY d.seq, s.step_index;
	`
	rows, err := p.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: query deliveries table: %w", err)
	}
	defer rows.Close()

	deliveries := make([]domain.Delivery, 0, 64)
	for rows.Next() {
		var (
			id       string
			total    int
			vehicle  sql.NullString
			duration sql.NullInt64
		)
		if err := rows.Scan(&id, &total, &vehicle, &duration); err != nil {
			return nil, fmt.Errorf("list deliveries: scan row: %w", err)
		}

		if n := len(deliveries); n == 0 || deliveries[n-1].ID != id {
			deliveries = append(deliveries, domain.Delivery{ID: id, TotalDuration: total})
		}

		// deliveries without steps come back with NULL step columns
		if !vehicle.Valid {
			continue
		}

		v, err := domain.ParseVehicle(vehicle.String)
		if err != nil {
			return nil, fmt.Errorf("list deliveries: delivery_id=%q: %w", id, err)
		}

		last := &deliveries[len(deliveries)-1]
		last.Steps = append(last.Steps, domain.Step{Vehicle: v, Duration: int(duration.Int64)})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: row iteration: %w", err)
	}

	return deliveries, nil
}
