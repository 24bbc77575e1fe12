package ports

import (
	"context"
	"delivery-schedule-service/internal/domain"
)

// Port: a boundary for retrieving the deliveries of a scheduling batch.
type DeliveryRepository interface {
	// Return all deliveries in a stable order; ranking ties keep this order.
	ListDeliveries(ctx context.Context) ([]domain.Delivery, error)
}
