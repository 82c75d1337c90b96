package database

import (
	"context"
	"database/sql"
	"fmt"

	"homework_status_bot/internal/domain/homework"
)

// PostgresDeliveryRepository stores notification attempts in notification_deliveries.
type PostgresDeliveryRepository struct {
	db *sql.DB
}

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{db: db}
}

func (r *PostgresDeliveryRepository) Record(ctx context.Context, d *homework.Delivery) error {
	query := `INSERT INTO notification_deliveries (chat_id, message, delivered, error)
               VALUES ($1, $2, $3, $4)
               RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, d.ChatID, d.Message, d.Delivered, d.Error).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return fmt.Errorf("error recording delivery: %w", err)
	}
	return nil
}
