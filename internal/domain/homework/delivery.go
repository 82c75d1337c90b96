// internal/domain/homework/delivery.go
package homework

import (
	"context"
	"database/sql"
	"time"
)

// Delivery is one attempt to send a message to the chat.
type Delivery struct {
	ID        int64
	ChatID    int64
	Message   string
	Delivered bool
	Error     sql.NullString
	CreatedAt time.Time
}

// DeliveryLog persists notification attempts for later inspection.
type DeliveryLog interface {
	Record(ctx context.Context, d *Delivery) error
}
