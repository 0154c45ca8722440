package interfaces

import (
	"context"
	"donation_interface/internal/domain/entities"
)

// INotificationQueue hands finished donations to downstream consumers.
type INotificationQueue interface {
	Send(ctx context.Context, msg entities.QueueMessage) error
}
