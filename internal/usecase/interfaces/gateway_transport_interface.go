package interfaces

import (
	"context"
	"donation_interface/internal/domain/entities"
)

// IGatewayTransport performs the HTTP exchange with a payment gateway.
//
// delivered is false only when no attempt produced a usable body.
type IGatewayTransport interface {
	Send(ctx context.Context, req entities.TransportRequest) (resp entities.TransportResponse, delivered bool)
}
