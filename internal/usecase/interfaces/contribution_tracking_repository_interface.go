package interfaces

import (
	"context"
	"donation_interface/internal/domain/entities"
)

// IContributionTrackingRepository abstracts persistence of tracking rows.

type IContributionTrackingRepository interface {
	Create(ctx context.Context, t entities.ContributionTracking) (entities.ContributionTracking, error)
	Update(ctx context.Context, t entities.ContributionTracking) (entities.ContributionTracking, error)
	GetByID(ctx context.Context, id string) (entities.ContributionTracking, error)
}
