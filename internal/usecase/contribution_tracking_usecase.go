package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"donation_interface/internal/domain/entities"
	"donation_interface/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrContributionTrackingNotFound  = errors.New("contribution tracking not found")
	ErrInvalidContributionTrackingID = errors.New("invalid contribution tracking id")
)

// IContributionTrackingUseCase keeps the analytics row of each donation.
//
//   - Save: first attempt of a donation (numAttempt == 0)
//   - UpdateFromDonation: before each transmission
//   - GetByID: read back by the tracking endpoint

type IContributionTrackingUseCase interface {
	Save(ctx context.Context, d *entities.Donation) (entities.ContributionTracking, error)
	UpdateFromDonation(ctx context.Context, d *entities.Donation, force bool) error
	GetByID(ctx context.Context, id string) (entities.ContributionTracking, error)
}

type ContributionTrackingUseCase struct {
	repo interfaces.IContributionTrackingRepository
	now  func() time.Time
}

var (
	_ IContributionTrackingUseCase = (*ContributionTrackingUseCase)(nil)
	_ ContributionTracker          = (*ContributionTrackingUseCase)(nil)
)

func NewContributionTrackingUseCase(repo interfaces.IContributionTrackingRepository) *ContributionTrackingUseCase {
	return &ContributionTrackingUseCase{repo: repo, now: time.Now}
}

// Save inserts a new row and writes its id back into the donation.
func (u *ContributionTrackingUseCase) Save(ctx context.Context, d *entities.Donation) (entities.ContributionTracking, error) {
	now := u.now().UTC()
	t := entities.ContributionTrackingFromDonation(d, now)
	t.ID = uuid.NewString()
	t.CreatedAt = now
	t.UpdatedAt = now

	created, err := u.repo.Create(ctx, t)
	if err != nil {
		return entities.ContributionTracking{}, err
	}
	d.AddData(map[string]string{"contribution_tracking_id": created.ID})
	log.Printf("[tracking][usecase] saved contribution_tracking_id=%s gateway=%s", created.ID, created.Gateway)
	return created, nil
}

// UpdateFromDonation refreshes the row unless it is already known and the
// donor did not land from a card form. Donations without a row get one.
func (u *ContributionTrackingUseCase) UpdateFromDonation(ctx context.Context, d *entities.Donation, force bool) error {
	hasID := d.IsSomething("contribution_tracking_id")
	if !force && hasID && !d.UtmSourceIsCCLanding() {
		return nil
	}
	if !hasID {
		_, err := u.Save(ctx, d)
		return err
	}

	now := u.now().UTC()
	t := entities.ContributionTrackingFromDonation(d, now)
	t.UpdatedAt = now
	if _, err := u.repo.Update(ctx, t); err != nil {
		return err
	}
	return nil
}

func (u *ContributionTrackingUseCase) GetByID(ctx context.Context, id string) (entities.ContributionTracking, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ContributionTracking{}, ErrInvalidContributionTrackingID
	}
	t, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.ContributionTracking{}, err
	}
	if t.ID == "" {
		return entities.ContributionTracking{}, ErrContributionTrackingNotFound
	}
	return t, nil
}
