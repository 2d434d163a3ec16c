package port

import (
	"context"

	"fundpool/internal/core/domain"
)

// CampaignStore defines the persistence layer for the ledger. It is an
// outbound port in hexagonal architecture. Implementations must be
// concurrency-safe and apply each mutation atomically; cross-operation
// ordering is handled by the ledger's exclusive-access guard.
type CampaignStore interface {
	// CreateCampaign stores c under the next monotonically increasing id
	// (first id is 1) and returns it.
	CreateCampaign(ctx context.Context, c domain.Campaign) (int64, error)
	// Campaign returns a campaign by id, or nil when it does not exist.
	Campaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// Campaigns returns all campaigns ordered by id.
	Campaigns(ctx context.Context) ([]domain.Campaign, error)

	// Contribution returns the amount held for account on the campaign.
	// Unknown ids and accounts read as 0.
	Contribution(ctx context.Context, id int64, account domain.Account) (int64, error)
	// AddContribution adjusts account's held amount and the campaign's
	// aggregate pledged total by delta, which may be negative. Both are
	// updated in the same atomic step.
	AddContribution(ctx context.Context, id int64, account domain.Account, delta int64) error

	// SetClaimed sets the claimed flag and overwrites the aggregate
	// pledged total. Individual contribution entries are left untouched.
	SetClaimed(ctx context.Context, id int64, claimed bool, pledged int64) error
}
