package port

import (
	"context"
	"time"

	"fundpool/internal/core/domain"
)

// CampaignLedger defines the business operations exposed by the funding
// pool. This interface is the primary port into the application domain.
// Mock implementations can be generated from this interface for testing.
type CampaignLedger interface {
	// CreateCampaign registers a new campaign owned by caller and returns
	// its id. The campaign opens immediately and closes after req.Duration.
	CreateCampaign(ctx context.Context, caller domain.Account, req CreateCampaignReq) (int64, error)

	// Pledge adds amount to caller's held contribution for the campaign.
	// Only accepted while the campaign window is open.
	Pledge(ctx context.Context, caller domain.Account, id, amount int64) error

	// Unpledge returns part or all of caller's still-open pledge before
	// the deadline. The outbound transfer happening last, a transfer
	// failure aborts the whole operation.
	Unpledge(ctx context.Context, caller domain.Account, id, amount int64) error

	// Withdraw moves the pooled funds to the creator once the campaign
	// has ended with its goal met. It succeeds at most once per campaign.
	Withdraw(ctx context.Context, caller domain.Account, id int64) error

	// Refund returns caller's full contribution after a campaign ended
	// short of its goal.
	Refund(ctx context.Context, caller domain.Account, id int64) error

	// MyContribution reports the amount currently held for account on the
	// campaign. It is a pure read and returns 0 for unknown ids/accounts.
	MyContribution(ctx context.Context, id int64, account domain.Account) (int64, error)

	// Campaign returns a campaign by id.
	Campaign(ctx context.Context, id int64) (*domain.Campaign, error)
	// Campaigns returns all campaigns ordered by id.
	Campaigns(ctx context.Context) ([]domain.Campaign, error)

	// Receive models value arriving outside of Pledge. It always fails:
	// every deposit must go through the accounted pledge path.
	Receive(ctx context.Context, from domain.Account, amount int64) error
}

// CreateCampaignReq carries the creation parameters. Title and Description
// are stored verbatim and never validated.
type CreateCampaignReq struct {
	Title       string
	Description string
	Goal        int64
	Duration    time.Duration
}
