package domain

import "time"

// Event types, one per state-changing ledger operation.
const (
	EventCampaignCreated = "campaign_created"
	EventPledged         = "pledged"
	EventUnpledged       = "unpledged"
	EventFundsWithdrawn  = "funds_withdrawn"
	EventRefundClaimed   = "refund_claimed"
)

// Event is a notification emitted once per successful mutating call. The
// sink assigns ID and OccurredAt; operations fill the rest. Fields that
// do not apply to a given type are left zero and omitted from JSON.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	CampaignID int64     `json:"campaign_id"`
	Account    Account   `json:"account,omitempty"`
	Amount     int64     `json:"amount,omitempty"`
	Goal       int64     `json:"goal,omitempty"`
	Title      string    `json:"title,omitempty"`
	StartAt    time.Time `json:"start_at,omitzero"`
	EndAt      time.Time `json:"end_at,omitzero"`
	OccurredAt time.Time `json:"occurred_at"`
}
