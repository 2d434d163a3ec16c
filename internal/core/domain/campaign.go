package domain

import "time"

// MinDuration is the shortest campaign window accepted at creation.
const MinDuration = time.Hour

// Account identifies a participant (creator or contributor). It is opaque
// to the ledger and never validated beyond being non-empty at the edges.
type Account string

// Campaign represents a single funding round.
// Amounts are stored in integer units (e.g. cents).
type Campaign struct {
	ID          int64     `json:"id"`
	Creator     Account   `json:"creator"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Goal        int64     `json:"goal"`
	Pledged     int64     `json:"pledged"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Claimed     bool      `json:"claimed"`
}

// Ended reports whether the campaign window has closed, i.e. now is
// strictly past EndAt. Pledges are accepted on the inclusive window
// [StartAt, EndAt].
func (c Campaign) Ended(now time.Time) bool {
	return now.After(c.EndAt)
}

// GoalReached reports whether the pool can no longer be refunded. A
// claimed campaign counts as reached even though its aggregate Pledged
// has been reset to zero by the withdrawal.
func (c Campaign) GoalReached() bool {
	return c.Claimed || c.Pledged >= c.Goal
}
