package usecase

import (
	"context"
	"fmt"
	"time"

	"fundpool/internal/core/domain"
	"fundpool/internal/core/port"
)

// LedgerUseCase implements the funding-pool state machine over a
// CampaignStore, a Bank for outbound value transfers and an EventSink
// for notifications. It implements the CampaignLedger interface.
//
// Every mutating operation follows the same shape: acquire the
// exclusive-access token, check preconditions, commit state changes,
// then perform the single outbound transfer last. A failed transfer
// reverses the committed change before returning, so callers only ever
// observe full success or a clean failure.
type LedgerUseCase struct {
	store  port.CampaignStore
	bank   port.Bank
	events port.EventSink

	// minDuration is the shortest accepted campaign window.
	minDuration time.Duration

	// now supplies the caller-observed current time. All time gating
	// reads it at call time; there are no timers.
	now func() time.Time

	// token implements the ledger-wide non-reentrant guard. It holds
	// exactly one value while the ledger is unlocked; lock drains it
	// without blocking and fails fast when it is gone, which is how a
	// transfer recipient calling back into the ledger is rejected.
	token chan struct{}
}

// NewLedgerUseCase creates a ledger over the given collaborators. A
// non-positive minDuration falls back to domain.MinDuration.
func NewLedgerUseCase(store port.CampaignStore, bank port.Bank, events port.EventSink, minDuration time.Duration) *LedgerUseCase {
	if minDuration <= 0 {
		minDuration = domain.MinDuration
	}
	u := &LedgerUseCase{
		store:       store,
		bank:        bank,
		events:      events,
		minDuration: minDuration,
		now:         time.Now,
		token:       make(chan struct{}, 1),
	}
	u.token <- struct{}{}
	return u
}

// lock acquires the exclusive-access token or fails immediately. It
// never blocks: any overlapping or nested call observes ErrReentrantCall.
func (u *LedgerUseCase) lock() error {
	select {
	case <-u.token:
		return nil
	default:
		return domain.ErrReentrantCall
	}
}

// unlock returns the token. Deferred by every operation that acquired
// it, so a failure partway through cannot leave the ledger locked.
func (u *LedgerUseCase) unlock() {
	u.token <- struct{}{}
}

// CreateCampaign registers a new campaign opening now and closing after
// req.Duration, and emits CampaignCreated.
func (u *LedgerUseCase) CreateCampaign(ctx context.Context, caller domain.Account, req port.CreateCampaignReq) (int64, error) {
	if err := u.lock(); err != nil {
		return 0, err
	}
	defer u.unlock()

	if req.Goal <= 0 {
		return 0, domain.ErrInvalidGoal
	}
	if req.Duration < u.minDuration {
		return 0, domain.ErrInvalidDuration
	}

	now := u.now()
	c := domain.Campaign{
		Creator:     caller,
		Title:       req.Title,
		Description: req.Description,
		Goal:        req.Goal,
		StartAt:     now,
		EndAt:       now.Add(req.Duration),
	}
	id, err := u.store.CreateCampaign(ctx, c)
	if err != nil {
		return 0, err
	}

	u.events.Emit(ctx, domain.Event{
		Type:       domain.EventCampaignCreated,
		CampaignID: id,
		Account:    caller,
		Goal:       c.Goal,
		Title:      c.Title,
		StartAt:    c.StartAt,
		EndAt:      c.EndAt,
	})
	return id, nil
}

// Pledge adds amount to the caller's held contribution. No value leaves
// the ledger here, but the guard is held uniformly.
func (u *LedgerUseCase) Pledge(ctx context.Context, caller domain.Account, id, amount int64) error {
	if err := u.lock(); err != nil {
		return err
	}
	defer u.unlock()

	c, err := u.store.Campaign(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCampaignNotFound
	}
	now := u.now()
	if now.Before(c.StartAt) {
		return domain.ErrCampaignNotStarted
	}
	if c.Ended(now) {
		return domain.ErrCampaignEnded
	}
	if amount <= 0 {
		return domain.ErrZeroValue
	}

	if err := u.store.AddContribution(ctx, id, caller, amount); err != nil {
		return err
	}

	u.events.Emit(ctx, domain.Event{
		Type:       domain.EventPledged,
		CampaignID: id,
		Account:    caller,
		Amount:     amount,
	})
	return nil
}

// Unpledge returns amount of the caller's open pledge. The debit is
// committed before the outbound transfer and reversed if it fails.
func (u *LedgerUseCase) Unpledge(ctx context.Context, caller domain.Account, id, amount int64) error {
	if err := u.lock(); err != nil {
		return err
	}
	defer u.unlock()

	c, err := u.store.Campaign(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCampaignNotFound
	}
	if c.Ended(u.now()) {
		return domain.ErrCampaignEnded
	}
	held, err := u.store.Contribution(ctx, id, caller)
	if err != nil {
		return err
	}
	if amount <= 0 || amount > held {
		return domain.ErrInvalidAmount
	}

	if err := u.store.AddContribution(ctx, id, caller, -amount); err != nil {
		return err
	}
	if err := u.bank.Transfer(ctx, caller, amount); err != nil {
		if rbErr := u.store.AddContribution(ctx, id, caller, amount); rbErr != nil {
			return fmt.Errorf("%w: %v (rollback failed: %v)", domain.ErrTransferFailed, err, rbErr)
		}
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}

	u.events.Emit(ctx, domain.Event{
		Type:       domain.EventUnpledged,
		CampaignID: id,
		Account:    caller,
		Amount:     amount,
	})
	return nil
}

// Withdraw pays the pooled funds to the creator after a successful
// campaign. claimed and pledged are committed before the transfer;
// individual contribution entries are deliberately left as they are.
func (u *LedgerUseCase) Withdraw(ctx context.Context, caller domain.Account, id int64) error {
	if err := u.lock(); err != nil {
		return err
	}
	defer u.unlock()

	c, err := u.store.Campaign(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCampaignNotFound
	}
	if caller != c.Creator {
		return domain.ErrUnauthorized
	}
	if !c.Ended(u.now()) {
		return domain.ErrCampaignNotEnded
	}
	// claimed is checked first: a successful withdrawal zeroes pledged,
	// so a repeat call must report AlreadyClaimed, not GoalNotReached.
	if c.Claimed {
		return domain.ErrAlreadyClaimed
	}
	if c.Pledged < c.Goal {
		return domain.ErrGoalNotReached
	}

	amount := c.Pledged
	if err := u.store.SetClaimed(ctx, id, true, 0); err != nil {
		return err
	}
	if err := u.bank.Transfer(ctx, c.Creator, amount); err != nil {
		if rbErr := u.store.SetClaimed(ctx, id, false, amount); rbErr != nil {
			return fmt.Errorf("%w: %v (rollback failed: %v)", domain.ErrTransferFailed, err, rbErr)
		}
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}

	u.events.Emit(ctx, domain.Event{
		Type:       domain.EventFundsWithdrawn,
		CampaignID: id,
		Account:    c.Creator,
		Amount:     amount,
	})
	return nil
}

// Refund returns the caller's full contribution after a failed campaign.
// The entry is zeroed before the transfer and restored if it fails.
func (u *LedgerUseCase) Refund(ctx context.Context, caller domain.Account, id int64) error {
	if err := u.lock(); err != nil {
		return err
	}
	defer u.unlock()

	c, err := u.store.Campaign(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCampaignNotFound
	}
	if !c.Ended(u.now()) {
		return domain.ErrCampaignNotEnded
	}
	if c.GoalReached() {
		return domain.ErrGoalReached
	}
	held, err := u.store.Contribution(ctx, id, caller)
	if err != nil {
		return err
	}
	if held <= 0 {
		return domain.ErrNoContribution
	}

	if err := u.store.AddContribution(ctx, id, caller, -held); err != nil {
		return err
	}
	if err := u.bank.Transfer(ctx, caller, held); err != nil {
		if rbErr := u.store.AddContribution(ctx, id, caller, held); rbErr != nil {
			return fmt.Errorf("%w: %v (rollback failed: %v)", domain.ErrTransferFailed, err, rbErr)
		}
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}

	u.events.Emit(ctx, domain.Event{
		Type:       domain.EventRefundClaimed,
		CampaignID: id,
		Account:    caller,
		Amount:     held,
	})
	return nil
}

// MyContribution reports the amount currently held for account. It is a
// pure read: no guard, and unknown ids/accounts read as 0. After a
// withdrawal the entries keep their historical values even though the
// pool has been paid out.
func (u *LedgerUseCase) MyContribution(ctx context.Context, id int64, account domain.Account) (int64, error) {
	return u.store.Contribution(ctx, id, account)
}

// Campaign returns a campaign by id.
func (u *LedgerUseCase) Campaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := u.store.Campaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCampaignNotFound
	}
	return c, nil
}

// Campaigns returns all campaigns ordered by id.
func (u *LedgerUseCase) Campaigns(ctx context.Context) ([]domain.Campaign, error) {
	return u.store.Campaigns(ctx)
}

// Receive rejects any value arriving outside of Pledge.
func (u *LedgerUseCase) Receive(context.Context, domain.Account, int64) error {
	return domain.ErrDirectTransferRejected
}
