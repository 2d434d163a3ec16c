package usecase

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"fundpool/internal/adapter/event"
	"fundpool/internal/adapter/memory"
	"fundpool/internal/core/domain"
	"fundpool/internal/core/port"
	"fundpool/internal/core/port/mocks"
)

const (
	creator = domain.Account("alice")
	backerA = domain.Account("bob")
	backerB = domain.Account("carol")
)

// fixture wires a ledger over the in-memory store and bank with a
// controllable clock.
type fixture struct {
	ledger *LedgerUseCase
	store  *memory.Store
	bank   *memory.Bank
	log    *event.Log
	now    *time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	bank := memory.NewBank()
	log := event.NewLog(slog.New(slog.DiscardHandler))
	u := NewLedgerUseCase(store, bank, log, 0)

	now := time.Unix(1_700_000_000, 0).UTC()
	u.now = func() time.Time { return now }
	return &fixture{ledger: u, store: store, bank: bank, log: log, now: &now}
}

func (f *fixture) advance(d time.Duration) {
	*f.now = f.now.Add(d)
}

// create makes a campaign with the given goal and a one-hour window.
func (f *fixture) create(t *testing.T, goal int64) int64 {
	t.Helper()
	id, err := f.ledger.CreateCampaign(context.Background(), creator, port.CreateCampaignReq{
		Title: "t", Description: "d", Goal: goal, Duration: time.Hour,
	})
	if err != nil {
		t.Fatalf("CreateCampaign: %v", err)
	}
	return id
}

// checkInvariant verifies pledged == sum of the listed contributors'
// balances for the campaign.
func (f *fixture) checkInvariant(t *testing.T, id int64, accounts ...domain.Account) {
	t.Helper()
	c, err := f.store.Campaign(context.Background(), id)
	if err != nil || c == nil {
		t.Fatalf("campaign %d: %v", id, err)
	}
	var sum int64
	for _, a := range accounts {
		held, _ := f.store.Contribution(context.Background(), id, a)
		sum += held
	}
	if c.Pledged != sum {
		t.Fatalf("pledged %d != sum of contributions %d", c.Pledged, sum)
	}
}

func TestCreateCampaignValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.ledger.CreateCampaign(ctx, creator, port.CreateCampaignReq{Goal: 0, Duration: time.Hour}); !errors.Is(err, domain.ErrInvalidGoal) {
		t.Fatalf("zero goal: got %v, want ErrInvalidGoal", err)
	}
	if _, err := f.ledger.CreateCampaign(ctx, creator, port.CreateCampaignReq{Goal: 100, Duration: 30 * time.Minute}); !errors.Is(err, domain.ErrInvalidDuration) {
		t.Fatalf("short duration: got %v, want ErrInvalidDuration", err)
	}

	// failed creations must not burn ids
	id := f.create(t, 100)
	if id != 1 {
		t.Fatalf("first id = %d, want 1", id)
	}

	c, _ := f.store.Campaign(ctx, id)
	if c.Creator != creator || c.Goal != 100 || c.Claimed || c.Pledged != 0 {
		t.Fatalf("unexpected campaign state: %+v", c)
	}
	if got := c.EndAt.Sub(c.StartAt); got != time.Hour {
		t.Fatalf("window = %v, want 1h", got)
	}
}

func TestPledgeWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, 100)

	if err := f.ledger.Pledge(ctx, backerA, 42, 10); !errors.Is(err, domain.ErrCampaignNotFound) {
		t.Fatalf("unknown id: got %v", err)
	}
	if err := f.ledger.Pledge(ctx, backerA, id, 0); !errors.Is(err, domain.ErrZeroValue) {
		t.Fatalf("zero amount: got %v", err)
	}
	if err := f.ledger.Pledge(ctx, backerA, id, 10); err != nil {
		t.Fatalf("pledge: %v", err)
	}
	f.checkInvariant(t, id, backerA)

	// pledging at the deadline itself is still allowed
	f.advance(time.Hour)
	if err := f.ledger.Pledge(ctx, backerA, id, 5); err != nil {
		t.Fatalf("pledge at deadline: %v", err)
	}

	f.advance(time.Second)
	if err := f.ledger.Pledge(ctx, backerA, id, 5); !errors.Is(err, domain.ErrCampaignEnded) {
		t.Fatalf("pledge after end: got %v", err)
	}
	if held, _ := f.ledger.MyContribution(ctx, id, backerA); held != 15 {
		t.Fatalf("contribution = %d, want 15", held)
	}
	f.checkInvariant(t, id, backerA)
}

func TestUnpledge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, 100)

	if err := f.ledger.Pledge(ctx, backerA, id, 50); err != nil {
		t.Fatalf("pledge: %v", err)
	}
	if err := f.ledger.Unpledge(ctx, backerA, id, 60); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("over-unpledge: got %v", err)
	}
	if held, _ := f.ledger.MyContribution(ctx, id, backerA); held != 50 {
		t.Fatalf("contribution changed by failed unpledge: %d", held)
	}

	if err := f.ledger.Unpledge(ctx, backerA, id, 20); err != nil {
		t.Fatalf("unpledge: %v", err)
	}
	if got := f.bank.Balance(backerA); got != 20 {
		t.Fatalf("returned %d, want 20", got)
	}
	f.checkInvariant(t, id, backerA)

	f.advance(2 * time.Hour)
	if err := f.ledger.Unpledge(ctx, backerA, id, 10); !errors.Is(err, domain.ErrCampaignEnded) {
		t.Fatalf("unpledge after end: got %v", err)
	}
}

func TestWithdrawLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, 100)

	if err := f.ledger.Pledge(ctx, backerA, id, 60); err != nil {
		t.Fatalf("pledge A: %v", err)
	}
	if err := f.ledger.Pledge(ctx, backerB, id, 50); err != nil {
		t.Fatalf("pledge B: %v", err)
	}

	if err := f.ledger.Withdraw(ctx, creator, id); !errors.Is(err, domain.ErrCampaignNotEnded) {
		t.Fatalf("withdraw before end: got %v", err)
	}

	f.advance(2 * time.Hour)
	if err := f.ledger.Withdraw(ctx, backerA, id); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("withdraw by non-creator: got %v", err)
	}
	if err := f.ledger.Withdraw(ctx, creator, id); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if got := f.bank.Balance(creator); got != 110 {
		t.Fatalf("creator received %d, want 110", got)
	}

	c, _ := f.store.Campaign(ctx, id)
	if !c.Claimed || c.Pledged != 0 {
		t.Fatalf("post-withdraw state: claimed=%v pledged=%d", c.Claimed, c.Pledged)
	}
	if err := f.ledger.Withdraw(ctx, creator, id); !errors.Is(err, domain.ErrAlreadyClaimed) {
		t.Fatalf("second withdraw: got %v", err)
	}

	// contributors lose refund claim once the pool was paid out
	if err := f.ledger.Refund(ctx, backerA, id); !errors.Is(err, domain.ErrGoalReached) {
		t.Fatalf("refund after withdraw: got %v", err)
	}

	// entries keep their historical values after withdrawal
	if held, _ := f.ledger.MyContribution(ctx, id, backerA); held != 60 {
		t.Fatalf("historical contribution = %d, want 60", held)
	}
}

func TestRefundLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, 100)

	if err := f.ledger.Pledge(ctx, backerA, id, 40); err != nil {
		t.Fatalf("pledge: %v", err)
	}

	if err := f.ledger.Refund(ctx, backerA, id); !errors.Is(err, domain.ErrCampaignNotEnded) {
		t.Fatalf("refund before end: got %v", err)
	}

	f.advance(2 * time.Hour)
	if err := f.ledger.Withdraw(ctx, creator, id); !errors.Is(err, domain.ErrGoalNotReached) {
		t.Fatalf("withdraw short of goal: got %v", err)
	}
	if err := f.ledger.Refund(ctx, backerB, id); !errors.Is(err, domain.ErrNoContribution) {
		t.Fatalf("refund without stake: got %v", err)
	}

	if err := f.ledger.Refund(ctx, backerA, id); err != nil {
		t.Fatalf("refund: %v", err)
	}
	if got := f.bank.Balance(backerA); got != 40 {
		t.Fatalf("refunded %d, want 40", got)
	}
	if held, _ := f.ledger.MyContribution(ctx, id, backerA); held != 0 {
		t.Fatalf("balance after refund = %d, want 0", held)
	}
	f.checkInvariant(t, id, backerA)

	if err := f.ledger.Refund(ctx, backerA, id); !errors.Is(err, domain.ErrNoContribution) {
		t.Fatalf("second refund: got %v", err)
	}
}

func TestTransferFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	bank := mocks.NewMockBank(t)
	u := NewLedgerUseCase(store, bank, event.NewLog(slog.New(slog.DiscardHandler)), 0)

	now := time.Unix(1_700_000_000, 0).UTC()
	u.now = func() time.Time { return now }

	id, err := u.CreateCampaign(ctx, creator, port.CreateCampaignReq{Goal: 100, Duration: time.Hour})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err = u.Pledge(ctx, backerA, id, 60); err != nil {
		t.Fatalf("pledge: %v", err)
	}

	bank.EXPECT().
		Transfer(mock.Anything, backerA, int64(25)).
		Return(errors.New("recipient rejected")).
		Once()

	if err = u.Unpledge(ctx, backerA, id, 25); !errors.Is(err, domain.ErrTransferFailed) {
		t.Fatalf("unpledge: got %v, want ErrTransferFailed", err)
	}
	held, _ := store.Contribution(ctx, id, backerA)
	c, _ := store.Campaign(ctx, id)
	if held != 60 || c.Pledged != 60 {
		t.Fatalf("state not rolled back: held=%d pledged=%d", held, c.Pledged)
	}

	// withdraw rollback restores claimed and the aggregate
	if err = u.Pledge(ctx, backerB, id, 40); err != nil {
		t.Fatalf("pledge: %v", err)
	}
	now = now.Add(2 * time.Hour)

	bank.EXPECT().
		Transfer(mock.Anything, creator, int64(100)).
		Return(errors.New("recipient rejected")).
		Once()

	if err = u.Withdraw(ctx, creator, id); !errors.Is(err, domain.ErrTransferFailed) {
		t.Fatalf("withdraw: got %v, want ErrTransferFailed", err)
	}
	c, _ = store.Campaign(ctx, id)
	if c.Claimed || c.Pledged != 100 {
		t.Fatalf("withdraw not rolled back: claimed=%v pledged=%d", c.Claimed, c.Pledged)
	}

	// a later retry with a working transfer succeeds
	bank.EXPECT().
		Transfer(mock.Anything, creator, int64(100)).
		Return(nil).
		Once()
	if err = u.Withdraw(ctx, creator, id); err != nil {
		t.Fatalf("retry withdraw: %v", err)
	}
}

func TestRefundTransferFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	bank := mocks.NewMockBank(t)
	u := NewLedgerUseCase(store, bank, event.NewLog(slog.New(slog.DiscardHandler)), 0)

	now := time.Unix(1_700_000_000, 0).UTC()
	u.now = func() time.Time { return now }

	id, _ := u.CreateCampaign(ctx, creator, port.CreateCampaignReq{Goal: 100, Duration: time.Hour})
	if err := u.Pledge(ctx, backerA, id, 40); err != nil {
		t.Fatalf("pledge: %v", err)
	}
	now = now.Add(2 * time.Hour)

	bank.EXPECT().
		Transfer(mock.Anything, backerA, int64(40)).
		Return(errors.New("recipient rejected")).
		Once()

	if err := u.Refund(ctx, backerA, id); !errors.Is(err, domain.ErrTransferFailed) {
		t.Fatalf("refund: got %v, want ErrTransferFailed", err)
	}
	held, _ := store.Contribution(ctx, id, backerA)
	if held != 40 {
		t.Fatalf("entry not restored: %d", held)
	}
}

// TestReentrantTransferRejected simulates a transfer recipient calling
// back into the ledger mid-transfer. The nested call must fail fast with
// ErrReentrantCall while the outer operation completes normally.
func TestReentrantTransferRejected(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	bank := mocks.NewMockBank(t)
	u := NewLedgerUseCase(store, bank, event.NewLog(slog.New(slog.DiscardHandler)), 0)

	now := time.Unix(1_700_000_000, 0).UTC()
	u.now = func() time.Time { return now }

	id, _ := u.CreateCampaign(ctx, creator, port.CreateCampaignReq{Goal: 100, Duration: time.Hour})
	if err := u.Pledge(ctx, backerA, id, 50); err != nil {
		t.Fatalf("pledge: %v", err)
	}

	var nested error
	bank.EXPECT().
		Transfer(mock.Anything, backerA, int64(10)).
		Run(func(ctx context.Context, to domain.Account, amount int64) {
			nested = u.Unpledge(ctx, backerA, id, 10)
		}).
		Return(nil).
		Once()

	if err := u.Unpledge(ctx, backerA, id, 10); err != nil {
		t.Fatalf("outer unpledge: %v", err)
	}
	if !errors.Is(nested, domain.ErrReentrantCall) {
		t.Fatalf("nested call: got %v, want ErrReentrantCall", nested)
	}
	held, _ := store.Contribution(ctx, id, backerA)
	if held != 40 {
		t.Fatalf("held = %d, want 40", held)
	}
}

func TestDirectTransferRejected(t *testing.T) {
	f := newFixture(t)
	if err := f.ledger.Receive(context.Background(), backerA, 100); !errors.Is(err, domain.ErrDirectTransferRejected) {
		t.Fatalf("got %v, want ErrDirectTransferRejected", err)
	}
}

func TestEventLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.create(t, 100)

	_ = f.ledger.Pledge(ctx, backerA, id, 60)
	_ = f.ledger.Pledge(ctx, backerB, id, 50)
	_ = f.ledger.Pledge(ctx, backerB, id, 0) // fails, no event
	_ = f.ledger.Unpledge(ctx, backerB, id, 10)
	f.advance(2 * time.Hour)
	_ = f.ledger.Withdraw(ctx, creator, id)

	got := f.log.Events(ctx)
	want := []string{
		domain.EventCampaignCreated,
		domain.EventPledged,
		domain.EventPledged,
		domain.EventUnpledged,
		domain.EventFundsWithdrawn,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, e := range got {
		if e.Type != want[i] {
			t.Fatalf("event %d = %s, want %s", i, e.Type, want[i])
		}
		if e.ID == "" || e.CampaignID != id {
			t.Fatalf("event %d missing id fields: %+v", i, e)
		}
	}
	if got[4].Amount != 100 {
		t.Fatalf("withdrawn amount = %d, want 100", got[4].Amount)
	}
}
