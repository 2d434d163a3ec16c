package memory

import (
	"context"
	"sync"

	"fundpool/internal/core/domain"
)

// Bank is an in-process stand-in for the host's value-movement
// primitive. Outbound transfers credit the recipient's balance.
type Bank struct {
	mu       sync.Mutex
	balances map[domain.Account]int64
}

// NewBank returns a bank with no balances.
func NewBank() *Bank {
	return &Bank{balances: make(map[domain.Account]int64)}
}

// Transfer credits amount to the recipient.
func (b *Bank) Transfer(_ context.Context, to domain.Account, amount int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.balances[to] += amount
	return nil
}

// Balance returns the total credited to an account.
func (b *Bank) Balance(account domain.Account) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[account]
}
