package port

import (
	"context"

	"fundpool/internal/core/domain"
)

// Bank is the host's value-movement primitive. The ledger pushes funds
// out through it on unpledge, withdraw and refund. A Transfer may fail,
// and may in principle call back into the ledger from the recipient side;
// the ledger guards against both.
type Bank interface {
	Transfer(ctx context.Context, to domain.Account, amount int64) error
}
